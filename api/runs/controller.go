package runsapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/treasure-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultRunLimit = 20

// ErrNilReader is returned when constructing the controller without a run
// reader.
var ErrNilReader = errors.New("runsapi: run reader is required")

// Controller serves recorded runs and the leaderboard.
type Controller struct {
	reader      i.RunReader
	leaderboard i.Leaderboard // nil when ranking is disabled
}

// NewController initializes a Controller. leaderboard may be nil.
func NewController(reader i.RunReader, leaderboard i.Leaderboard) (*Controller, error) {
	if reader == nil {
		return nil, ErrNilReader
	}
	return &Controller{reader: reader, leaderboard: leaderboard}, nil
}

// Register adds the run inspection routes.
func (c *Controller) Register(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.GET("/", c.listRuns)
		runs.GET("/:ID/moves", c.listMoves)
	}
	route.GET("/leaderboard", c.topRuns)
}

// listRuns returns the most recent runs, bounded by the limit query param.
func (c *Controller) listRuns(ctx *gin.Context) {
	limit := defaultRunLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	runs, err := c.reader.Runs(ctx, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading runs"})
		return
	}

	response := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, fromRunRecord(run))
	}
	ctx.JSON(http.StatusOK, response)
}

// listMoves returns the moves of a single run.
func (c *Controller) listMoves(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	moves, err := c.reader.Moves(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading moves"})
		return
	}
	if len(moves) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no moves for run"})
		return
	}

	response := make([]MoveResponse, 0, len(moves))
	for _, move := range moves {
		response = append(response, fromMoveRecord(move))
	}
	ctx.JSON(http.StatusOK, response)
}

// topRuns returns the best runs by total reward.
func (c *Controller) topRuns(ctx *gin.Context) {
	if c.leaderboard == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard is not configured"})
		return
	}

	n := int64(10)
	if raw := ctx.Query("n"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	entries, err := c.leaderboard.Top(ctx, n)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, fromLeaderboardEntry(entry))
	}
	ctx.JSON(http.StatusOK, response)
}
