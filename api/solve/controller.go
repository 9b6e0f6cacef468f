// Package solveapi exposes the shortest-path solver as a stateless
// diagnostic endpoint: post a layout and a start cell, get the optimal
// path back.
package solveapi

import (
	"net/http"

	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/gin-gonic/gin"
)

// Controller serves shortest-path solve requests.
type Controller struct{}

// NewController initializes a solve Controller.
func NewController() *Controller {
	return &Controller{}
}

// Register adds the solve route.
func (c *Controller) Register(route *gin.RouterGroup) {
	route.POST("/solve", c.solve)
}

// solve validates the posted layout, runs BFS from the start cell and
// returns the optimal path with its action sequence.
func (c *Controller) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := maze.New(request.Layout, maze.CellPosition{Row: request.StartRow, Col: request.StartCol})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, ok := m.ShortestPath(m.Start())
	if !ok {
		// New already proved reachability; kept as a guard.
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no path to the target"})
		return
	}
	actions, err := maze.ActionsFromPath(path)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newSolveResponse(path, actions))
}
