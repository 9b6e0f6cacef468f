package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beka-birhanu/treasure-maze/config"
	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/beka-birhanu/treasure-maze/infrastruture/leaderboard"
	"github.com/beka-birhanu/treasure-maze/infrastruture/mongorec"
	"github.com/beka-birhanu/treasure-maze/infrastruture/sqliterec"
	"github.com/beka-birhanu/treasure-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newRecorder builds the configured recorder backend. It returns the write
// side, the read side (both nil for the "none" driver) and a cleanup
// function.
func newRecorder(ctx context.Context) (game.Recorder, i.RunReader, func(), error) {
	switch config.Envs.RecorderDriver {
	case config.DriverNone:
		return nil, nil, func() {}, nil

	case config.DriverSQLite:
		rec, err := sqliterec.New(config.Envs.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite recorder: %w", err)
		}
		logInfo("SQLite recorder initialized at %s", config.Envs.SQLitePath)
		return rec, rec, func() { _ = rec.Close() }, nil

	case config.DriverMongo:
		client, err := connectMongo(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		rec := mongorec.New(client, config.Envs.DBName)
		logInfo("Mongo recorder initialized on %s", config.Envs.DBHost)
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return rec, rec, cleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown recorder driver %q", config.Envs.RecorderDriver)
	}
}

func connectMongo(ctx context.Context) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%d", config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%d", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return client, nil
}

// newLeaderboard builds the Redis leaderboard when REDIS_ADDR is set;
// otherwise ranking is disabled.
func newLeaderboard(ctx context.Context) (i.Leaderboard, func(), error) {
	if config.Envs.RedisAddr == "" {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}

	board, err := leaderboard.NewRedisLeaderboard(client, config.Envs.LeaderboardKey, int64(config.Envs.LeaderboardSize))
	if err != nil {
		return nil, nil, fmt.Errorf("creating leaderboard: %w", err)
	}
	logInfo("Redis leaderboard initialized on %s", config.Envs.RedisAddr)
	return board, func() { _ = client.Close() }, nil
}

func logInfo(format string, args ...interface{}) {
	log.Printf(config.LogInfoColor+"[APP] [INFO]"+config.LogColorReset+" "+format, args...)
}

func logError(format string, args ...interface{}) {
	log.Printf(config.LogErrorColor+"[APP] [ERROR]"+config.LogColorReset+" "+format, args...)
}
