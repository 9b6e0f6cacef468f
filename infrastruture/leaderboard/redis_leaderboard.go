// Package leaderboard ranks finished runs in a Redis sorted set scored by
// total reward.
package leaderboard

import (
	"context"

	"github.com/beka-birhanu/treasure-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLeaderboard keeps the best runs in a capped Redis sorted set.
type RedisLeaderboard struct {
	client     *redis.Client
	locker     *redsync.Redsync
	key        string
	maxEntries int64 // 0 keeps every run
}

// NewRedisLeaderboard initializes a leaderboard over the given Redis
// client. maxEntries caps the board size; 0 disables the cap.
func NewRedisLeaderboard(client *redis.Client, key string, maxEntries int64) (i.Leaderboard, error) {
	board := &RedisLeaderboard{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Submit adds a finished run to the board and trims it back to the cap.
// The submit-and-trim pair runs under a distributed lock so concurrent
// submitters cannot trim each other's fresh entries.
func (b *RedisLeaderboard) Submit(ctx context.Context, runID uuid.UUID, totalReward float64) error {
	mutex := b.locker.NewMutex(b.key + ":submit_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	if _, err := b.client.ZAdd(ctx, b.key, redis.Z{Score: totalReward, Member: runID.String()}).Result(); err != nil {
		return err
	}

	if b.maxEntries > 0 {
		count := b.client.ZCard(ctx, b.key).Val()
		if count > b.maxEntries {
			// Drop the lowest-scored surplus.
			if err := b.client.ZRemRangeByRank(ctx, b.key, 0, count-b.maxEntries-1).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Top returns the n best runs, highest total reward first.
func (b *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := b.client.ZRevRangeWithScores(ctx, b.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member.Member.(string))
		if err != nil {
			continue
		}
		entries = append(entries, i.LeaderboardEntry{RunID: id, TotalReward: member.Score})
	}
	return entries, nil
}

// Count returns the number of runs on the board.
func (b *RedisLeaderboard) Count(ctx context.Context) int64 {
	return b.client.ZCard(ctx, b.key).Val()
}
