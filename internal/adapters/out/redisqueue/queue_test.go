package redisqueue

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelmarket/internal/core/domain/model/job"
)

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return client
}

func newTestQueue(t *testing.T) (*Queue, *redis.Client) {
	t.Helper()

	client := getRedisClient(t)
	ctx := context.Background()

	cleanup := func() {
		client.Del(ctx, jobsKey, scheduledKey, inflightKey, deadKey)
	}
	cleanup()
	t.Cleanup(cleanup)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewQueue(client, logger), client
}

func newQueueTestJob() job.Job {
	orderID := uuid.NewString()
	return job.Job{
		Key:         "delivery:" + orderID,
		Kind:        job.KindDelivery,
		MaxAttempts: job.DefaultMaxAttempts,
		EnqueuedAt:  time.Now().UTC(),
		Delivery: &job.DeliveryPayload{
			OrderID:     orderID,
			UserID:      uuid.NewString(),
			OrderNumber: "FD-1700000000000",
			TotalAmount: 41500,
			Currency:    "NGN",
		},
	}
}

func Test_Queue(t *testing.T) {
	t.Run("should redeliver a claimed job once its lease expires", func(t *testing.T) {
		// Arrange
		queue, _ := newTestQueue(t)
		ctx := context.Background()
		j := newQueueTestJob()
		now := time.Now().UTC()

		require.NoError(t, queue.Enqueue(ctx, j, 0))

		// Act
		first, err := queue.ClaimDue(ctx, now.Add(time.Second), 10)
		require.NoError(t, err)
		require.Len(t, first, 1)

		// A second claim inside the lease window must not hand the job out
		// again.
		second, err := queue.ClaimDue(ctx, now.Add(2*time.Second), 10)
		require.NoError(t, err)
		assert.Empty(t, second)

		// The consumer never acked; past the lease deadline the job comes
		// back, with the lost run counted against its budget.
		third, err := queue.ClaimDue(ctx, now.Add(claimLease+time.Minute), 10)

		// Assert
		require.NoError(t, err)
		require.Len(t, third, 1)
		assert.Equal(t, j.Key, third[0].Key)
		assert.Equal(t, 1, third[0].Attempts)
	})

	t.Run("should free the key for a fresh enqueue after acking", func(t *testing.T) {
		// Arrange
		queue, _ := newTestQueue(t)
		ctx := context.Background()
		j := newQueueTestJob()
		now := time.Now().UTC()

		require.NoError(t, queue.Enqueue(ctx, j, 0))

		claimed, err := queue.ClaimDue(ctx, now.Add(time.Second), 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		// Act
		require.NoError(t, queue.Ack(ctx, claimed[0]))

		// Assert
		stale, err := queue.ClaimDue(ctx, now.Add(claimLease+time.Minute), 10)
		require.NoError(t, err)
		assert.Empty(t, stale)

		require.NoError(t, queue.Enqueue(ctx, j, 0))
		again, err := queue.ClaimDue(ctx, now.Add(time.Second), 10)
		require.NoError(t, err)
		require.Len(t, again, 1)
		assert.Equal(t, j.Key, again[0].Key)
	})

	t.Run("should dead-letter a job whose leases exhaust the retry budget", func(t *testing.T) {
		// Arrange
		queue, client := newTestQueue(t)
		ctx := context.Background()
		j := newQueueTestJob()
		j.MaxAttempts = 1
		now := time.Now().UTC()

		require.NoError(t, queue.Enqueue(ctx, j, 0))

		claimed, err := queue.ClaimDue(ctx, now.Add(time.Second), 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		// Act: the lone attempt is lost to a lapsed lease, which spends the
		// whole budget.
		reclaimed, err := queue.ClaimDue(ctx, now.Add(claimLease+time.Minute), 10)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, reclaimed)

		deadLen, err := client.LLen(ctx, deadKey).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), deadLen)

		pending, err := client.HExists(ctx, jobsKey, j.Key).Result()
		require.NoError(t, err)
		assert.False(t, pending, "dead-lettered key must not block future enqueues")

		require.NoError(t, queue.Enqueue(ctx, j, 0))
		fresh, err := queue.ClaimDue(ctx, now.Add(2*time.Second), 10)
		require.NoError(t, err)
		require.Len(t, fresh, 1)
	})

	t.Run("should dead-letter an undecodable payload and release its key", func(t *testing.T) {
		// Arrange
		queue, client := newTestQueue(t)
		ctx := context.Background()
		j := newQueueTestJob()
		now := time.Now().UTC()

		require.NoError(t, client.HSet(ctx, jobsKey, j.Key, "{not json").Err())
		require.NoError(t, client.ZAdd(ctx, scheduledKey,
			redis.Z{Score: float64(now.UnixMilli()), Member: j.Key}).Err())

		// Act
		claimed, err := queue.ClaimDue(ctx, now.Add(time.Second), 10)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, claimed)

		dead, err := client.LRange(ctx, deadKey, 0, -1).Result()
		require.NoError(t, err)
		require.Len(t, dead, 1)
		assert.Equal(t, "{not json", dead[0])

		pending, err := client.HExists(ctx, jobsKey, j.Key).Result()
		require.NoError(t, err)
		assert.False(t, pending)

		require.NoError(t, queue.Enqueue(ctx, j, 0))
		fresh, err := queue.ClaimDue(ctx, now.Add(2*time.Second), 10)
		require.NoError(t, err)
		require.Len(t, fresh, 1)
		assert.Equal(t, j.Key, fresh[0].Key)
	})

	t.Run("should keep deduplicating while a job is in flight", func(t *testing.T) {
		// Arrange
		queue, _ := newTestQueue(t)
		ctx := context.Background()
		j := newQueueTestJob()
		now := time.Now().UTC()

		require.NoError(t, queue.Enqueue(ctx, j, 0))

		claimed, err := queue.ClaimDue(ctx, now.Add(time.Second), 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		// Act: a duplicate enqueue during the claim window is swallowed and
		// must not schedule a second run.
		require.NoError(t, queue.Enqueue(ctx, j, 0))

		// Assert
		dup, err := queue.ClaimDue(ctx, now.Add(2*time.Second), 10)
		require.NoError(t, err)
		assert.Empty(t, dup)
	})
}
