// Package redisqueue implements the durable delayed delivery queue on Redis.
//
// Layout:
//   - a hash maps job keys to their JSON payloads and doubles as the
//     deduplication set for pending jobs
//   - a sorted set schedules job keys by the unix millisecond they become
//     eligible for processing
//   - a second sorted set tracks claimed keys by their lease deadline; a
//     consumer that dies mid-flight loses its lease and the job is handed
//     out again on a later claim
//   - a list retains jobs that exhausted their retry budget, for operator
//     inspection
//
// Enqueue and due-job claiming run as Lua scripts so that each operates
// atomically across the hash and the sorted sets.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"fuelmarket/internal/core/domain/model/job"
)

const (
	jobsKey      = "queue:jobs"
	scheduledKey = "queue:scheduled"
	inflightKey  = "queue:inflight"
	deadKey      = "queue:dead"
)

// claimLease bounds how long a claimed job may stay unacknowledged before
// it is handed out again. Generous next to the handler runtime so a slow
// worker does not race its own reclaim.
const claimLease = 5 * time.Minute

// enqueueScript inserts the payload only when the key is not already
// pending, then schedules it. Returns 1 on insert, 0 on duplicate.
var enqueueScript = redis.NewScript(`
local jobs = KEYS[1]
local scheduled = KEYS[2]
local key = ARGV[1]
local payload = ARGV[2]
local readyAt = tonumber(ARGV[3])

if redis.call('HSETNX', jobs, key, payload) == 0 then
	return 0
end

redis.call('ZADD', scheduled, readyAt, key)
return 1
`)

// claimDueScript first re-leases claims whose lease deadline has passed,
// then moves due keys from the schedule onto the in-flight set under a
// fresh lease. Returns a flat list of (key, payload, reclaimed) triplets;
// reclaimed is '1' when the entry came off an expired lease.
var claimDueScript = redis.NewScript(`
local jobs = KEYS[1]
local scheduled = KEYS[2]
local inflight = KEYS[3]
local now = tonumber(ARGV[1])
local batch = tonumber(ARGV[2])
local leaseUntil = tonumber(ARGV[3])

local out = {}

local expired = redis.call('ZRANGEBYSCORE', inflight, '-inf', now, 'LIMIT', 0, batch)
for _, key in ipairs(expired) do
	local payload = redis.call('HGET', jobs, key)
	if payload then
		redis.call('ZADD', inflight, leaseUntil, key)
		out[#out + 1] = key
		out[#out + 1] = payload
		out[#out + 1] = '1'
	else
		redis.call('ZREM', inflight, key)
	end
end

local due = redis.call('ZRANGEBYSCORE', scheduled, '-inf', now, 'LIMIT', 0, batch)
for _, key in ipairs(due) do
	redis.call('ZREM', scheduled, key)
	local payload = redis.call('HGET', jobs, key)
	if payload then
		redis.call('ZADD', inflight, leaseUntil, key)
		out[#out + 1] = key
		out[#out + 1] = payload
		out[#out + 1] = '0'
	end
end

return out
`)

// ackScript completes a claimed job, dropping both its payload and its
// lease entry.
var ackScript = redis.NewScript(`
local jobs = KEYS[1]
local inflight = KEYS[2]
local key = ARGV[1]

redis.call('HDEL', jobs, key)
redis.call('ZREM', inflight, key)
return 1
`)

// requeueScript releases the lease on an in-flight job, replaces its
// payload, and puts it back on the schedule for a retry.
var requeueScript = redis.NewScript(`
local jobs = KEYS[1]
local scheduled = KEYS[2]
local inflight = KEYS[3]
local key = ARGV[1]
local payload = ARGV[2]
local readyAt = tonumber(ARGV[3])

redis.call('ZREM', inflight, key)
redis.call('HSET', jobs, key, payload)
redis.call('ZADD', scheduled, readyAt, key)
return 1
`)

// deadLetterScript moves an exhausted job out of the pending hash and the
// in-flight set onto the dead-letter list. Frees the key for future
// enqueues.
var deadLetterScript = redis.NewScript(`
local jobs = KEYS[1]
local inflight = KEYS[2]
local dead = KEYS[3]
local key = ARGV[1]
local payload = ARGV[2]

redis.call('HDEL', jobs, key)
redis.call('ZREM', inflight, key)
redis.call('RPUSH', dead, payload)
return 1
`)

// Queue is the Redis-backed delayed job queue.
type Queue struct {
	client *redis.Client
	logger *slog.Logger
}

// NewQueue creates a Queue over the given Redis client.
func NewQueue(client *redis.Client, logger *slog.Logger) *Queue {
	return &Queue{
		client: client,
		logger: logger.With("component", "redisqueue"),
	}
}

// Enqueue inserts the job so it becomes eligible after the given delay.
// Re-enqueueing a key that is still pending is a no-op.
func (q *Queue) Enqueue(ctx context.Context, j job.Job, delay time.Duration) error {
	if err := j.Validate(); err != nil {
		return err
	}

	if delay < 0 {
		delay = 0
	}

	payload, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", j.Key, err)
	}

	readyAt := time.Now().UTC().Add(delay).UnixMilli()

	inserted, err := enqueueScript.Run(ctx, q.client,
		[]string{jobsKey, scheduledKey},
		j.Key, payload, readyAt,
	).Int()
	if err != nil {
		return fmt.Errorf("enqueue job %s: %w", j.Key, err)
	}

	if inserted == 0 {
		q.logger.DebugContext(ctx, "duplicate enqueue ignored", "key", j.Key)
		return nil
	}

	q.logger.InfoContext(ctx, "job enqueued", "key", j.Key, "delay", delay.String())
	return nil
}

// ClaimDue atomically claims up to batch jobs whose ready time has passed,
// plus any jobs whose previous claim's lease expired without an Ack,
// Requeue, or DeadLetter. A lapsed lease counts as a spent attempt, so a
// job that keeps crashing its worker still runs out of retries.
func (q *Queue) ClaimDue(ctx context.Context, now time.Time, batch int) ([]job.Job, error) {
	raw, err := claimDueScript.Run(ctx, q.client,
		[]string{jobsKey, scheduledKey, inflightKey},
		now.UnixMilli(), batch, now.Add(claimLease).UnixMilli(),
	).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("claim due jobs: %w", err)
	}

	jobs := make([]job.Job, 0, len(raw)/3)
	for i := 0; i+2 < len(raw); i += 3 {
		key, payload, reclaimed := raw[i], raw[i+1], raw[i+2] == "1"

		var j job.Job
		if err := json.Unmarshal([]byte(payload), &j); err != nil {
			// Retrying cannot fix an undecodable payload; retire it and
			// free the key.
			q.logger.ErrorContext(ctx, "dead-lettering undecodable job payload",
				"key", key, "error", err)
			if dlErr := q.deadLetterRaw(ctx, key, payload); dlErr != nil {
				q.logger.ErrorContext(ctx, "dead-letter failed", "key", key, "error", dlErr)
			}
			continue
		}

		if reclaimed {
			j.Attempts++
			if j.Exhausted() {
				if dlErr := q.DeadLetter(ctx, j); dlErr != nil {
					q.logger.ErrorContext(ctx, "dead-letter failed", "key", key, "error", dlErr)
				}
				continue
			}

			q.logger.WarnContext(ctx, "reclaimed job with expired lease",
				"key", key, "attempts", j.Attempts)
			if persisted, pErr := json.Marshal(j); pErr == nil {
				if hErr := q.client.HSet(ctx, jobsKey, key, persisted).Err(); hErr != nil {
					q.logger.ErrorContext(ctx, "persisting reclaimed job failed",
						"key", key, "error", hErr)
				}
			}
		}

		jobs = append(jobs, j)
	}

	return jobs, nil
}

// Ack completes the job, removing its payload and its lease.
func (q *Queue) Ack(ctx context.Context, j job.Job) error {
	if err := ackScript.Run(ctx, q.client,
		[]string{jobsKey, inflightKey},
		j.Key,
	).Err(); err != nil {
		return fmt.Errorf("ack job %s: %w", j.Key, err)
	}
	return nil
}

// Requeue schedules the job for another attempt after the given delay,
// persisting its updated attempt count and last error.
func (q *Queue) Requeue(ctx context.Context, j job.Job, delay time.Duration) error {
	payload, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", j.Key, err)
	}

	readyAt := time.Now().UTC().Add(delay).UnixMilli()

	if err := requeueScript.Run(ctx, q.client,
		[]string{jobsKey, scheduledKey, inflightKey},
		j.Key, payload, readyAt,
	).Err(); err != nil {
		return fmt.Errorf("requeue job %s: %w", j.Key, err)
	}

	return nil
}

// DeadLetter retires the job onto the dead-letter list.
func (q *Queue) DeadLetter(ctx context.Context, j job.Job) error {
	payload, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", j.Key, err)
	}

	if err := q.deadLetterRaw(ctx, j.Key, string(payload)); err != nil {
		return err
	}

	q.logger.WarnContext(ctx, "job dead-lettered",
		"key", j.Key, "attempts", j.Attempts, "lastError", j.LastError)
	return nil
}

func (q *Queue) deadLetterRaw(ctx context.Context, key, payload string) error {
	if err := deadLetterScript.Run(ctx, q.client,
		[]string{jobsKey, inflightKey, deadKey},
		key, payload,
	).Err(); err != nil {
		return fmt.Errorf("dead-letter job %s: %w", key, err)
	}
	return nil
}
