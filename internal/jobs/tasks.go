package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue every balance task is placed on.
	QueueDefault = "default"

	// TaskRecalculateUser rebuilds the cached balances of one user's accounts.
	TaskRecalculateUser = "balance:recalculate_user"
	// TaskRecalculateAll fans out one TaskRecalculateUser per user.
	TaskRecalculateAll = "balance:recalculate_all"

	// uniqueWindow collapses repeated requests for the same user.
	uniqueWindow = 10 * time.Minute
)

// RecalculateUserPayload names the user whose balances are rebuilt.
type RecalculateUserPayload struct {
	UserID string `json:"user_id"`
}

// RecalculateAllPayload carries scheduling metadata for the fan-out task.
type RecalculateAllPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewRecalculateUserTask constructs the per-user recalculation task.
func NewRecalculateUserTask(userID string) (*asynq.Task, error) {
	if userID == "" {
		return nil, errors.New("jobs: user id required")
	}
	body, err := json.Marshal(RecalculateUserPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecalculateUser, body,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Unique(uniqueWindow),
	), nil
}

// NewRecalculateAllTask constructs the fan-out task registered on the cron schedule.
func NewRecalculateAllTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(RecalculateAllPayload{ScheduledFor: at.UTC()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecalculateAll, body, asynq.Queue(QueueDefault), asynq.MaxRetry(1)), nil
}

func decodeUserPayload(t *asynq.Task) (RecalculateUserPayload, error) {
	var payload RecalculateUserPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if payload.UserID == "" {
		return payload, fmt.Errorf("%s payload without user id: %w", t.Type(), asynq.SkipRetry)
	}
	return payload, nil
}
