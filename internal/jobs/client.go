package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// Client submits balance tasks to the queue.
type Client struct {
	client taskEnqueuer
	closer func() error
}

// NewClient constructs an asynq-backed client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	client := asynq.NewClient(redisOpts)
	return &Client{client: client, closer: client.Close}
}

var _ portssvc.RecalculationScheduler = (*Client)(nil)

// ScheduleUserRecalculation enqueues a recalculation of every account of the user.
// A request for a user that is already queued returns apperrors.ErrConflict.
func (c *Client) ScheduleUserRecalculation(ctx context.Context, userID string) (string, error) {
	task, err := NewRecalculateUserTask(userID)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return "", fmt.Errorf("%w: recalculation already queued", apperrors.ErrConflict)
		}
		return "", fmt.Errorf("enqueue recalculation: %w", err)
	}
	return info.ID, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
