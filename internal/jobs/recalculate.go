package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
)

const userPageSize = 100

// taskEnqueuer is the part of *asynq.Client the fan-out needs.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RecalculationJob handles the balance recalculation tasks.
type RecalculationJob struct {
	Balance  portssvc.BalanceRecalculatorSvc
	Users    portssvc.UserReaderSvc
	Enqueuer taskEnqueuer
	Logger   *slog.Logger
}

// NewRecalculationJob wires dependencies for the recalculation handlers.
func NewRecalculationJob(balance portssvc.BalanceRecalculatorSvc, users portssvc.UserReaderSvc, enqueuer taskEnqueuer, logger *slog.Logger) *RecalculationJob {
	return &RecalculationJob{Balance: balance, Users: users, Enqueuer: enqueuer, Logger: logger}
}

func (j *RecalculationJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// HandleUser recalculates every account of the payload's user. Accounts that
// fail are reported together so asynq retries the whole user.
func (j *RecalculationJob) HandleUser(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Balance == nil {
		return errors.New("recalculate user: handler not configured")
	}
	payload, err := decodeUserPayload(t)
	if err != nil {
		return err
	}

	logger := j.logger().With(slog.String("task", t.Type()), slog.String("user_id", payload.UserID))
	ctx = middleware.WithLogger(middleware.WithUserID(ctx, payload.UserID), logger)
	start := time.Now()

	results, err := j.Balance.RecalculateAllUserAccounts(ctx, payload.UserID)
	if err != nil {
		logger.Error("recalculate user accounts", slog.Any("error", err))
		return err
	}

	var failed []error
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, fmt.Errorf("account %s: %w", r.AccountID, r.Err))
		}
	}
	if len(failed) > 0 {
		logger.Warn("recalculation incomplete", slog.Int("accounts", len(results)), slog.Int("failed", len(failed)))
		return fmt.Errorf("recalculate user %s: %w", payload.UserID, errors.Join(failed...))
	}

	logger.Info("recalculated user balances", slog.Int("accounts", len(results)), slog.Duration("duration", time.Since(start)))
	return nil
}

// HandleAll enqueues a per-user task for every registered user.
func (j *RecalculationJob) HandleAll(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Users == nil || j.Enqueuer == nil {
		return errors.New("recalculate all: handler not configured")
	}
	logger := j.logger().With(slog.String("task", t.Type()))
	ctx = middleware.WithLogger(ctx, logger)

	queued, skipped := 0, 0
	for offset := 0; ; offset += userPageSize {
		users, err := j.Users.ListUsers(ctx, userPageSize, offset)
		if err != nil {
			logger.Error("list users", slog.Int("offset", offset), slog.Any("error", err))
			return err
		}
		for _, user := range users {
			task, err := NewRecalculateUserTask(user.UserID)
			if err != nil {
				return err
			}
			if _, err := j.Enqueuer.EnqueueContext(ctx, task); err != nil {
				if errors.Is(err, asynq.ErrDuplicateTask) {
					skipped++
					continue
				}
				logger.Error("enqueue user recalculation", slog.String("user_id", user.UserID), slog.Any("error", err))
				return err
			}
			queued++
		}
		if len(users) < userPageSize {
			break
		}
	}

	logger.Info("queued balance recalculation", slog.Int("users", queued), slog.Int("already_queued", skipped))
	return nil
}
