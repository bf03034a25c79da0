package jobs

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

type mockBalance struct {
	mock.Mock
}

func (m *mockBalance) RecalculateAccountBalance(ctx context.Context, userID, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockBalance) RecalculateAccounts(ctx context.Context, userID string, accountIDs []string) error {
	return m.Called(ctx, userID, accountIDs).Error(0)
}

func (m *mockBalance) RecalculateAllUserAccounts(ctx context.Context, userID string) ([]domain.RecalculationResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecalculationResult), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// taskForUser matches a recalculate-user task for userID.
func taskForUser(userID string) interface{} {
	return mock.MatchedBy(func(t *asynq.Task) bool {
		if t.Type() != TaskRecalculateUser {
			return false
		}
		payload, err := decodeUserPayload(t)
		return err == nil && payload.UserID == userID
	})
}
