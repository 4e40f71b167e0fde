package mocks

import (
	"context"

	"github.com/rpggio/burstguard/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) History(ctx context.Context, identity string) ([]activity.Timestamp, error) {
	args := m.Called(ctx, identity)
	if history, ok := args.Get(0).([]activity.Timestamp); ok {
		return history, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Append(ctx context.Context, identity string, ts activity.Timestamp) error {
	args := m.Called(ctx, identity, ts)
	return args.Error(0)
}
