package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rrens/boardsync/internal/domain"
)

// MockActivityRepository mocks the ActivityRepository interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit int) ([]domain.ActivityLogEntry, error) {
	args := m.Called(ctx, entityType, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Error(1)
}

// MockRoleResolver mocks the RoleResolver interface
type MockRoleResolver struct {
	mock.Mock
}

func (m *MockRoleResolver) ResolveRole(ctx context.Context, userID string, ref domain.EntityRef) (domain.Role, error) {
	args := m.Called(ctx, userID, ref)
	return args.Get(0).(domain.Role), args.Error(1)
}
