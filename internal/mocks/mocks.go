package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipp/backend/internal/service"
	"github.com/pageza/recipp/backend/internal/types"
)

// MockSeedService is a mock implementation of the seed reconciler
type MockSeedService struct {
	mock.Mock
}

func (m *MockSeedService) Sync(ctx context.Context, src io.Reader) (service.SyncResult, error) {
	args := m.Called(ctx, src)
	return args.Get(0).(service.SyncResult), args.Error(1)
}

func (m *MockSeedService) SyncFile(ctx context.Context, path string) (service.SyncResult, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(service.SyncResult), args.Error(1)
}

// MockAuthService is a mock implementation of the admin token service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) GenerateAdminToken(subject string, ttl time.Duration) (string, error) {
	args := m.Called(subject, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) ImageURL(ctx context.Context, id uint) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

var (
	_ service.IRecipeService = (*MockRecipeService)(nil)
	_ service.ISeedService   = (*MockSeedService)(nil)
	_ service.IAuthService   = (*MockAuthService)(nil)
	_ service.IImageService  = (*MockImageService)(nil)
)
