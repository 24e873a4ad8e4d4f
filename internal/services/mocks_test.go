package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bikeshare/internal/dataset"
)

// MockLoader is a mock dataset.Loader
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, city dataset.City) (*dataset.Table, error) {
	args := m.Called(ctx, city)
	if t := args.Get(0); t != nil {
		return t.(*dataset.Table), args.Error(1)
	}
	return nil, args.Error(1)
}
