package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ObjectStoreMock struct {
	mock.Mock
}

func NewObjectStoreMock() *ObjectStoreMock {
	return &ObjectStoreMock{}
}

func (m *ObjectStoreMock) Upload(ctx context.Context, data []byte, fileName, folder string) (string, error) {
	args := m.Called(ctx, data, fileName, folder)
	return args.String(0), args.Error(1)
}

func (m *ObjectStoreMock) Delete(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}
