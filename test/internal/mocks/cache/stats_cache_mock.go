package cache

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type StatsCacheMock struct {
	mock.Mock
}

func NewStatsCacheMock() *StatsCacheMock {
	return &StatsCacheMock{}
}

// Relaxed returns a mock that tolerates any cache traffic; most service
// tests only care that caching never changes results.
func Relaxed() *StatsCacheMock {
	m := NewStatsCacheMock()
	m.On("GetDistribution", mock.Anything, mock.Anything).Return(nil, false, nil).Maybe()
	m.On("SetDistribution", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("GetTotalUsers", mock.Anything).Return(0, false, nil).Maybe()
	m.On("SetTotalUsers", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("GetMonthCounts", mock.Anything).Return(nil, false, nil).Maybe()
	m.On("SetMonthCounts", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("InvalidateUserStats", mock.Anything).Return(nil).Maybe()
	m.On("InvalidateEventStats", mock.Anything).Return(nil).Maybe()
	return m
}

func (m *StatsCacheMock) GetDistribution(ctx context.Context, field string) (map[string]int, bool, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(map[string]int), args.Bool(1), args.Error(2)
}

func (m *StatsCacheMock) SetDistribution(ctx context.Context, field string, distribution map[string]int) error {
	args := m.Called(ctx, field, distribution)
	return args.Error(0)
}

func (m *StatsCacheMock) GetTotalUsers(ctx context.Context) (int, bool, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *StatsCacheMock) SetTotalUsers(ctx context.Context, total int) error {
	args := m.Called(ctx, total)
	return args.Error(0)
}

func (m *StatsCacheMock) GetMonthCounts(ctx context.Context) ([]byte, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *StatsCacheMock) SetMonthCounts(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *StatsCacheMock) InvalidateUserStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StatsCacheMock) InvalidateEventStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
