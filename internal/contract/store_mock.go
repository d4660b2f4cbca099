package contract

import (
	"time"

	"github.com/huangsam/cyclocsv/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunStore is a testify mock of RunStore.
type MockRunStore struct {
	mock.Mock
}

var _ RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

// RecordFunctions implements the RunStore interface.
func (m *MockRunStore) RecordFunctions(runID int64, rows []schema.FunctionMetricRow) error {
	args := m.Called(runID, rows)
	return args.Error(0)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalFunctions int) error {
	args := m.Called(runID, endTime, totalFunctions)
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
