package gitlab

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockProjectLookup struct {
	mock.Mock
}

// LookupProjectID implements ProjectLookup.
func (m *MockProjectLookup) LookupProjectID(ctx context.Context, path string) (int, error) {
	args := m.Called(path)
	return args.Int(0), args.Error(1)
}

type MockMerger struct {
	mock.Mock
}

// GetApprovalState implements Merger.
func (m *MockMerger) GetApprovalState(ctx context.Context, projectID, iid int) (*ApprovalState, error) {
	args := m.Called(projectID, iid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ApprovalState), args.Error(1)
}

// Approve implements Merger.
func (m *MockMerger) Approve(ctx context.Context, projectID, iid int) error {
	args := m.Called(projectID, iid)
	return args.Error(0)
}

// Merge implements Merger.
func (m *MockMerger) Merge(ctx context.Context, projectID, iid int) error {
	args := m.Called(projectID, iid)
	return args.Error(0)
}

// recordingReporter captures reported lines by level
type recordingReporter struct {
	mu       sync.Mutex
	success  []string
	warnings []string
	errors   []string
}

func (r *recordingReporter) Successf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warningf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}
