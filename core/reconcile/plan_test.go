package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockApplier records single-operation calls.
type mockApplier struct {
	mock.Mock
}

func (m *mockApplier) WriteDocument(ctx context.Context, projectID string, op Operation) error {
	args := m.Called(ctx, projectID, op)
	return args.Error(0)
}

func (m *mockApplier) DeleteDocument(ctx context.Context, projectID string, op Operation) error {
	args := m.Called(ctx, projectID, op)
	return args.Error(0)
}

// mockBatchApplier additionally supports batch calls.
type mockBatchApplier struct {
	mockApplier
}

func (m *mockBatchApplier) WriteDocuments(ctx context.Context, projectID string, ops []Operation) error {
	args := m.Called(ctx, projectID, ops)
	return args.Error(0)
}

func (m *mockBatchApplier) DeleteDocuments(ctx context.Context, projectID string, ops []Operation) error {
	args := m.Called(ctx, projectID, ops)
	return args.Error(0)
}

func samplePlan() *Plan {
	return BuildPlan("p1", []Operation{
		Delete(EntityElement, "e3"),
		Write(EntityElement, "e1", element("e1", "A")),
		Write(EntityDesignSystem, "d1", Document{"id": "d1", "type": "DesignSystem"}),
	})
}

func TestBuildPlan_Summary(t *testing.T) {
	plan := samplePlan()

	assert.Equal(t, "p1", plan.ProjectID)
	assert.Equal(t, 2, plan.Summary.Writes)
	assert.Equal(t, 1, plan.Summary.Deletes)
	assert.Equal(t, 2, plan.Summary.ByKind[EntityElement])
	assert.Equal(t, 1, plan.Summary.ByKind[EntityDesignSystem])

	empty := BuildPlan("p1", nil)
	assert.NotNil(t, empty.Operations)
	assert.Empty(t, empty.Operations)
}

func TestReconcileWithPlan(t *testing.T) {
	local := newSnapshot(map[string]Document{"e1": element("e1", "A")})
	remote := newSnapshot(map[string]Document{"e2": element("e2", "B")})

	plan, err := ReconcileWithPlan(local, remote)
	require.NoError(t, err)
	assert.Equal(t, "p1", plan.ProjectID)
	assert.Equal(t, 1, plan.Summary.Deletes)
	assert.Equal(t, 1, plan.Summary.Writes)
}

func TestInitialPlan(t *testing.T) {
	local := newSnapshot(map[string]Document{"e2": element("e2", "B"), "e1": element("e1", "A")})

	plan, err := InitialPlan(local)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Summary.Deletes)
	assert.Equal(t, 4, plan.Summary.Writes)

	var ids []string
	for _, op := range plan.Operations {
		assert.Equal(t, OpWrite, op.Type)
		ids = append(ids, op.DocumentID)
	}
	assert.Equal(t, []string{"p1", "d1", "e1", "e2"}, ids)

	_, err = InitialPlan(&Snapshot{})
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestApplyPlan_SafetyGates(t *testing.T) {
	tests := []struct {
		name string
		opts ApplyOptions
	}{
		{"not confirmed", ApplyOptions{}},
		{"dry run", ApplyOptions{DryRun: true, Confirmed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := new(mockApplier)
			executed, err := ApplyPlan(context.Background(), applier, samplePlan(), tt.opts)
			assert.NoError(t, err)
			assert.Equal(t, 0, executed)
			applier.AssertNotCalled(t, "WriteDocument", mock.Anything, mock.Anything, mock.Anything)
			applier.AssertNotCalled(t, "DeleteDocument", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestApplyPlan_OneAtATime(t *testing.T) {
	plan := samplePlan()
	applier := new(mockApplier)

	var calls []string
	applier.On("DeleteDocument", mock.Anything, "p1", mock.Anything).
		Run(func(args mock.Arguments) { calls = append(calls, "delete:"+args.Get(2).(Operation).DocumentID) }).
		Return(nil)
	applier.On("WriteDocument", mock.Anything, "p1", mock.Anything).
		Run(func(args mock.Arguments) { calls = append(calls, "write:"+args.Get(2).(Operation).DocumentID) }).
		Return(nil)

	executed, err := ApplyPlan(context.Background(), applier, plan, ApplyOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, []string{"delete:e3", "write:e1", "write:d1"}, calls)
}

func TestApplyPlan_Batch(t *testing.T) {
	plan := samplePlan()
	applier := new(mockBatchApplier)
	applier.On("DeleteDocuments", mock.Anything, "p1", plan.Operations[:1]).Return(nil)
	applier.On("WriteDocuments", mock.Anything, "p1", plan.Operations[1:]).Return(nil)

	executed, err := ApplyPlan(context.Background(), applier, plan, ApplyOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	applier.AssertExpectations(t)
	applier.AssertNotCalled(t, "WriteDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyPlan_StopsOnError(t *testing.T) {
	plan := samplePlan()
	applier := new(mockApplier)
	applier.On("DeleteDocument", mock.Anything, "p1", mock.Anything).Return(nil)
	applier.On("WriteDocument", mock.Anything, "p1", mock.Anything).Return(errors.New("store unavailable")).Once()

	executed, err := ApplyPlan(context.Background(), applier, plan, ApplyOptions{Confirmed: true})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write document e1")
	assert.Equal(t, 1, executed)
}

func TestApplyPlan_BatchError(t *testing.T) {
	plan := samplePlan()
	applier := new(mockBatchApplier)
	applier.On("DeleteDocuments", mock.Anything, "p1", mock.Anything).Return(errors.New("boom"))

	executed, err := ApplyPlan(context.Background(), applier, plan, ApplyOptions{Confirmed: true})
	assert.ErrorContains(t, err, "failed to batch delete documents")
	assert.Equal(t, 0, executed)
}
