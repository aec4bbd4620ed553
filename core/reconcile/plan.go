package reconcile

import (
	"context"
	"fmt"
)

// Plan bundles the operations for one project with aggregate counts.
type Plan struct {
	// ProjectID is the project the operations belong to.
	ProjectID string `json:"projectId"`

	// Operations is the ordered operation list: deletes, then writes.
	Operations []Operation `json:"syncOperations"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Writes counts planned write operations.
	Writes int `json:"writes"`

	// Deletes counts planned delete operations.
	Deletes int `json:"deletes"`

	// ByKind counts operations per entity kind.
	ByKind map[EntityKind]int `json:"by_kind"`
}

// ApplyOptions controls whether ApplyPlan touches the store.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller has confirmed the mutations.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}

// Applier executes single operations against a remote store.
type Applier interface {
	// WriteDocument creates or overwrites op.DocumentID with op.Document.
	WriteDocument(ctx context.Context, projectID string, op Operation) error

	// DeleteDocument removes op.DocumentID.
	DeleteDocument(ctx context.Context, projectID string, op Operation) error
}

// BatchWriter is implemented by appliers that can write many documents at once.
type BatchWriter interface {
	WriteDocuments(ctx context.Context, projectID string, ops []Operation) error
}

// BatchDeleter is implemented by appliers that can delete many documents at once.
type BatchDeleter interface {
	DeleteDocuments(ctx context.Context, projectID string, ops []Operation) error
}

// BuildPlan wraps an operation list into a Plan and computes its summary.
func BuildPlan(projectID string, ops []Operation) *Plan {
	summary := PlanSummary{ByKind: make(map[EntityKind]int)}
	for _, op := range ops {
		switch op.Type {
		case OpWrite:
			summary.Writes++
		case OpDelete:
			summary.Deletes++
		}
		summary.ByKind[op.EntityKind]++
	}
	if ops == nil {
		ops = []Operation{}
	}
	return &Plan{ProjectID: projectID, Operations: ops, Summary: summary}
}

// ReconcileWithPlan reconciles two snapshots and returns the resulting plan.
// It does NOT execute anything; use ApplyPlan for that.
func ReconcileWithPlan(local, remote *Snapshot) (*Plan, error) {
	ops, err := Reconcile(local, remote)
	if err != nil {
		return nil, err
	}
	return BuildPlan(local.ProjectID(), ops), nil
}

// InitialPlan returns the plan that uploads every local document, for a
// project the remote store has never seen.
func InitialPlan(local *Snapshot) (*Plan, error) {
	docs, err := Flatten(local)
	if err != nil {
		return nil, fmt.Errorf("local snapshot: %w", err)
	}
	ops, err := Diff(docs, NewDocumentMap(0))
	if err != nil {
		return nil, err
	}
	return BuildPlan(local.ProjectID(), ops), nil
}

// ApplyPlan executes the plan against applier, deletes first.
// Returns the number of operations executed and the first error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, applier Applier, plan *Plan, opts ApplyOptions) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	var deletes, writes []Operation
	for _, op := range plan.Operations {
		switch op.Type {
		case OpDelete:
			deletes = append(deletes, op)
		case OpWrite:
			writes = append(writes, op)
		default:
			return 0, fmt.Errorf("unknown operation type %q for %s", op.Type, op.DocumentID)
		}
	}

	if len(deletes) > 0 {
		if batch, ok := applier.(BatchDeleter); ok {
			if err := batch.DeleteDocuments(ctx, plan.ProjectID, deletes); err != nil {
				return executed, fmt.Errorf("failed to batch delete documents: %w", err)
			}
			executed += len(deletes)
		} else {
			for _, op := range deletes {
				if err := applier.DeleteDocument(ctx, plan.ProjectID, op); err != nil {
					return executed, fmt.Errorf("failed to delete document %s: %w", op.DocumentID, err)
				}
				executed++
			}
		}
	}

	if len(writes) > 0 {
		if batch, ok := applier.(BatchWriter); ok {
			if err := batch.WriteDocuments(ctx, plan.ProjectID, writes); err != nil {
				return executed, fmt.Errorf("failed to batch write documents: %w", err)
			}
			executed += len(writes)
		} else {
			for _, op := range writes {
				if err := applier.WriteDocument(ctx, plan.ProjectID, op); err != nil {
					return executed, fmt.Errorf("failed to write document %s: %w", op.DocumentID, err)
				}
				executed++
			}
		}
	}

	return executed, nil
}
