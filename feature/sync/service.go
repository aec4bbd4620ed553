package sync

import (
	"context"
	"errors"
	"time"

	"project-sync/core/reconcile"
	"project-sync/core/remote"
	"project-sync/core/worker"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LocalStore provides the cached local snapshots.
type LocalStore interface {
	Get(ctx context.Context, projectID string) (*reconcile.Snapshot, error)
}

// Status compares a cached snapshot with the remote store.
type Status struct {
	ProjectID string `json:"projectId"`
	// RemoteExists is false when the remote store has no documents for the project.
	RemoteExists bool                  `json:"remoteExists"`
	InSync       bool                  `json:"inSync"`
	Summary      reconcile.PlanSummary `json:"summary"`
}

// Result reports one sync run.
type Result struct {
	Plan     *reconcile.Plan `json:"plan"`
	DryRun   bool            `json:"dryRun"`
	Executed int             `json:"executed"`
}

// Service coordinates the cache, the execution host and the remote store.
type Service struct {
	dispatcher *worker.Dispatcher
	local      LocalStore
	remote     remote.Store
	timeout    time.Duration
	logger     *zap.Logger

	loads singleflight.Group
	syncs singleflight.Group
}

// NewService creates a sync service. timeout bounds every remote load and apply.
func NewService(dispatcher *worker.Dispatcher, local LocalStore, store remote.Store, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		dispatcher: dispatcher,
		local:      local,
		remote:     store,
		timeout:    timeout,
		logger:     logger,
	}
}

// Plan reconciles two snapshots on the execution host.
func (s *Service) Plan(ctx context.Context, local, remote *reconcile.Snapshot) (*reconcile.Plan, error) {
	resp, err := s.dispatcher.Call(ctx, local, remote)
	if err != nil {
		return nil, err
	}
	return reconcile.BuildPlan(resp.ProjectID, resp.SyncOperations), nil
}

// loadRemote reads the remote snapshot of projectID, sharing the read with
// concurrent callers. exists is false when the store has no such project.
func (s *Service) loadRemote(ctx context.Context, projectID string) (snap *reconcile.Snapshot, exists bool, err error) {
	v, err, shared := s.loads.Do(projectID, func() (any, error) {
		// Detached so one caller giving up does not fail the others
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.remote.LoadSnapshot(ctx, projectID)
	})
	if shared {
		s.logger.Debug("Shared remote snapshot load", zap.String("project_id", projectID))
	}
	if errors.Is(err, remote.ErrProjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v.(*reconcile.Snapshot), true, nil
}

// planProject plans the cached snapshot of projectID against the remote store.
func (s *Service) planProject(ctx context.Context, projectID string) (*reconcile.Plan, bool, error) {
	local, err := s.local.Get(ctx, projectID)
	if err != nil {
		return nil, false, err
	}

	remoteSnap, exists, err := s.loadRemote(ctx, projectID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		plan, err := reconcile.InitialPlan(local)
		return plan, false, err
	}

	plan, err := s.Plan(ctx, local, remoteSnap)
	return plan, true, err
}

// Status plans projectID without touching the remote store.
func (s *Service) Status(ctx context.Context, projectID string) (*Status, error) {
	plan, exists, err := s.planProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Status{
		ProjectID:    projectID,
		RemoteExists: exists,
		InSync:       len(plan.Operations) == 0,
		Summary:      plan.Summary,
	}, nil
}

// Sync plans projectID and, unless dryRun, applies the plan to the remote
// store. Concurrent identical calls share one run. A failed apply returns
// the partial Result along with the error.
func (s *Service) Sync(ctx context.Context, projectID string, dryRun bool) (*Result, error) {
	key := projectID
	if dryRun {
		key += "?dry_run"
	}

	v, err, _ := s.syncs.Do(key, func() (any, error) {
		// The whole run is shared, so no single caller may cancel it
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		plan, _, err := s.planProject(ctx, projectID)
		if err != nil {
			return nil, err
		}

		executed, err := reconcile.ApplyPlan(ctx, s.remote, plan, reconcile.ApplyOptions{DryRun: dryRun, Confirmed: true})
		result := &Result{Plan: plan, DryRun: dryRun, Executed: executed}
		if err != nil {
			s.logger.Error("Sync stopped",
				zap.String("project_id", projectID),
				zap.Int("executed", executed),
				zap.Int("planned", len(plan.Operations)),
				zap.Error(err))
			return result, err
		}

		s.logger.Info("Sync finished",
			zap.String("project_id", projectID),
			zap.Bool("dry_run", dryRun),
			zap.Int("writes", plan.Summary.Writes),
			zap.Int("deletes", plan.Summary.Deletes),
			zap.Int("executed", executed))
		return result, nil
	})
	result, _ := v.(*Result)
	return result, err
}
