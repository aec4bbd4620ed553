package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"project-sync/core/config"
	"project-sync/core/logger"
	"project-sync/core/reconcile"
	"project-sync/core/remote"
	"project-sync/core/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	localPath   string
	remotePath  string
	planOutPath string
	applyPlan   bool
	dryRunApply bool
	yesConfirm  bool
)

// reconcileCmd plans, and optionally applies, a reconciliation from files.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a local snapshot with the remote store (report + optionally apply)",
	Long: `Compare a local snapshot file with a remote snapshot and print the
operations that make the remote match the local one.

The remote snapshot is read from --remote when given, otherwise from the
configured remote store. Snapshot files may be JSON or YAML.

Examples:
  # Plan two files
  reconcile --local local.json --remote remote.yaml

  # Plan against the remote store and write the plan to a file
  reconcile --local local.json --out plan.json

  # Apply to the remote store (with interactive confirmation)
  reconcile --local local.json --apply

  # Apply with auto-confirm (non-interactive)
  reconcile --local local.json --apply --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&localPath, "local", "", "Local snapshot file (json or yaml)")
	reconcileCmd.Flags().StringVar(&remotePath, "remote", "", "Remote snapshot file; the configured remote store when empty")
	reconcileCmd.Flags().StringVar(&planOutPath, "out", "", "Write the plan as JSON to this file instead of stdout")
	reconcileCmd.Flags().BoolVar(&applyPlan, "apply", false, "Apply the plan to the configured remote store")
	reconcileCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = reconcileCmd.MarkFlagRequired("local")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	local, err := snapshot.ReadFile(localPath)
	if err != nil {
		return err
	}

	if applyPlan && remotePath != "" {
		return errors.New("--apply writes to the configured remote store and cannot be combined with --remote")
	}

	var store remote.Store
	if remotePath == "" {
		store, err = openRemoteStore(ctx, cfg, l)
		if err != nil {
			return fmt.Errorf("failed to open remote store: %w", err)
		}
	}

	l.Info("Planning reconciliation...", zap.String("project_id", local.ProjectID()))
	plan, err := planFromSources(ctx, local, remotePath, store)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printPlanReport(l, plan)
	if err := writePlan(plan, planOutPath, cmd.OutOrStdout()); err != nil {
		return err
	}

	if !applyPlan {
		l.Info("No actions requested. Use --apply to write the plan to the remote store.")
		return nil
	}
	if dryRunApply {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Operations) == 0 {
		l.Info("Remote store already matches the local snapshot.")
		return nil
	}

	if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying operations...")
	executed, err := reconcile.ApplyPlan(ctx, store, plan, reconcile.ApplyOptions{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply plan after %d operations: %w", executed, err)
	}

	l.Info("Successfully executed operations", zap.Int("count", executed))
	return nil
}

// planFromSources plans local against the remote file at remotePath, or
// against store when remotePath is empty.
func planFromSources(ctx context.Context, local *reconcile.Snapshot, remotePath string, store remote.Store) (*reconcile.Plan, error) {
	if remotePath != "" {
		remoteSnap, err := snapshot.ReadFile(remotePath)
		if err != nil {
			return nil, err
		}
		return reconcile.ReconcileWithPlan(local, remoteSnap)
	}

	remoteSnap, err := store.LoadSnapshot(ctx, local.ProjectID())
	if errors.Is(err, remote.ErrProjectNotFound) {
		return reconcile.InitialPlan(local)
	}
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileWithPlan(local, remoteSnap)
}

// writePlan writes plan as indented JSON to path, or to w when path is empty.
func writePlan(plan *reconcile.Plan, path string, w io.Writer) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// printPlanReport prints a formatted plan report using logger.
func printPlanReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary
	l.Info("Reconciliation report",
		zap.String("project_id", plan.ProjectID),
		zap.Int("writes", s.Writes),
		zap.Int("deletes", s.Deletes),
		zap.Any("by_kind", s.ByKind),
	)

	maxShow := 5
	if len(plan.Operations) < maxShow {
		maxShow = len(plan.Operations)
	}
	for _, op := range plan.Operations[:maxShow] {
		l.Info("Sample operation",
			zap.String("type", string(op.Type)),
			zap.String("entity_kind", string(op.EntityKind)),
			zap.String("document_id", op.DocumentID),
		)
	}
	if len(plan.Operations) > maxShow {
		l.Info("Additional operations not shown", zap.Int("count", len(plan.Operations)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
