package cmd

import (
	"fmt"

	"project-sync/core/config"
	"project-sync/core/localcache"
	"project-sync/core/logger"
	"project-sync/core/reconcile"
	"project-sync/core/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportPath string

// cacheCmd is the parent command for local cache maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local snapshot cache",
}

var cacheImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a snapshot file and store it in the cache",
	Args:  cobra.ExactArgs(1),
	RunE: withCache(func(cmd *cobra.Command, args []string, c *localcache.Cache, l *zap.Logger) error {
		s, err := snapshot.ReadFile(args[0])
		if err != nil {
			return err
		}
		docs, err := reconcile.Flatten(s)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := c.Put(cmd.Context(), s); err != nil {
			return err
		}
		l.Info("Snapshot cached", zap.String("project_id", s.ProjectID()), zap.Int("documents", docs.Len()))
		return nil
	}),
}

var cacheExportCmd = &cobra.Command{
	Use:   "export <projectId>",
	Short: "Write a cached snapshot to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE: withCache(func(cmd *cobra.Command, args []string, c *localcache.Cache, l *zap.Logger) error {
		s, err := c.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("project %s: %w", args[0], err)
		}
		if exportPath != "" {
			return snapshot.WriteFile(exportPath, s)
		}
		data, err := snapshot.Encode(s, snapshot.FormatJSON)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}),
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <projectId>",
	Short: "Remove a snapshot from the cache",
	Args:  cobra.ExactArgs(1),
	RunE: withCache(func(cmd *cobra.Command, args []string, c *localcache.Cache, l *zap.Logger) error {
		if err := c.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		l.Info("Snapshot removed", zap.String("project_id", args[0]))
		return nil
	}),
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached project ids",
	Args:  cobra.NoArgs,
	RunE: withCache(func(cmd *cobra.Command, args []string, c *localcache.Cache, l *zap.Logger) error {
		ids, err := c.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	}),
}

func init() {
	cacheExportCmd.Flags().StringVar(&exportPath, "out", "", "Output file (json or yaml by extension); stdout when empty")

	cacheCmd.AddCommand(cacheImportCmd, cacheExportCmd, cacheDeleteCmd, cacheListCmd)
	RootCmd.AddCommand(cacheCmd)
}

// withCache loads configuration, opens the cache and the logger, and runs fn.
func withCache(fn func(cmd *cobra.Command, args []string, c *localcache.Cache, l *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		c, err := localcache.Open(cfg.Cache)
		if err != nil {
			return err
		}
		defer c.Close()

		return fn(cmd, args, c, l)
	}
}
