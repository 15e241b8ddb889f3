package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/catalogcms/backend/internal/config"
	"github.com/catalogcms/backend/internal/logging"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing catalog tables and columns",
	Long: `migrate brings the catalog database up to date. Changes are additive only:
missing tables are created and missing columns are added. Existing data is
never touched, so it is safe to run on every deploy.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := repository.Bootstrap(cmd.Context(), store); err != nil {
			return err
		}
		slog.Info("schema up to date", "path", store.Path())
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the columns of every managed table",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "database: %s\n", store.Path())
		for _, table := range repository.Tables() {
			cols, err := repository.TableColumns(cmd.Context(), store, table)
			if err != nil {
				return err
			}
			if len(cols) == 0 {
				fmt.Fprintf(out, "  %-16s (missing)\n", table)
				continue
			}
			fmt.Fprintf(out, "  %-16s %s\n", table, strings.Join(cols, ", "))
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <target>",
	Short: "Copy the bundled seed database to target unless it already exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := repository.PathOptions{SiteDir: cfg.SiteDir}.SeedPath()
		copied, err := repository.SeedIfMissing(seed, args[0])
		if err != nil {
			return err
		}
		if !copied {
			slog.Info("nothing to seed", "seed", seed, "target", args[0])
		}
		return nil
	},
}

// openStore resolves the database the same way the server does unless --db
// names a file.
func openStore(ctx context.Context) (*repository.Store, error) {
	explicit := dbPath
	if explicit == "" {
		explicit = cfg.DBPath
	}
	path, err := repository.ResolvePath(repository.PathOptions{
		Explicit:   explicit,
		SiteDir:    cfg.SiteDir,
		RuntimeDir: cfg.RuntimeDir,
	})
	if err != nil {
		return nil, err
	}
	return repository.Open(ctx, path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (defaults to DB_PATH or the resolved site database)")
	rootCmd.AddCommand(statusCmd, seedCmd)
}

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}
