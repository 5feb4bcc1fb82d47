package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/ehr/transforms/internal/admin"
	"github.com/ehr/transforms/internal/idmap"
	"github.com/ehr/transforms/internal/pipeline"
	"github.com/ehr/transforms/internal/platform/db"
	"github.com/ehr/transforms/internal/platform/middleware"
	"github.com/ehr/transforms/pkg/fhirmodels"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "transforms",
		Short:         "Clinical resource reconciliation and reference remapping",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(remapCmd())
	rootCmd.AddCommand(idsCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Map, merge and store a batch of NDJSON records",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			verbose, _ := cmd.Flags().GetBool("assignments")

			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()
			records, err := pipeline.ReadRecords(f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			report, runErr := a.runner.Run(ctx, records)
			printReport(os.Stdout, report, verbose)
			return runErr
		},
	}
	cmd.Flags().String("input", "", "Path to an NDJSON file of records")
	cmd.Flags().Bool("assignments", false, "Print every global id resolved during the batch")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func remapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remap",
		Short: "Rewrite references in stored resources using a dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, _ := cmd.Flags().GetString("scope")
			targets, _ := cmd.Flags().GetStringSlice("targets")
			dictPath, _ := cmd.Flags().GetString("dictionary")

			dict, err := readDictionary(dictPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			report, remapErr := a.runner.Remap(ctx, scope, targets, dict)
			printReport(os.Stdout, report, false)
			return remapErr
		},
	}
	cmd.Flags().String("scope", "", "Scope that owns the target resources")
	cmd.Flags().StringSlice("targets", nil, "Resources to rewrite, as Kind/global-id")
	cmd.Flags().String("dictionary", "", "JSON object mapping old references to new ones")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("targets")
	_ = cmd.MarkFlagRequired("dictionary")
	return cmd
}

// readDictionary loads a JSON object of old reference -> new reference.
func readDictionary(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dict := make(map[string]string)
	if err := json.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	return dict, nil
}

func printReport(w io.Writer, r *pipeline.Report, assignments bool) {
	if r == nil {
		return
	}
	fmt.Fprintf(w, "processed=%d created=%d merged=%d deleted=%d skipped=%d failed=%d\n",
		r.Processed, r.Created, r.Merged, r.Deleted, r.Skipped, len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(w, "FAILED  %s\n", f.Error())
	}
	if !assignments {
		return
	}
	fmt.Fprintf(w, "%-20s %-24s %-40s %-38s %s\n", "SCOPE", "TYPE", "LOCAL ID", "GLOBAL ID", "NEW")
	for _, as := range r.Assignments {
		fmt.Fprintf(w, "%-20s %-24s %-40s %-38s %t\n", as.Key.Scope, as.Key.ResourceType, as.Key.LocalID, as.GlobalID, as.Created)
	}
}

func idsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Inspect and maintain the identifier map",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "lookup <scope> <type> <local-id>",
		Short: "Print the global id of a local key without assigning one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := fhirmodels.ParseKind(args[1])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				key := idmap.Key{Scope: args[0], ResourceType: string(kind), LocalID: args[2]}
				id, ok, err := a.ids.GetExisting(ctx, key)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s: %w", key, idmap.ErrNotFound)
				}
				fmt.Println(id)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reverse <type> <global-id>",
		Short: "Print the local key behind a global id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := fhirmodels.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid global id %q: %w", args[1], err)
			}
			return withApp(func(ctx context.Context, a *app) error {
				key, err := a.ids.Reverse(ctx, string(kind), id)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s %s\n", key.Scope, key.ResourceType, key.LocalID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "link <scope> <type> <local-id> <global-id>",
		Short: "Bind a local key to an existing global id",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := fhirmodels.ParseKind(args[1])
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[3])
			if err != nil {
				return fmt.Errorf("invalid global id %q: %w", args[3], err)
			}
			return withApp(func(ctx context.Context, a *app) error {
				key := idmap.Key{Scope: args[0], ResourceType: string(kind), LocalID: args[2]}
				if err := a.ids.Link(ctx, key, id); err != nil {
					return err
				}
				fmt.Printf("linked %s to %s\n", key, id)
				return nil
			})
		},
	})

	return cmd
}

func withApp(fn func(context.Context, *app) error) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, m *db.Migrator) error {
				count, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, m *db.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				fmt.Println("---------- ---------------------------------------- ---------- --------------------")
				for _, s := range statuses {
					status := "pending"
					appliedAt := ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(fn func(context.Context, *db.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.InMemory() {
		return errors.New("DATABASE_URL is required for migrations")
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.ServiceName, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, db.NewMigrator(pool, cfg.MigrationsDir))
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(30 * time.Second))

	e.GET("/health", db.HealthHandler(a.pool))
	admin.NewHandler(a.ids, a.store).RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + a.cfg.Port
		logger.Info().Str("addr", addr).Msg("starting admin server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
