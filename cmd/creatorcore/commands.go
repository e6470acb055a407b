package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
	"creatorcore/internal/metrics"
	"creatorcore/internal/scheduler"
	"creatorcore/internal/service"
	"creatorcore/internal/storage/postgres"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduled full sync and pending hydration jobs and expose /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()
			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	sch := a.cfg.Schedule
	sched := scheduler.NewScheduler(a.logger,
		scheduler.Job{
			Name:        "full_sync",
			Interval:    sch.FullSyncInterval,
			Timeout:     sch.FullSyncTimeout,
			SkipInitial: sch.SkipInitialFullSync,
			Run: func(ctx context.Context) error {
				_, err := a.engine.RunFullSync(ctx, service.FullSyncOptions{})
				return err
			},
		},
		scheduler.Job{
			Name:     "pending",
			Interval: sch.PendingInterval,
			Timeout:  sch.PendingTimeout,
			// The full sync already hydrates pending campaigns on start.
			SkipInitial: !sch.SkipInitialFullSync,
			Run: func(ctx context.Context) error {
				_, err := a.engine.RunPending(ctx)
				return err
			},
		},
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.logger.Info("starting creatorcore",
		"sources", len(a.cfg.Sources),
		"full_sync_interval", sch.FullSyncInterval,
		"pending_interval", sch.PendingInterval,
		"metrics_addr", srv.Addr,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		err := sched.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}

func newSyncCmd(configPath *string) *cobra.Command {
	var opts service.FullSyncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one full sync: campaigns, posts, sweeps, metrics, genres and dashboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.engine.RunFullSync(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Sources, "source", nil, "limit the run to these source keys")
	cmd.Flags().BoolVar(&opts.SkipClassification, "skip-classification", false, "skip the genre classification pass")
	return cmd
}

func newPendingCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Re-fetch recent campaigns that are still pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.engine.RunPending(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newDiscoveryCmd(configPath *string) *cobra.Command {
	var opts service.SweepOptions

	cmd := &cobra.Command{
		Use:   "discovery",
		Short: "Re-fetch stale campaigns to find creators missed by the incremental sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(opts.Sources) == 0 {
				active, err := a.engine.RegisterSources(cmd.Context())
				if err != nil {
					return err
				}
				for _, src := range active {
					opts.Sources = append(opts.Sources, src.Key)
				}
			}
			res, err := a.sweep.RunCreatorDiscoverySweep(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Sources, "source", nil, "limit the sweep to these source keys")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "campaigns per source (0 uses the configured limit)")
	return cmd
}

func newClassifyCmd(configPath *string) *cobra.Command {
	var opts service.ClassifyOptions

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify unlabelled campaigns and roll genres up to creators",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.engine.RunClassification(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "campaigns to consider (0 uses the configured limit)")
	cmd.Flags().IntVar(&opts.SearchBudget, "search-budget", 0, "external search calls allowed (0 uses the configured budget)")
	return cmd
}

func newRollupCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rollup",
		Short: "Recompute campaign metrics and dashboard snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			campaigns, err := a.rollup.RefreshCampaignMetrics(cmd.Context(), nil)
			if err != nil {
				return err
			}
			snapshots, err := a.rollup.RefreshDashboards(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]int{
				"campaigns": campaigns,
				"snapshots": snapshots,
			})
		},
	}
}

func newStatsCmd(configPath *string) *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard snapshot for an organization, or the global one",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.rollup.DashboardStats(cmd.Context(), scope(org))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organization id (empty for all organizations, "+access.Unassigned+" for unassigned rows)")
	return cmd
}

func newCampaignsCmd(configPath *string) *cobra.Command {
	var (
		org    string
		filter domain.CampaignFilter
	)

	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "List campaigns with their metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			items, err := a.rollup.ListCampaigns(cmd.Context(), scope(org), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organization id (empty for all organizations)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "title substring")
	cmd.Flags().StringVar(&filter.Genre, "genre", "", "genre id")
	cmd.Flags().StringVar(&filter.Platform, "platform", "", "platform")
	cmd.Flags().StringVar(&filter.IntakeBucket, "intake", "", "24h, 7d or older")
	cmd.Flags().StringVar(&filter.Sort, "sort", "recent", "recent, views, budget or title")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "page offset")
	return cmd
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return postgres.Migrate(cmd.Context(), a.db, a.logger)
		},
	}
}

func scope(org string) access.Context {
	if org == "" {
		return access.System()
	}
	return access.ForOrganization(org)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
