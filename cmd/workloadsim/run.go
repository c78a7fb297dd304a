package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
	wl "github.com/azargarov/workload"
	"github.com/azargarov/workload/internal/config"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const progressEvery = 20

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runSimulation(ctx, cfg)
	},
}

// clock counts driver cycles; workloads read it to decide eligibility.
type clock struct {
	cycle int
}

// pacedWorkload computes on every Nth cycle until its budget is spent.
type pacedWorkload struct {
	wl.ConditionalWorkload[*clock]
	budget int
	done   *int
}

func newPacedWorkload(c *clock, everyNth, budget int, done *int) *pacedWorkload {
	return &pacedWorkload{
		ConditionalWorkload: wl.NewConditionalWorkload(c, func(c *clock) bool {
			return c.cycle%everyNth == 0
		}),
		budget: budget,
		done:   done,
	}
}

func (p *pacedWorkload) Compute() {
	p.budget--
	if p.budget == 0 {
		*p.done++
	}
}

func (p *pacedWorkload) Reschedule() bool { return p.budget > 0 }

type simulation struct {
	clock     clock
	items     *wl.DistributedTask[int]
	workloads *wl.WorkloadTask

	itemsDone     int
	workloadsDone int
}

func newSimulation(cfg *config.Config, itemMetrics, workloadMetrics wl.MetricsPolicy) (*simulation, error) {
	s := &simulation{}

	items, err := wl.NewBuilder[int]().
		DistributionSize(cfg.Distributed.Slots).
		EscapeCondition(func(left int) bool { return left == 0 }).
		Action(func(left int) {
			if left == 0 {
				s.itemsDone++
			}
		}).
		Metrics(itemMetrics).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build distributed task: %w", err)
	}
	s.items = items

	for range cfg.Distributed.Items {
		left := cfg.Distributed.RunsPerItem
		s.items.Add(func() int {
			left--
			return left
		})
	}

	s.workloads = wl.NewWorkloadTask(workloadMetrics)
	for range cfg.Workloads.Count {
		s.workloads.AddWorkload(newPacedWorkload(&s.clock, cfg.Workloads.EveryNth, cfg.Workloads.Budget, &s.workloadsDone))
	}
	return s, nil
}

func (s *simulation) drained() bool {
	return s.items.Len() == 0 && s.workloads.Len() == 0
}

func runSimulation(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()
	logger := lg.FromContext(ctx).With(lg.String("run_id", runID))

	reg := prometheus.NewRegistry()
	itemMetrics := wl.NewPromMetrics("distributed")
	workloadMetrics := wl.NewPromMetrics("workloads")
	for _, m := range []*wl.PromMetrics{itemMetrics, workloadMetrics} {
		for _, c := range m.Collectors() {
			if err := reg.Register(c); err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}
		}
	}

	sim, err := newSimulation(cfg, itemMetrics, workloadMetrics)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driver := wl.NewDriver(wl.DriverOptions{
		Interval: cfg.Driver.Interval(),
		Backoff: wl.BackoffPolicy{
			Initial: cfg.Driver.BackoffInitial(),
			Max:     cfg.Driver.BackoffMax(),
		},
		PinToCPU: cfg.Driver.PinCPU,
		CPU:      cfg.Driver.CPU,
	},
		wl.RunnableFunc(func() { sim.clock.cycle++ }),
		sim.items,
		sim.workloads,
		wl.RunnableFunc(func() {
			if sim.clock.cycle%progressEvery == 0 {
				logger.Info("progress",
					lg.Int("cycle", sim.clock.cycle),
					lg.Int("items_pending", sim.items.Len()),
					lg.Int("items_done", sim.itemsDone),
					lg.Int("workloads_pending", sim.workloads.Len()),
					lg.Int("workloads_done", sim.workloadsDone),
				)
			}
			if cfg.Driver.Cycles > 0 && sim.clock.cycle >= cfg.Driver.Cycles || cfg.Driver.Cycles == 0 && sim.drained() {
				cancel()
			}
		}),
	)

	logger.Info("simulation starting",
		lg.Int("slots", cfg.Distributed.Slots),
		lg.Int("items", cfg.Distributed.Items),
		lg.Int("workloads", cfg.Workloads.Count),
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := driver.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("serving metrics", lg.String("addr", cfg.Metrics.Addr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
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
	}

	err = g.Wait()
	logger.Info("simulation finished",
		lg.Int("cycles", sim.clock.cycle),
		lg.Any("failed_cycles", driver.Failures()),
		lg.Int("items_done", sim.itemsDone),
		lg.Int("workloads_done", sim.workloadsDone),
		lg.String("elapsed", time.Since(start).String()),
	)
	return err
}
