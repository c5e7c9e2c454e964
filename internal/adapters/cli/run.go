package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/starhold-go/internal/adapters/metrics"
	"github.com/andrescamacho/starhold-go/internal/application/simulation"
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/infrastructure/config"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		scenarioPath string
		seed         int64
		tickRate     int
		maxDuration  time.Duration
		metricsAddr  string
		autopilotA   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation to completion",
		Long: `Run generates a world and advances the simulation at a fixed external
tick rate until one faction holds no nodes.

By default both factions are engine-driven (self-play). Disable
--autopilot-a to leave FactionA passive, e.g. when measuring raw engine
expansion speed.

Examples:
  starhold-sim run --seed 42
  starhold-sim run --scenario scenarios/close-quarters.yaml
  starhold-sim run --tick-rate 60 --max-duration 5m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if scenarioPath != "" {
				sc, err := config.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				sc.Apply(cfg)
				if sc.Name != "" {
					fmt.Printf("Scenario: %s\n", sc.Name)
				}
			}

			if seed == 0 {
				seed = cfg.World.Seed
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			if tickRate == 0 {
				tickRate = cfg.Runner.TickRate
			}
			if maxDuration == 0 && cfg.Runner.MaxDurationMs > 0 {
				maxDuration = time.Duration(cfg.Runner.MaxDurationMs) * time.Millisecond
			}
			if metricsAddr == "" {
				metricsAddr = cfg.Runner.MetricsAddr
			}

			return runSimulation(cfg, seed, tickRate, maxDuration, metricsAddr, autopilotA)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "World generation seed (0 = from config, then current time)")
	cmd.Flags().IntVar(&tickRate, "tick-rate", 0, "Ticks per second (0 = from config)")
	cmd.Flags().DurationVar(&maxDuration, "max-duration", 0, "Abort the run after this wall-clock duration (0 = from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (empty = disabled)")
	cmd.Flags().BoolVar(&autopilotA, "autopilot-a", true, "Drive FactionA with a second engine instance")

	return cmd
}

func runSimulation(cfg *config.Config, seed int64, tickRate int, maxDuration time.Duration, metricsAddr string, autopilotA bool) error {
	fmt.Printf("Starhold simulation (seed=%d, tick-rate=%d)\n", seed, tickRate)

	sim := simulation.New(newTraceSink())
	if err := sim.Reset(buildSimulationConfig(cfg, seed)); err != nil {
		return fmt.Errorf("failed to initialize simulation: %w", err)
	}
	if autopilotA {
		if err := sim.EnableAutopilot(shared.FactionA); err != nil {
			return err
		}
	}

	collector := startMetrics(metricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if maxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, maxDuration)
		defer cancel()
	}

	// The limiter is the external fixed-rate driver; the simulation itself
	// just consumes wall-clock deltas, clamped internally.
	limiter := rate.NewLimiter(rate.Limit(tickRate), 1)
	lastTick := time.Now()
	lastReport := time.Now()

	for sim.Phase() == simulation.PhasePlaying {
		if err := limiter.Wait(ctx); err != nil {
			fmt.Println("Run aborted:", ctx.Err())
			break
		}

		now := time.Now()
		sim.Tick(now.Sub(lastTick))
		lastTick = now

		if collector != nil {
			collector.Observe(sim.Snapshot())
		}
		if now.Sub(lastReport) >= 5*time.Second {
			printStandings(sim.Snapshot())
			lastReport = now
		}
	}

	if summary := sim.Summary(); summary != nil {
		printSummary(summary)
	}
	return nil
}

// startMetrics wires the Prometheus registry and serves it when enabled.
func startMetrics(addr string) *metrics.SimulationMetricsCollector {
	if addr == "" {
		return nil
	}

	metrics.InitRegistry()
	collector := metrics.NewSimulationMetricsCollector()
	if err := collector.Register(metrics.GetRegistry()); err != nil {
		fmt.Println("Warning: failed to register metrics:", err)
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			fmt.Println("Warning: metrics server stopped:", err)
		}
	}()
	fmt.Printf("Serving metrics on %s/metrics\n", addr)
	return collector
}

func printStandings(snap simulation.Snapshot) {
	fmt.Printf("[%8s] A: %d nodes / %d units   B: %d nodes / %d units   fleets in transit: %d\n",
		snap.Stats.Elapsed.Round(time.Second),
		snap.Stats.FactionA.Nodes, snap.Stats.FactionA.Units,
		snap.Stats.FactionB.Nodes, snap.Stats.FactionB.Units,
		len(snap.Fleets))
}
