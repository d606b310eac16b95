package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/prodcon/bootstrap"
	"github.com/kbukum/prodcon/logger"
	"github.com/kbukum/prodcon/observability"
	"github.com/kbukum/prodcon/pipeline"
)

// componentLoggers are the named loggers a run registers from its own
// logger and drops again when it returns.
var componentLoggers = []string{"pipeline", "tracing"}

func runPipeline(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadRunConfig(cmd, opts)
	if err != nil {
		return err
	}

	cfg.ApplyDefaults()
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())
	defer useGlobalLogger(log)()

	appOpts := []bootstrap.Option{bootstrap.WithLogger(log)}
	if cfg.Debug {
		appOpts = append(appOpts, bootstrap.WithSummaryWriter(cmd.ErrOrStderr()))
	}
	app, err := bootstrap.NewApp(cfg, appOpts...)
	if err != nil {
		return err
	}

	var meters *observability.MeterComponent
	if cfg.Output.Metrics {
		meters = observability.NewMeterComponent(observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
			Environment:    cfg.Environment,
		})
		if err := app.RegisterComponent(meters); err != nil {
			return err
		}
	}

	var tracing *observability.TracerComponent
	if cfg.Output.Trace {
		tcfg := observability.DefaultTracerConfig(cfg.Name)
		tcfg.ServiceVersion = cfg.Version
		tcfg.Environment = cfg.Environment
		tracing = observability.NewTracerComponent(tcfg, observability.NewLogSpanProcessor(logger.Get("tracing")))
		if err := app.RegisterComponent(tracing); err != nil {
			return err
		}
	}

	// Instruments and the tracer exist only once their components started.
	var orch *pipeline.Orchestrator[int]
	app.OnConfigure(func(ctx context.Context, _ *bootstrap.App[*RunConfig]) error {
		var orchOpts []pipeline.Option[int]
		if meters != nil {
			orchOpts = append(orchOpts, pipeline.WithMetrics[int](meters.Metrics()))
		}
		if tracing != nil {
			orchOpts = append(orchOpts, pipeline.WithTracer[int](tracing.Tracer()))
		}
		var err error
		orch, err = pipeline.New[int](cfg.PipelineConfig(), orchOpts...)
		return err
	})

	if meters != nil {
		app.OnStop(func(ctx context.Context) error {
			if orch == nil || orch.State() != pipeline.StateDone {
				return nil
			}
			totals, err := meters.Snapshot(ctx)
			if err != nil {
				return err
			}
			logMetrics(logger.Get("pipeline").WithContext(logger.ContextWithRunID(ctx, orch.RunID())), totals)
			return nil
		})
	}

	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		consumed, err := orch.Run(ctx, pipeline.NewSliceSource(itemRange(cfg.Pipeline.Items)))
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, RunResult{
			Items:     consumed,
			Buffer:    cfg.Pipeline.Buffer,
			Capacity:  cfg.Pipeline.Capacity,
			Producers: cfg.Pipeline.Producers,
			Consumers: cfg.Pipeline.Consumers,
			RunID:     orch.RunID(),
		})
	})
}

// useGlobalLogger makes log the global logger and seeds the component
// loggers from it. The returned func restores the previous state.
func useGlobalLogger(log *logger.Logger) (restore func()) {
	prev := logger.GetGlobalLogger()
	logger.SetGlobalLogger(log)
	logger.RegisterDefaults(componentLoggers...)
	return func() {
		logger.Unregister(componentLoggers...)
		logger.SetGlobalLogger(prev)
	}
}

// itemRange returns 1..n.
func itemRange(n int) []int {
	items := make([]int, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		items = append(items, i)
	}
	return items
}

// formatItems renders items as "[1, 2, 3]".
func formatItems(items []int) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func logMetrics(log *logger.Logger, totals map[string]int64) {
	fields := make(map[string]interface{}, len(totals))
	for name, v := range totals {
		fields[name] = v
	}
	log.Info("metrics snapshot", fields)
}
