package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kbukum/prodcon/component"
	"github.com/kbukum/prodcon/logger"
)

// App owns the lifecycle of one command invocation. The type parameter C is
// the command's config type; any struct embedding config.ServiceConfig
// satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(observability.NewMeterComponent(mc))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := orch.Run(ctx, src)
//	    return err
//	})
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer
	onConfigure     []func(ctx context.Context, app *App[C]) error
	onStop          []Hook
}

// defaultGracefulTimeout bounds OnStop hooks plus component shutdown.
const defaultGracefulTimeout = 15 * time.Second

// NewApp applies defaults to cfg, validates it and initializes the logger.
// Validation errors are returned unwrapped so callers can inspect the
// AppError code.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: defaultGracefulTimeout,
	}

	o := resolveOptions(opts)
	app.summaryOut = o.summaryOut

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Components = component.NewRegistry(app.Logger.WithComponent("registry"))
	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback that runs after components have started
// and before the ready check. Work that needs started components, such as
// instruments from a meter component, belongs here.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// RunTask starts components, runs the OnConfigure callbacks, then executes
// task. The first SIGINT or SIGTERM cancels the task context and restores
// the default signal handling, so a second signal terminates the process.
// Components are stopped when the task returns, and the task error takes
// precedence over any shutdown error.
//
// Cancellation reaches only code that watches the context; a pipeline run
// in progress finishes its termination protocol first.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	release := a.cancelOnSignal(taskCtx, cancel)
	defer release()

	start := time.Now()
	taskErr := task(taskCtx)
	a.Summary.SetTaskDuration(time.Since(start))

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Replaced in tests.
var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

// cancelOnSignal calls cancel on the first SIGINT or SIGTERM. The handler is
// deregistered before cancel runs. release deregisters it if no signal
// arrived and is safe to call more than once.
func (a *App[C]) cancelOnSignal(ctx context.Context, cancel context.CancelFunc) (release func()) {
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var once sync.Once
	release = func() { once.Do(func() { stopSignals(sigCh) }) }

	go func() {
		select {
		case sig := <-sigCh:
			release()
			a.Logger.Warn("received signal, canceling task; signal again to exit immediately",
				logger.Fields(logger.FieldSignal, sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()
	return release
}

// Shutdown stops all started components. RunTask calls it implicitly.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Debug("starting application", logger.Fields(logger.FieldName, a.Name, logger.FieldVersion, a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.WithError(err).Warn("ready check reported issues")
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary(ctx)
	return nil
}

// DisplaySummary reports the startup summary. It is written as a tree when
// WithSummaryWriter was given and logged at debug level otherwise.
func (a *App[C]) DisplaySummary(ctx context.Context) {
	a.Summary.Collect(ctx, a.Components)
	if a.summaryOut != nil {
		a.Summary.Write(a.summaryOut)
		return
	}
	a.Summary.Log(a.Logger)
}

func (a *App[C]) configure(ctx context.Context) error {
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.WithError(err).Error("onStop hook error")
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.WithError(err).Error("shutdown completed with errors")
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Debug("application stopped")
	return shutdownErr
}
