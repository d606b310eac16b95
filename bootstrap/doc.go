// Package bootstrap runs a command through a uniform lifecycle.
//
// NewApp applies config defaults, validates the config and initializes the
// logger. RunTask then starts registered components, runs the OnConfigure
// callbacks, executes the task, runs the OnStop hooks and stops components
// in reverse order. The first SIGINT or SIGTERM cancels the task context; a
// second one terminates the process.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(metrics)
//	return app.RunTask(ctx, runPipeline)
package bootstrap
