// Package testutil provides test helpers for prodcon components.
//
// Components are started through the helper and stopped automatically
// when the test ends:
//
//	func TestMetrics(t *testing.T) {
//	    meters := observability.NewMeterComponent(observability.DefaultMeterConfig("test"))
//	    testutil.T(t).Setup(meters)
//	    // meters is stopped by t.Cleanup
//	}
//
// Log output from concurrent workers can be captured with CaptureLogger,
// which serializes writes so the buffer is safe to share between
// goroutines:
//
//	log, logs := testutil.CaptureLogger(t, "debug")
//	orch, _ := pipeline.New[int](cfg, pipeline.WithLogger[int](log))
//	// ...
//	if !logs.Contains(`"message":"pipeline finished"`) { ... }
package testutil
