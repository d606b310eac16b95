// Package errors provides the structured error type shared by prodcon
// packages.
//
// Every error raised while building a pipeline is an *AppError carrying a
// machine-readable ErrorCode. Configuration mistakes (non-positive capacity,
// an unknown buffer selector, a worker count below one) use
// ErrCodeInvalidConfig and are always returned synchronously, before any
// worker goroutine exists.
//
//	buf, err := buffer.New[int](buffer.KindQueue, 0)
//	if errors.IsCode(err, errors.ErrCodeInvalidConfig) {
//	    // reject the configuration
//	}
package errors
