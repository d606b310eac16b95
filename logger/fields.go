package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRunID     = "run_id"
	FieldWorker    = "worker"
	FieldKind      = "kind"
	FieldItem      = "item"
	FieldSize      = "size"
	FieldCapacity  = "capacity"
	FieldState     = "state"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"

	FieldItems     = "items"
	FieldConsumed  = "consumed"
	FieldProducers = "producers"
	FieldConsumers = "consumers"
	FieldFrom      = "from"
	FieldSignal    = "signal"

	FieldName       = "name"
	FieldVersion    = "version"
	FieldService    = "service"
	FieldType       = "type"
	FieldStatus     = "status"
	FieldDetails    = "details"
	FieldComponents = "components"
	FieldHealthy    = "healthy"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields(logger.FieldItems, 6, logger.FieldConsumers, 3))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
