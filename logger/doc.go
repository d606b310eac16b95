// Package logger provides structured logging for prodcon using zerolog.
//
// It supports JSON and console output, level configuration (including the
// WARNING/CRITICAL spellings accepted on the command line), and
// component-scoped loggers carrying structured fields such as the worker id.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("consumer").WithFields(logger.Fields(logger.FieldWorker, 2))
//	log.Debug("consumed item", logger.Fields(logger.FieldItem, v))
package logger
