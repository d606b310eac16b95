// Package component defines lifecycle-managed pieces of a prodcon process,
// such as the meter and tracer providers, and a registry that starts them in
// order and stops them in reverse.
package component
