package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/prodcon/component"
	"github.com/kbukum/prodcon/logger"
)

// ComponentStatus holds the status of a component at startup.
type ComponentStatus struct {
	Name    string
	Type    string
	Details string
	Status  component.HealthStatus
	Message string
}

// Summary records what an App started and how long it took.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	taskDuration    time.Duration
	components      []ComponentStatus
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		components:  make([]ComponentStatus, 0),
	}
}

// SetStartupDuration records the time spent before the task started.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetTaskDuration records the time the task took.
func (s *Summary) SetTaskDuration(d time.Duration) {
	s.taskDuration = d
}

// TaskDuration returns the recorded task duration.
func (s *Summary) TaskDuration() time.Duration {
	return s.taskDuration
}

// Components returns the collected component statuses.
func (s *Summary) Components() []ComponentStatus {
	return s.components
}

// Collect replaces the component list with live health and descriptions
// from registry. A nil registry clears the list.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	s.components = s.components[:0]
	if registry == nil {
		return
	}

	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	for _, c := range registry.All() {
		st := ComponentStatus{Name: c.Name(), Status: component.StatusHealthy}
		if h, ok := health[c.Name()]; ok {
			st.Status = h.Status
			st.Message = h.Message
		}
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			st.Type = desc.Type
			st.Details = desc.Details
		}
		s.components = append(s.components, st)
	}
}

// Healthy reports how many collected components are healthy.
func (s *Summary) Healthy() int {
	n := 0
	for _, c := range s.components {
		if c.Status == component.StatusHealthy {
			n++
		}
	}
	return n
}

// Write prints the summary as a tree.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "%s %s ready in %s\n", s.serviceName, s.version, s.startupDuration.Round(time.Microsecond))

	if len(s.components) == 0 {
		fmt.Fprintf(w, "   └── no components registered\n")
		return
	}

	for i, c := range s.components {
		line := fmt.Sprintf("   %s %s %s", treePrefix(i, len(s.components)), statusIcon(c.Status), c.Name)
		if c.Type != "" {
			line += " [" + c.Type + "]"
		}
		if c.Details != "" {
			line += " " + c.Details
		}
		if c.Message != "" {
			line += " (" + c.Message + ")"
		}
		fmt.Fprintln(w, line)
	}

	healthy, total := s.Healthy(), len(s.components)
	if healthy == total {
		fmt.Fprintf(w, "all components healthy (%d/%d)\n", healthy, total)
	} else {
		fmt.Fprintf(w, "some components have issues (%d/%d healthy)\n", healthy, total)
	}
}

// Log writes one debug line per component and a closing line with totals.
func (s *Summary) Log(log *logger.Logger) {
	for _, c := range s.components {
		log.Debug("component ready", logger.Fields(
			logger.FieldName, c.Name,
			logger.FieldType, c.Type,
			logger.FieldStatus, strings.ToLower(string(c.Status)),
			logger.FieldDetails, c.Details,
		))
	}
	log.Debug("startup complete", logger.MergeWithDuration(logger.Fields(
		logger.FieldService, s.serviceName,
		logger.FieldVersion, s.version,
		logger.FieldComponents, len(s.components),
		logger.FieldHealthy, s.Healthy(),
	), s.startupDuration))
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
