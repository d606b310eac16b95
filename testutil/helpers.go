package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/prodcon/component"
)

// THelper wraps testing.TB with component lifecycle helpers.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T creates a helper for t.
func T(t testing.TB) *THelper {
	return &THelper{
		t:   t,
		ctx: context.Background(),
	}
}

// WithContext sets a custom context for the helper.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Setup starts a component and registers cleanup with testing.T.
// The component is stopped when the test ends.
func (h *THelper) Setup(c component.Component) {
	h.t.Helper()
	if err := c.Start(h.ctx); err != nil {
		h.t.Fatalf("failed to start component %s: %v", c.Name(), err)
	}

	h.t.Cleanup(func() {
		if err := c.Stop(h.ctx); err != nil {
			h.t.Errorf("failed to stop component %s: %v", c.Name(), err)
		}
	})
}

// SetupAll registers the components in r, starts them in order and stops
// them in reverse order when the test ends.
func (h *THelper) SetupAll(r *component.Registry, components ...component.Component) {
	h.t.Helper()
	for _, c := range components {
		if err := r.Register(c); err != nil {
			h.t.Fatalf("failed to register component %s: %v", c.Name(), err)
		}
	}
	if err := r.StartAll(h.ctx); err != nil {
		h.t.Fatalf("failed to start components: %v", err)
	}

	h.t.Cleanup(func() {
		if err := r.StopAll(h.ctx); err != nil {
			h.t.Errorf("failed to stop components: %v", err)
		}
	})
}
