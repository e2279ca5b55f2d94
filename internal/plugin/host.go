// Package plugin runs the Onsight NOW operations the way the CRM host invokes
// them: configuration from the host's environment variables, named input and
// output parameters, and a free-text trace sink. Execute blocks until the
// operation completes.
package plugin

//go:generate mockgen -source=host.go -destination=mocks/host_mock.go -package=mocks Host

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Host is the invocation context supplied by the CRM runtime.
type Host interface {
	Environment() map[string]string
	Input(name string) (any, bool)
	SetOutput(name string, value any)
	Trace(format string, args ...any)
}

// MemoryHost is a Host backed by maps. It serves the HTTP action surface and tests.
type MemoryHost struct {
	mu      sync.Mutex
	env     map[string]string
	inputs  map[string]any
	outputs map[string]any
	traces  []string
}

// NewMemoryHost copies env and inputs into a new host.
func NewMemoryHost(env map[string]string, inputs map[string]any) *MemoryHost {
	return &MemoryHost{
		env:     maps.Clone(env),
		inputs:  maps.Clone(inputs),
		outputs: map[string]any{},
	}
}

func (h *MemoryHost) Environment() map[string]string {
	return maps.Clone(h.env)
}

func (h *MemoryHost) Input(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.inputs[name]
	return v, ok
}

func (h *MemoryHost) SetOutput(name string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outputs[name] = value
}

// Output returns a value written by the plugin.
func (h *MemoryHost) Output(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.outputs[name]
	return v, ok
}

// OutputString returns a string output, or "" when unset.
func (h *MemoryHost) OutputString(name string) string {
	v, _ := h.Output(name)
	str, _ := v.(string)
	return str
}

func (h *MemoryHost) Trace(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.traces = append(h.traces, fmt.Sprintf(format, args...))
}

// Traces returns the lines written to the trace sink, oldest first.
func (h *MemoryHost) Traces() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.traces)
}

var _ Host = (*MemoryHost)(nil)
