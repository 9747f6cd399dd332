// Package tools exposes the caller-facing document operations through an
// explicit registry. Each operation is registered under a name together with
// the capability it requires; authorization is a precondition check made by
// the dispatcher, not by the handlers. Authentication policy lives outside
// this process — callers arrive with a capability set already established.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"docsearch/internal/service"
)

// Capabilities required by the registered operations.
const (
	CapabilityRead  = "read"
	CapabilityWrite = "write"
)

// Handler executes one operation with a JSON-encoded input payload.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

type operation struct {
	handler    Handler
	capability string
}

// Registry maps operation names to handlers and required capabilities.
type Registry struct {
	ops map[string]operation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]operation)}
}

// Register adds an operation under the given name. The capability is checked
// by Dispatch before the handler runs.
func (r *Registry) Register(name, capability string, h Handler) {
	r.ops[name] = operation{handler: h, capability: capability}
}

// Operations returns the registered operation names, sorted.
func (r *Registry) Operations() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capability returns the capability required by a registered operation.
func (r *Registry) Capability(name string) (string, bool) {
	op, ok := r.ops[name]
	return op.capability, ok
}

// Dispatch looks up the named operation, checks that caps contains its
// required capability, and invokes it.
func (r *Registry) Dispatch(ctx context.Context, name string, caps []string, input json.RawMessage) (any, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrUnknownOperation, name)
	}
	if !hasCapability(caps, op.capability) {
		return nil, fmt.Errorf("%w: operation %s requires capability %q", service.ErrForbidden, name, op.capability)
	}
	return op.handler(ctx, input)
}

func hasCapability(caps []string, want string) bool {
	for _, c := range caps {
		if c == want {
			return true
		}
	}
	return false
}
