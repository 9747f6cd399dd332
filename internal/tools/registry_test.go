package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"docsearch/internal/service"
)

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry()
	r.Register("fetchThing", CapabilityRead, func(_ context.Context, input json.RawMessage) (any, error) {
		return string(input), nil
	})
	r.Register("storeThing", CapabilityWrite, func(_ context.Context, _ json.RawMessage) (any, error) {
		return "stored", nil
	})

	tests := []struct {
		name    string
		op      string
		caps    []string
		wantErr error
		want    any
	}{
		{
			name: "read op with read capability",
			op:   "fetchThing",
			caps: []string{"read"},
			want: `{"id":1}`,
		},
		{
			name: "write op with both capabilities",
			op:   "storeThing",
			caps: []string{"read", "write"},
			want: "stored",
		},
		{
			name:    "write op without write capability",
			op:      "storeThing",
			caps:    []string{"read"},
			wantErr: service.ErrForbidden,
		},
		{
			name:    "read op with no capabilities",
			op:      "fetchThing",
			caps:    nil,
			wantErr: service.ErrForbidden,
		},
		{
			name:    "unknown operation",
			op:      "deleteThing",
			caps:    []string{"read", "write"},
			wantErr: service.ErrUnknownOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Dispatch(context.Background(), tt.op, tt.caps, json.RawMessage(`{"id":1}`))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Dispatch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Dispatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_Operations(t *testing.T) {
	r := NewRegistry()
	r.Register("b", CapabilityRead, nil)
	r.Register("a", CapabilityWrite, nil)
	r.Register("c", CapabilityRead, nil)

	got := r.Operations()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Operations() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Operations()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_Capability(t *testing.T) {
	r := NewRegistry()
	r.Register("storeThing", CapabilityWrite, nil)

	if cap, ok := r.Capability("storeThing"); !ok || cap != CapabilityWrite {
		t.Errorf("Capability(storeThing) = %q, %v, want write, true", cap, ok)
	}
	if _, ok := r.Capability("missing"); ok {
		t.Error("Capability(missing) = true, want false")
	}
}
