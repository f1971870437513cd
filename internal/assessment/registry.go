package assessment

import (
	"context"
	"encoding/json"

	"github.com/openassess/openassess/internal/rubric"
	"github.com/openassess/openassess/internal/submissions"
)

// Result is what every handler reports back to the host: accepted or
// rejected-with-reason, plus optional payload for the client script.
type Result struct {
	Accepted bool           `json:"accepted"`
	Reason   string         `json:"reason,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

func reject(reason string) Result { return Result{Accepted: false, Reason: reason} }

// Env carries per-invocation context from the block into a handler.
type Env struct {
	Item     submissions.StudentItem
	Stage    StageConfig
	Criteria []rubric.Criterion
}

// HandlerFunc is one host-invocable operation. It returns an error only for
// internal failures; learner mistakes come back as a rejected Result.
type HandlerFunc func(ctx context.Context, env Env, payload json.RawMessage) (Result, error)

// Capability is a named set of handlers composed onto a block.
type Capability struct {
	Name     string
	Handlers map[string]HandlerFunc
}

// ---- Registry ----

// Factory builds a capability bound to a submissions backend.
type Factory func(api submissions.API) Capability

var capabilities = map[string]Factory{}

// Register associates a capability name with its factory.
// Called from the mixin files' init().
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	capabilities[name] = f
}

// For fetches a capability factory by name, or nil if none.
func For(name string) Factory {
	return capabilities[name]
}
