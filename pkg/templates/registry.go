package templates

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Registry errors.
var (
	ErrUnknownTemplate   = errors.New("templates: unknown template")
	ErrDuplicateTemplate = errors.New("templates: template already registered")
)

// Func renders a template for the given context.
type Func func(ctx Context) *vdom.VNode

// Context is the data a template renders with.
type Context struct {
	// Info is the structured data declared on the anchor element.
	// It is nil when the element declares none or the data was malformed.
	Info map[string]any

	// Env holds application-wide values shared by all templates.
	Env map[string]any
}

// Value returns Info[key], falling back to Env[key].
func (c Context) Value(key string) any {
	if v, ok := c.Info[key]; ok {
		return v
	}
	return c.Env[key]
}

// String returns Value(key) as text, or "" when unset. Numbers decoded
// from JSON info print in plain decimal form.
func (c Context) String(key string) string {
	switch v := c.Value(key).(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Registry maps template IDs to render functions.
// Templates are usually registered at startup; lookups may happen from
// any session goroutine.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Func)}
}

// Register adds a template under id.
func (r *Registry) Register(id string, fn Func) error {
	if id == "" || fn == nil {
		return fmt.Errorf("templates: register %q: id and func are required", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, id)
	}
	r.templates[id] = fn
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id string, fn Func) {
	if err := r.Register(id, fn); err != nil {
		panic(err)
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[id]
	return ok
}

// IDs returns the registered template IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render renders the template registered under id.
func (r *Registry) Render(id string, ctx Context) (*vdom.VNode, error) {
	r.mu.RLock()
	fn, ok := r.templates[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	return fn(ctx), nil
}
