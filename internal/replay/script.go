package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Step operations.
const (
	OpHover  = "hover"
	OpLeave  = "leave"
	OpDown   = "down"
	OpUp     = "up"
	OpCancel = "cancel"
	OpRemove = "remove"
	OpWait   = "wait"
	OpRun    = "run"
	OpExpect = "expect"
)

// Script is a tree plus the interactions to replay against it.
type Script struct {
	Name string `json:"name,omitempty"`
	Tree Node   `json:"tree"`

	// Templates maps template IDs to text with {key} placeholders filled
	// from the tooltip info, then the environment.
	Templates map[string]string `json:"templates,omitempty"`
	Env       map[string]any    `json:"env,omitempty"`

	Steps []Step `json:"steps"`
}

// Node is a declarative element. A node with only Text is a text node.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Step is one scripted action or assertion.
type Step struct {
	Op     string `json:"op"`
	Target string `json:"target,omitempty"`
	Ms     int    `json:"ms,omitempty"`

	// Count and Text are checked by "expect". Text requires exactly one
	// open popover.
	Count *int   `json:"count,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, errors.New("T031").Wrap(err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the tree and every step.
func (s *Script) Validate() error {
	if s.Tree.Tag == "" {
		return errors.New("T031").WithDetail("tree must have a tag")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errors.New("T031").
				WithSource(fmt.Sprintf("step %d (%s)", i+1, st.Op)).
				WithDetail(err.Error())
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpHover, OpDown, OpUp, OpCancel, OpRemove:
		if st.Target == "" {
			return fmt.Errorf("%q needs a target", st.Op)
		}
	case OpWait:
		if st.Ms < 0 {
			return fmt.Errorf("ms must not be negative")
		}
	case OpExpect:
		if st.Count == nil && st.Text == "" {
			return fmt.Errorf("expect needs a count or a text")
		}
	case OpLeave, OpRun:
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// Build turns the declarative node into a VNode tree.
func (n Node) Build() *vdom.VNode {
	if n.Tag == "" {
		return vdom.Text(n.Text)
	}

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)+len(n.Children)+1)
	for _, k := range keys {
		args = append(args, vdom.Attr{Key: k, Value: n.Attrs[k]})
	}
	if n.Text != "" {
		args = append(args, vdom.Text(n.Text))
	}
	for _, c := range n.Children {
		args = append(args, c.Build())
	}
	return vdom.El(n.Tag, args...)
}
