package tooltip

import (
	"fmt"

	"github.com/vango-dev/tooltip/pkg/templates"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Resolver turns a Declaration into renderable content.
type Resolver struct {
	// Templates resolves data-tooltip-template. May be nil when no
	// templates are used.
	Templates *templates.Registry

	// Translate is applied to literal content. Nil means identity.
	Translate func(string) string

	// Env is passed to every template as Context.Env.
	Env map[string]any
}

// Resolve returns the content node for d. A template takes precedence
// over literal content. Blank literal content without a template yields
// (nil, nil): there is nothing to show, which is not an error.
func (r Resolver) Resolve(d Declaration) (*vdom.VNode, error) {
	if d.TemplateID != "" {
		if r.Templates == nil {
			return nil, fmt.Errorf("%w: %s", templates.ErrUnknownTemplate, d.TemplateID)
		}
		return r.Templates.Render(d.TemplateID, templates.Context{Info: d.Info, Env: r.Env})
	}
	if d.IsBlank() {
		return nil, nil
	}
	text := d.Content
	if r.Translate != nil {
		text = r.Translate(text)
	}
	return vdom.Text(text), nil
}
