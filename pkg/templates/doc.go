// Package templates holds named tooltip templates.
//
// A template is a Go function from a Context to a VNode. Anchors refer to
// templates by ID through the data-tooltip-template attribute and may pass
// structured data through data-tooltip-info:
//
//	reg := templates.NewRegistry()
//	reg.MustRegister("coords", func(ctx templates.Context) *vdom.VNode {
//	    return vdom.Ul(
//	        vdom.Li(vdom.Textf("X: %s", ctx.String("x"))),
//	        vdom.Li(vdom.Textf("Y: %s", ctx.String("y"))),
//	    )
//	})
package templates
