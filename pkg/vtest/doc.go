// Package vtest provides testing helpers for tooltip behavior.
//
// A Harness mounts a tree, attaches a controller driven by a FakeClock and
// exposes pointer helpers addressed by simple selectors:
//
//	func TestSaveTooltip(t *testing.T) {
//	    h := vtest.New(t, vdom.Div(
//	        vdom.Button(vdom.Class("save"), vdom.Tooltip("Save changes")),
//	    ))
//
//	    h.Hover("button.save")
//	    h.ExpectPopovers(0)
//
//	    h.RunAllTimers()
//	    h.ExpectPopoverText("Save changes")
//
//	    h.Leave()
//	    h.ExpectPopovers(0)
//	}
//
// FakeClock can also be used on its own wherever a tooltip.Clock is
// needed.
package vtest
