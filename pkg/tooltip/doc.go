// Package tooltip shows contextual popovers for elements that declare a
// tooltip through data attributes.
//
// # Declarations
//
// An element declares a tooltip with data-tooltip (literal text, possibly
// empty) or data-tooltip-template (a registered template). Optional
// attributes refine it:
//
//	data-tooltip-info               JSON object passed to the template
//	data-tooltip-position           top, right, bottom or left
//	data-tooltip-delay              opening delay in milliseconds (default 400)
//	data-tooltip-touch-tap-to-show  tap toggles instead of press-and-hold
//
// Elements without a declaration show the declaration of their closest
// declaring ancestor.
//
// # Controller
//
// One Controller serves one mounted vdom.Document. Attach it when the
// document is mounted and Detach it when unmounted:
//
//	ctrl := tooltip.New(doc, popovers,
//	    tooltip.WithClock(loopClock),
//	    tooltip.WithResolver(tooltip.Resolver{Templates: reg}),
//	)
//	ctrl.Attach()
//	defer ctrl.Detach()
//
// The controller keeps at most one session. Entering an anchor schedules a
// show after the delay; leaving, removing the anchor, or starting another
// session cancels it. Each session carries a token that timer callbacks
// re-check before acting, so a callback that fires after its session was
// cancelled is ignored.
//
// When an enter for one anchor arrives without a leave for the previous
// one (a nested anchor, or events coalesced by the client), the first
// popover stays visible until the second one opens and is then replaced
// in the same step, so the user never sees two popovers or an empty gap.
//
// On touch, a press shows the tooltip after the delay and the release
// hides it after a short close delay. With tap-to-show, the tooltip stays
// open after release and the next tap on the anchor closes it.
package tooltip
