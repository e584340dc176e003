package vdom

import (
	"encoding/json"
	"strconv"
)

// Tooltip declaration attribute names.
const (
	AttrTooltip               = "data-tooltip"
	AttrTooltipTemplate       = "data-tooltip-template"
	AttrTooltipInfo           = "data-tooltip-info"
	AttrTooltipPosition       = "data-tooltip-position"
	AttrTooltipDelay          = "data-tooltip-delay"
	AttrTooltipTouchTapToShow = "data-tooltip-touch-tap-to-show"
)

// Tooltip declares a literal tooltip text on the element.
// An empty string still declares a tooltip; it simply shows nothing.
//
//	Button(Tooltip("Save changes"), Text("Save"))
func Tooltip(text string) Attr { return attr(AttrTooltip, text) }

// TooltipTemplate declares a registered template as the tooltip content.
func TooltipTemplate(id string) Attr { return attr(AttrTooltipTemplate, id) }

// TooltipInfo attaches structured template context. The value is
// JSON-encoded; a value that cannot be encoded yields an empty attribute.
//
//	Button(TooltipTemplate("stock"), TooltipInfo(map[string]any{"qty": 3}))
func TooltipInfo(info any) Attr {
	if s, ok := info.(string); ok {
		return attr(AttrTooltipInfo, s)
	}
	b, err := json.Marshal(info)
	if err != nil {
		return attr(AttrTooltipInfo, "")
	}
	return attr(AttrTooltipInfo, string(b))
}

// TooltipPosition sets the preferred side (top, right, bottom, left).
func TooltipPosition(position string) Attr { return attr(AttrTooltipPosition, position) }

// TooltipDelay sets the opening delay in milliseconds.
func TooltipDelay(ms int) Attr { return attr(AttrTooltipDelay, strconv.Itoa(ms)) }

// TooltipTouchTapToShow switches touch interaction from hold-to-show to
// tap-to-toggle.
func TooltipTouchTapToShow() Attr { return attr(AttrTooltipTouchTapToShow, "true") }
