package tooltip

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// DefaultDelay is the opening delay used when an anchor declares none.
const DefaultDelay = 400 * time.Millisecond

// DefaultCloseDelay is how long a hold-to-show popover stays visible after
// the pointer is released.
const DefaultCloseDelay = 200 * time.Millisecond

// maxDelayMs is the largest delay that fits in a time.Duration. Larger
// values are treated as malformed.
const maxDelayMs = math.MaxInt64 / int64(time.Millisecond)

// Declaration is the tooltip configuration read from an anchor's attributes.
type Declaration struct {
	// Content is the literal tooltip text (data-tooltip).
	Content string

	// TemplateID names a registered template (data-tooltip-template).
	TemplateID string

	// Info is the parsed data-tooltip-info object. It is nil when the
	// attribute is absent or does not hold a JSON object.
	Info map[string]any

	Position popover.Position

	// Delay is the declared opening delay; see DelaySet.
	Delay    time.Duration
	DelaySet bool

	// TouchTapToShow selects tap-to-toggle instead of hold-to-show on touch.
	TouchTapToShow bool
}

// Declares reports whether n carries a tooltip declaration. An empty
// data-tooltip attribute still counts.
func Declares(n *vdom.VNode) bool {
	return n.IsElement() && (n.Has(vdom.AttrTooltip) || n.Has(vdom.AttrTooltipTemplate))
}

// ParseDeclaration reads the tooltip attributes of n. It returns false if n
// declares no tooltip. Malformed optional attributes are ignored.
func ParseDeclaration(n *vdom.VNode) (Declaration, bool) {
	if !Declares(n) {
		return Declaration{}, false
	}

	var d Declaration
	d.Content, _ = n.AttrString(vdom.AttrTooltip)
	d.TemplateID, _ = n.AttrString(vdom.AttrTooltipTemplate)
	d.TemplateID = strings.TrimSpace(d.TemplateID)

	if raw, ok := n.AttrString(vdom.AttrTooltipInfo); ok {
		d.Info = parseInfo(raw)
	}
	if pos, ok := n.AttrString(vdom.AttrTooltipPosition); ok {
		d.Position = popover.ParsePosition(pos)
	}
	if raw, ok := n.AttrString(vdom.AttrTooltipDelay); ok {
		if ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && ms >= 0 && ms <= maxDelayMs {
			d.Delay = time.Duration(ms) * time.Millisecond
			d.DelaySet = true
		}
	}
	if raw, ok := n.AttrString(vdom.AttrTooltipTouchTapToShow); ok {
		d.TouchTapToShow = parseBool(raw)
	} else if n.Has(vdom.AttrTooltipTouchTapToShow) {
		d.TouchTapToShow = true
	}
	return d, true
}

// IsBlank reports whether the declaration has nothing to show: no template
// and only whitespace as literal content.
func (d Declaration) IsBlank() bool {
	return d.TemplateID == "" && strings.TrimSpace(d.Content) == ""
}

// EffectiveDelay returns the declared delay, or def when none was declared.
func (d Declaration) EffectiveDelay(def time.Duration) time.Duration {
	if d.DelaySet {
		return d.Delay
	}
	return def
}

// parseInfo decodes a JSON object. Anything else yields nil so that a bad
// attribute never breaks the tooltip itself.
func parseInfo(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil
	}
	return info
}

// parseBool treats presence as true unless the value says otherwise.
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no", "off":
		return false
	default:
		return true
	}
}
