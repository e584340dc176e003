package vtest

import (
	"strings"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Match compiles a simple selector into a predicate. Supported forms are
// a tag, #id, .class, [attr] and [attr=value], combined without spaces:
//
//	button
//	button.mybtn
//	#save
//	button[data-tooltip]
//	span[data-tooltip-position=top]
func Match(selector string) func(*vdom.VNode) bool {
	tag, id, classes, attrs := parseSelector(selector)
	return func(n *vdom.VNode) bool {
		if !n.IsElement() {
			return false
		}
		if tag != "" && n.Tag != tag {
			return false
		}
		if id != "" {
			if v, _ := n.AttrString("id"); v != id {
				return false
			}
		}
		if len(classes) > 0 {
			have, _ := n.AttrString("class")
			fields := strings.Fields(have)
			for _, want := range classes {
				if !contains(fields, want) {
					return false
				}
			}
		}
		for key, want := range attrs {
			if !n.Has(key) {
				return false
			}
			if want != nil {
				if v, _ := n.AttrString(key); v != *want {
					return false
				}
			}
		}
		return true
	}
}

func parseSelector(sel string) (tag, id string, classes []string, attrs map[string]*string) {
	attrs = make(map[string]*string)
	sel = strings.TrimSpace(sel)

	for len(sel) > 0 {
		switch sel[0] {
		case '[':
			end := strings.IndexByte(sel, ']')
			if end < 0 {
				end = len(sel)
			}
			body := sel[1:end]
			if k, v, ok := strings.Cut(body, "="); ok {
				v = strings.Trim(v, `"'`)
				attrs[k] = &v
			} else {
				attrs[body] = nil
			}
			if end < len(sel) {
				end++
			}
			sel = sel[end:]
		case '#', '.':
			kind := sel[0]
			rest := sel[1:]
			n := strings.IndexAny(rest, "#.[")
			if n < 0 {
				n = len(rest)
			}
			if kind == '#' {
				id = rest[:n]
			} else {
				classes = append(classes, rest[:n])
			}
			sel = rest[n:]
		default:
			n := strings.IndexAny(sel, "#.[")
			if n < 0 {
				n = len(sel)
			}
			tag = sel[:n]
			sel = sel[n:]
		}
	}
	return tag, id, classes, attrs
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
