package vtest

import "github.com/vango-dev/tooltip/pkg/vdom"

// Crossing returns the mouseleave and mouseenter targets a browser
// dispatches when the pointer moves from one element to another. Leaves
// are ordered innermost first, enters outermost first. Either end may be
// nil for the pointer being outside the document.
func Crossing(doc *vdom.Document, from, to *vdom.VNode) (leaves, enters []*vdom.VNode) {
	oldPath := pathTo(doc, from)
	newPath := pathTo(doc, to)

	for i := len(oldPath) - 1; i >= 0; i-- {
		if !containsNode(newPath, oldPath[i]) {
			leaves = append(leaves, oldPath[i])
		}
	}
	for _, n := range newPath {
		if !containsNode(oldPath, n) {
			enters = append(enters, n)
		}
	}
	return leaves, enters
}

// pathTo returns the ancestors of n from the root down to n itself.
func pathTo(doc *vdom.Document, n *vdom.VNode) []*vdom.VNode {
	var rev []*vdom.VNode
	for cur := n; cur != nil; cur = doc.Parent(cur) {
		rev = append(rev, cur)
	}
	path := make([]*vdom.VNode, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

func containsNode(list []*vdom.VNode, n *vdom.VNode) bool {
	for _, x := range list {
		if x == n {
			return true
		}
	}
	return false
}
