package vdom

import (
	"sort"
	"strconv"
)

// Mutation describes a structural change to a Document.
type Mutation struct {
	Added   []*VNode
	Removed []*VNode
}

// MutationObserver is notified after nodes are attached or detached.
type MutationObserver func(m Mutation)

// Document is a mounted VNode tree with an explicit parent index.
//
// The VNode type carries no parent pointers, so upward lookups (such as
// finding the closest ancestor carrying an attribute) go through the
// Document. A Document is not safe for concurrent use; it is owned by the
// event loop that mutates it.
type Document struct {
	root      *VNode
	parents   map[*VNode]*VNode
	observers map[int]MutationObserver
	nextObs   int
	nextHID   int
	hids      bool
}

// NewDocument mounts root and indexes its subtree.
func NewDocument(root *VNode) *Document {
	d := &Document{
		root:      root,
		parents:   make(map[*VNode]*VNode),
		observers: make(map[int]MutationObserver),
	}
	if root != nil {
		d.index(root, nil, nil)
	}
	return d
}

// Root returns the mounted root node.
func (d *Document) Root() *VNode {
	return d.root
}

// Contains reports whether n is currently attached to the document.
func (d *Document) Contains(n *VNode) bool {
	if n == nil {
		return false
	}
	_, ok := d.parents[n]
	return ok
}

// Parent returns the parent of n, or nil for the root and detached nodes.
func (d *Document) Parent(n *VNode) *VNode {
	return d.parents[n]
}

// Closest returns the nearest node, starting at n itself and walking up
// through its ancestors, for which match returns true. Only element nodes
// are considered. It returns nil when nothing matches.
func (d *Document) Closest(n *VNode, match func(*VNode) bool) *VNode {
	for cur := n; cur != nil; cur = d.parents[cur] {
		if cur.IsElement() && match(cur) {
			return cur
		}
	}
	return nil
}

// IsAncestor reports whether a is n or one of n's ancestors.
func (d *Document) IsAncestor(a, n *VNode) bool {
	for cur := n; cur != nil; cur = d.parents[cur] {
		if cur == a {
			return true
		}
	}
	return false
}

// Query returns all attached elements matching the predicate in document order.
func (d *Document) Query(match func(*VNode) bool) []*VNode {
	var out []*VNode
	d.walk(d.root, func(n *VNode) bool {
		if n.IsElement() && match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// QueryOne returns the first attached element matching the predicate.
func (d *Document) QueryOne(match func(*VNode) bool) *VNode {
	var found *VNode
	d.walk(d.root, func(n *VNode) bool {
		if n.IsElement() && match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByID returns the attached element whose id attribute equals id.
func (d *Document) FindByID(id string) *VNode {
	return d.QueryOne(func(n *VNode) bool {
		v, ok := n.AttrString("id")
		return ok && v == id
	})
}

// FindByHID returns the attached element with the given hydration ID.
func (d *Document) FindByHID(hid string) *VNode {
	if hid == "" {
		return nil
	}
	return d.QueryOne(func(n *VNode) bool { return n.HID == hid })
}

// AssignHIDs assigns hydration IDs ("h1", "h2", ...) to every attached
// element that does not have one yet. Subtrees appended later are
// numbered on attach.
func (d *Document) AssignHIDs() {
	d.hids = true
	d.walk(d.root, func(n *VNode) bool {
		d.assignHID(n)
		return true
	})
}

func (d *Document) assignHID(n *VNode) {
	if n.IsElement() && n.HID == "" {
		d.nextHID++
		n.HID = "h" + strconv.Itoa(d.nextHID)
	}
}

// Append attaches child (and its subtree) as the last child of parent.
// It returns false if parent is not attached or child already is.
func (d *Document) Append(parent, child *VNode) bool {
	if child == nil || !d.Contains(parent) || d.Contains(child) {
		return false
	}
	parent.Children = append(parent.Children, child)
	var added []*VNode
	d.index(child, parent, &added)
	if d.hids {
		for _, n := range added {
			d.assignHID(n)
		}
	}
	d.notify(Mutation{Added: added})
	return true
}

// Remove detaches n and its subtree. Removing a node that is not attached
// is a no-op and returns false.
func (d *Document) Remove(n *VNode) bool {
	if !d.Contains(n) {
		return false
	}
	if parent := d.parents[n]; parent != nil {
		for i, c := range parent.Children {
			if c == n {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
	} else {
		d.root = nil
	}
	var removed []*VNode
	d.unindex(n, &removed)
	d.notify(Mutation{Removed: removed})
	return true
}

// Observe registers fn for mutation notifications and returns a function
// that unregisters it.
func (d *Document) Observe(fn MutationObserver) (unsubscribe func()) {
	id := d.nextObs
	d.nextObs++
	d.observers[id] = fn
	return func() { delete(d.observers, id) }
}

func (d *Document) notify(m Mutation) {
	ids := make([]int, 0, len(d.observers))
	for id := range d.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := d.observers[id]; ok {
			fn(m)
		}
	}
}

func (d *Document) index(n, parent *VNode, added *[]*VNode) {
	d.parents[n] = parent
	if added != nil {
		*added = append(*added, n)
	}
	for _, c := range n.Children {
		if c != nil {
			d.index(c, n, added)
		}
	}
}

func (d *Document) unindex(n *VNode, removed *[]*VNode) {
	delete(d.parents, n)
	*removed = append(*removed, n)
	for _, c := range n.Children {
		if c != nil {
			d.unindex(c, removed)
		}
	}
}

// walk visits attached nodes in document order until visit returns false.
func (d *Document) walk(n *VNode, visit func(*VNode) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !d.walk(c, visit) {
			return false
		}
	}
	return true
}
