package vdom

import "testing"

func sampleTree() (*VNode, *VNode, *VNode, *VNode) {
	inner := Span(Class("inner"), Text("Action"))
	outer := Span(Class("outer"), Tooltip("hello"), inner)
	other := Button(ID("other"), Text("Other"))
	root := Div(outer, other)
	return root, outer, inner, other
}

func TestDocumentContainsAndParent(t *testing.T) {
	root, outer, inner, other := sampleTree()
	doc := NewDocument(root)

	for _, n := range []*VNode{root, outer, inner, other} {
		if !doc.Contains(n) {
			t.Errorf("Contains(%s) = false, want true", n.Tag)
		}
	}
	if doc.Parent(inner) != outer {
		t.Error("Parent(inner) should be outer")
	}
	if doc.Parent(root) != nil {
		t.Error("root should have no parent")
	}
	if doc.Contains(Div()) {
		t.Error("unmounted node should not be contained")
	}
	if doc.Contains(nil) {
		t.Error("nil should not be contained")
	}
}

func TestDocumentClosest(t *testing.T) {
	root, outer, inner, other := sampleTree()
	doc := NewDocument(root)
	declares := func(n *VNode) bool { return n.Has(AttrTooltip) }

	if got := doc.Closest(inner, declares); got != outer {
		t.Errorf("Closest(inner) = %v, want outer", got)
	}
	if got := doc.Closest(outer, declares); got != outer {
		t.Errorf("Closest(outer) = %v, want outer itself", got)
	}
	if got := doc.Closest(other, declares); got != nil {
		t.Errorf("Closest(other) = %v, want nil", got)
	}

	// Text nodes are skipped but their ancestors are still searched.
	text := inner.Children[0]
	if got := doc.Closest(text, declares); got != outer {
		t.Errorf("Closest(text) = %v, want outer", got)
	}
}

func TestDocumentRemoveDetachesSubtree(t *testing.T) {
	root, outer, inner, other := sampleTree()
	doc := NewDocument(root)

	var removed []*VNode
	unsubscribe := doc.Observe(func(m Mutation) {
		removed = append(removed, m.Removed...)
	})
	defer unsubscribe()

	if !doc.Remove(outer) {
		t.Fatal("Remove(outer) = false, want true")
	}
	if doc.Contains(outer) || doc.Contains(inner) {
		t.Error("removed subtree should be detached")
	}
	if !doc.Contains(other) {
		t.Error("sibling should stay attached")
	}
	if len(root.Children) != 1 || root.Children[0] != other {
		t.Errorf("root children = %d, want only other", len(root.Children))
	}
	if len(removed) != 3 {
		t.Errorf("observer saw %d removed nodes, want 3 (outer, inner, text)", len(removed))
	}

	if doc.Remove(outer) {
		t.Error("removing a detached node should be a no-op")
	}
}

func TestDocumentAppendAssignsHIDs(t *testing.T) {
	root, _, _, other := sampleTree()
	doc := NewDocument(root)
	doc.AssignHIDs()

	if root.HID != "h1" {
		t.Errorf("root HID = %q, want h1", root.HID)
	}
	if other.HID == "" {
		t.Error("other should have a HID")
	}

	var added int
	doc.Observe(func(m Mutation) { added += len(m.Added) })

	child := Button(Tooltip("late"))
	if !doc.Append(root, child) {
		t.Fatal("Append() = false, want true")
	}
	if child.HID == "" {
		t.Error("appended element should receive a HID")
	}
	if doc.FindByHID(child.HID) != child {
		t.Error("FindByHID should find the appended child")
	}
	if added != 1 {
		t.Errorf("observer saw %d added nodes, want 1", added)
	}
	if doc.Append(root, child) {
		t.Error("appending an attached node should fail")
	}
	if doc.Append(Div(), Span()) {
		t.Error("appending to a detached parent should fail")
	}
}

func TestDocumentUnsubscribe(t *testing.T) {
	root, outer, _, _ := sampleTree()
	doc := NewDocument(root)

	calls := 0
	unsubscribe := doc.Observe(func(Mutation) { calls++ })
	unsubscribe()
	doc.Remove(outer)

	if calls != 0 {
		t.Errorf("unsubscribed observer called %d times", calls)
	}
}

func TestDocumentQuery(t *testing.T) {
	root, outer, _, other := sampleTree()
	doc := NewDocument(root)

	if got := doc.FindByID("other"); got != other {
		t.Errorf("FindByID(other) = %v", got)
	}
	got := doc.Query(func(n *VNode) bool { return n.Tag == "span" })
	if len(got) != 2 || got[0] != outer {
		t.Errorf("Query(span) returned %d nodes, want 2 starting with outer", len(got))
	}
}
