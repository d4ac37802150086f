// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/ocasi3d/ocasi/math32"

// Node represents one entry in a Scene's transform hierarchy. It carries
// an optional reference to a Model (by index into Scene.Models) and a
// local transform relative to its parent; world transforms are not
// cached on the Node itself, since OCASI hands the hierarchy to a caller
// that will walk it however its renderer prefers.
//
// Parent is a weak, non-owning back-reference: a Node's lifetime is
// entirely owned by its parent's Children slice (or by Scene.RootNodes
// for a root), the same ownership direction original_source's Scene.h
// documents for its raw Node* parent pointer.
type Node struct {
	parent         *Node
	Children       []*Node
	Name           string
	ModelIndex     uint32
	LocalTransform math32.Matrix4
}

// NewNode returns a named Node with no model bound and an identity
// transform.
func NewNode(name string) *Node {
	n := &Node{Name: name, ModelIndex: InvalidIndex}
	n.LocalTransform.Identity()
	return n
}

// Parent returns the owning Node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// HasModel reports whether ModelIndex references a Model.
func (n *Node) HasModel() bool { return n.ModelIndex != InvalidIndex }

// AddChild appends child to Children and sets its parent back-reference.
// It panics if child already has a different parent, since a Node's
// Children slice is meant to be its sole owner.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil && child.parent != n {
		panic("core: node already has a parent")
	}
	child.parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes child from Children, clearing its parent
// back-reference. It is a no-op if child is not actually a child of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Walk calls fn for n and then recursively for every descendant, in
// depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// ReplaceChildren swaps n's Children for newChildren, fixing up each new
// child's parent back-reference. It is used by post-process passes (see
// postprocess.CollapseChildNodes) that need to rewrite a node's immediate
// descendants wholesale.
func (n *Node) ReplaceChildren(newChildren []*Node) {
	for _, c := range newChildren {
		c.parent = n
	}
	n.Children = newChildren
}

// Detach clears n's parent back-reference, marking it a root. Used by
// postprocess.CollapseChildNodes when a surviving descendant moves up
// to stand in for a collapsed ancestor at Scene.RootNodes level, where
// there is no parent node left to call ReplaceChildren and fix the
// back-reference for it.
func (n *Node) Detach() { n.parent = nil }
