// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import (
	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/math32"
)

// collapseChildNodesPass removes purely-structural nodes — nodes with
// no Model bound and exactly one child — by folding their transform
// into that single child and re-parenting the child one level up.
// glTF exporters commonly emit such pass-through nodes (OBJ lowering
// never does: every OBJ node carries a Model); collapsing them shortens the
// tree a downstream renderer has to walk without changing the world
// transform of any node that actually carries geometry.
//
// Neither spec.md §4.9's prose nor original_source's PostProcessing/
// directory names an algorithm for this pass (CollapseChildNodes is
// listed in the option bit-mask and the pipeline order only); this is
// the natural reading of its name and is scoped conservatively — a node
// with a Model, or with zero or more than one child, is never touched.
// See DESIGN.md.
type collapseChildNodesPass struct{}

func (p *collapseChildNodesPass) Option() Options { return CollapseChildNodes }

func (p *collapseChildNodesPass) NeedsProcessing(scene *core.Scene, format SourceFormat) bool {
	for _, root := range scene.RootNodes {
		if subtreeHasCollapsibleNode(root) {
			return true
		}
	}
	return false
}

func subtreeHasCollapsibleNode(n *core.Node) bool {
	if isCollapsible(n) {
		return true
	}
	for _, c := range n.Children {
		if subtreeHasCollapsibleNode(c) {
			return true
		}
	}
	return false
}

func isCollapsible(n *core.Node) bool {
	return !n.HasModel() && len(n.Children) == 1
}

func (p *collapseChildNodesPass) Execute(scene *core.Scene) {
	for i, root := range scene.RootNodes {
		collapsedRoot := collapseSubtree(root)
		collapsedRoot.Detach()
		scene.RootNodes[i] = collapsedRoot
	}
}

// collapseSubtree returns the node that should stand in place of n
// after collapsing every collapsible node in n's own subtree, folding
// transforms downward (parent's transform composed with the surviving
// child's, so the child's world transform is unchanged).
func collapseSubtree(n *core.Node) *core.Node {
	collapsed := make([]*core.Node, 0, len(n.Children))
	for _, c := range n.Children {
		collapsed = append(collapsed, collapseSubtree(c))
	}
	n.ReplaceChildren(collapsed)

	for isCollapsible(n) {
		child := n.Children[0]
		var combined math32.Matrix4
		combined.MultiplyMatrices(&n.LocalTransform, &child.LocalTransform)
		child.LocalTransform = combined
		child.Name = mergedName(n.Name, child.Name)
		n = child
	}
	return n
}

func mergedName(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "/" + child
}
