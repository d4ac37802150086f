// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/math32"
)

func TestIsCollapsibleRequiresNoModelAndExactlyOneChild(t *testing.T) {
	parent := core.NewNode("p")
	assert.False(t, isCollapsible(parent))

	child := core.NewNode("c")
	parent.AddChild(child)
	assert.True(t, isCollapsible(parent))

	parent.AddChild(core.NewNode("c2"))
	assert.False(t, isCollapsible(parent))
}

func TestIsCollapsibleFalseWhenNodeHasModel(t *testing.T) {
	parent := core.NewNode("p")
	parent.ModelIndex = 0
	parent.AddChild(core.NewNode("c"))
	assert.False(t, isCollapsible(parent))
}

func TestExecuteCollapsesSingleChildChainAndComposesTransforms(t *testing.T) {
	scene := core.NewScene()
	root := core.NewNode("root")
	mid := core.NewNode("mid")
	leaf := core.NewNode("leaf")
	leaf.ModelIndex = 0
	root.AddChild(mid)
	mid.AddChild(leaf)

	root.LocalTransform.SetPosition(math32.NewVector3(1, 0, 0))
	mid.LocalTransform.SetPosition(math32.NewVector3(0, 2, 0))
	leaf.LocalTransform.SetPosition(math32.NewVector3(0, 0, 3))

	scene.RootNodes = []*core.Node{root}
	scene.AddModel(core.Model{Name: "m"})

	p := &collapseChildNodesPass{}
	p.Execute(scene)

	assert.Len(t, scene.RootNodes, 1)
	survivor := scene.RootNodes[0]
	assert.True(t, survivor.HasModel())
	assert.Nil(t, survivor.Parent())
	assert.Equal(t, "root/mid/leaf", survivor.Name)
	assert.Equal(t, float32(1), survivor.LocalTransform[12])
	assert.Equal(t, float32(2), survivor.LocalTransform[13])
	assert.Equal(t, float32(3), survivor.LocalTransform[14])
}

func TestExecuteLeavesNodeWithModelUncollapsed(t *testing.T) {
	scene := core.NewScene()
	root := core.NewNode("root")
	root.ModelIndex = 0
	child := core.NewNode("child")
	root.AddChild(child)
	scene.RootNodes = []*core.Node{root}
	scene.AddModel(core.Model{Name: "m"})

	p := &collapseChildNodesPass{}
	p.Execute(scene)

	assert.Equal(t, root, scene.RootNodes[0])
	assert.Len(t, scene.RootNodes[0].Children, 1)
}

func TestNeedsProcessingDetectsCollapsibleNodeDeepInSubtree(t *testing.T) {
	root := core.NewNode("root")
	root.ModelIndex = 0
	a := core.NewNode("a")
	b := core.NewNode("b")
	root.AddChild(a)
	a.AddChild(b)

	scene := core.NewScene()
	scene.RootNodes = []*core.Node{root}

	p := &collapseChildNodesPass{}
	assert.True(t, p.NeedsProcessing(scene, FormatOBJ))
}

func TestMergedNameHandlesEmptyNames(t *testing.T) {
	assert.Equal(t, "child", mergedName("", "child"))
	assert.Equal(t, "parent", mergedName("parent", ""))
	assert.Equal(t, "parent/child", mergedName("parent", "child"))
}
