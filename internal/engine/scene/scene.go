// Package scene holds the node hierarchy the vehicle is assembled into, the
// drawable parts hanging off it, and the primitive shape factory.
package scene

import (
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Node is an element of the assembly hierarchy. Group nodes have no Part;
// leaf nodes carry exactly one.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	Parent   *Node
	Children []*Node

	// Part is the drawable attached to this node, nil for groups.
	Part *Part
}

// NewNode creates a group node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.Parent != nil {
		child.Parent.remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the node's transform including all ancestors.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// MatrixTo returns the node's transform relative to ancestor. A nil or
// non-ancestor argument yields the world matrix.
func (n *Node) MatrixTo(ancestor *Node) math.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil && p != ancestor; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Walk visits n and its descendants depth-first in child order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Parts returns every part in the subtree in depth-first order.
func (n *Node) Parts() []*Part {
	var parts []*Part
	n.Walk(func(node *Node) bool {
		if node.Part != nil {
			parts = append(parts, node.Part)
		}
		return true
	})
	return parts
}
