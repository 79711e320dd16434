// Package devtree reads board configuration from a flattened device tree.
//
// It wraps github.com/platinasystems/fdt with the few lookups the drivers
// need: named subnodes, children in a stable order and "compatible"
// matching. fdt keeps children in a map, so every walk here sorts by name.
package devtree

import (
	"errors"
	"sort"
	"strings"

	"github.com/platinasystems/fdt"
)

// Node is a read-only view of one configuration node.
type Node interface {
	Name() string
	Subnode(name string) (Node, bool)
	// Children returns the direct children sorted by name.
	Children() []Node
	Property(name string) ([]byte, bool)
	Compatible() []string
}

// Tree is a parsed device tree blob.
type Tree struct {
	t *fdt.Tree
}

var errNoRoot = errors.New("devtree: blob has no root node")

// Parse decodes a big-endian FDT blob.
func Parse(blob []byte) (tr *Tree, err error) {
	// fdt indexes the blob without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			tr, err = nil, errors.New("devtree: malformed blob")
		}
	}()
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	t.Parse(blob)
	if t.RootNode == nil {
		return nil, errNoRoot
	}
	return &Tree{t: t}, nil
}

// Root returns the root node.
func (t *Tree) Root() Node { return FromFDT(t.t.RootNode) }

// FindCompatible returns every node whose compatible list contains c,
// depth first in name order.
func (t *Tree) FindCompatible(c string) []Node {
	var out []Node
	var walk func(n Node)
	walk = func(n Node) {
		for _, s := range n.Compatible() {
			if s == c {
				out = append(out, n)
				break
			}
		}
		for _, ch := range n.Children() {
			walk(ch)
		}
	}
	walk(t.Root())
	return out
}

// FromFDT wraps an in-memory fdt node.
func FromFDT(n *fdt.Node) Node { return node{n} }

type node struct{ n *fdt.Node }

// Name drops the unit address ("buck1@0" -> "buck1").
func (n node) Name() string {
	name := n.n.Name
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return name
}

func (n node) Subnode(name string) (Node, bool) {
	if c, ok := n.n.Children[name]; ok {
		return node{c}, true
	}
	for _, c := range n.Children() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func (n node) Children() []Node {
	names := make([]string, 0, len(n.n.Children))
	for k := range n.n.Children {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]Node, len(names))
	for i, k := range names {
		out[i] = node{n.n.Children[k]}
	}
	return out
}

func (n node) Property(name string) ([]byte, bool) {
	v, ok := n.n.Properties[name]
	return v, ok
}

func (n node) Compatible() []string {
	v, ok := n.n.Properties["compatible"]
	if !ok {
		return nil
	}
	return StringList(v)
}

// StringList splits a NUL separated property value.
func StringList(v []byte) []string {
	s := strings.TrimRight(string(v), "\x00")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x00")
}
