// Package graph compares hierarchical object graphs.
//
// A graph is a tree of nodes. Every node has a name, an ordered list of
// components and an ordered list of children; every component has a type tag
// and an ordered list of named, typed properties:
//
//	Player                       ← Node
//	├─ Transform                 ← Component
//	│   ├─ position: (0, 1, 0)   ← Property
//	│   └─ scale:    (1, 1, 1)
//	├─ Health
//	│   └─ count: 3
//	└─ Weapon                    ← child Node
//
// Compare walks two graphs in lock-step and reports value, component and
// hierarchy mismatches. Graphs are usually read from YAML documents with
// Decode or Load, but any type satisfying Node can be compared.
package graph

// Node is one object in a graph.
type Node interface {
	Name() string
	Components() []Component
	Children() []Node
}

// Component is a typed bag of properties attached to a node.
type Component interface {
	Type() string
	Properties() []Property
}

// Property is a named value. Struct values nest further properties.
type Property struct {
	Name  string
	Value Value
}
