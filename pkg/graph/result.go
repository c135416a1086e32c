package graph

import "fmt"

// Side identifies one of the two compared graphs.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// ResultKind names the variant of a Result.
type ResultKind int

const (
	KindValueMismatch ResultKind = iota
	KindComponentMismatch
	KindHierarchyMismatch
)

func (k ResultKind) String() string {
	switch k {
	case KindValueMismatch:
		return "value"
	case KindComponentMismatch:
		return "component"
	case KindHierarchyMismatch:
		return "hierarchy"
	default:
		return "unknown"
	}
}

// Result is one difference between two graphs. The implementations are
// ValueMismatch, ComponentMismatch and HierarchyMismatch.
type Result interface {
	// Location is the slash-separated path of the node or component, e.g.
	// "Player/Child[0]/Component[2]".
	Location() string
	Kind() ResultKind
	fmt.Stringer
	isResult()
}

// ValueMismatch is a property whose values differ between the graphs.
type ValueMismatch struct {
	Path      string
	Component string
	Property  string
	ValueA    string
	ValueB    string
}

// ComponentMismatch is a component present on only one side.
type ComponentMismatch struct {
	Path      string
	Component string
	MissingIn Side
}

// HierarchyMismatch is a child present on only one side.
type HierarchyMismatch struct {
	Path       string
	ChildIndex int
	MissingIn  Side
}

func (m ValueMismatch) Location() string     { return m.Path }
func (m ComponentMismatch) Location() string { return m.Path }
func (m HierarchyMismatch) Location() string { return m.Path }

func (ValueMismatch) Kind() ResultKind     { return KindValueMismatch }
func (ComponentMismatch) Kind() ResultKind { return KindComponentMismatch }
func (HierarchyMismatch) Kind() ResultKind { return KindHierarchyMismatch }

func (ValueMismatch) isResult()     {}
func (ComponentMismatch) isResult() {}
func (HierarchyMismatch) isResult() {}

func (m ValueMismatch) String() string {
	return fmt.Sprintf("%s: %s.%s %q != %q", m.Path, m.Component, m.Property, m.ValueA, m.ValueB)
}

func (m ComponentMismatch) String() string {
	return fmt.Sprintf("%s: component %s missing in %s", m.Path, m.Component, m.MissingIn)
}

func (m HierarchyMismatch) String() string {
	return fmt.Sprintf("%s: child %d missing in %s", m.Path, m.ChildIndex, m.MissingIn)
}

// Summary counts results per kind.
type Summary struct {
	Values     int
	Components int
	Hierarchy  int
}

// Total returns the number of counted results.
func (s Summary) Total() int {
	return s.Values + s.Components + s.Hierarchy
}

// Summarize counts results per kind.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Kind() {
		case KindValueMismatch:
			s.Values++
		case KindComponentMismatch:
			s.Components++
		case KindHierarchyMismatch:
			s.Hierarchy++
		}
	}
	return s
}
