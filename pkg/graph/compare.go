package graph

import "fmt"

// Compare reports the differences between a and b in a fixed order: the
// root's components, then its children depth first, each in index order.
//
// Components and children are paired by position, not by type or name. A
// component inserted in the middle of a list therefore shows up as
// mismatches for every component after it. Components of different types
// at the same index are reported as two ComponentMismatch results and are
// not compared further. Properties are compared pairwise up to the shorter
// list, and each differing property yields one ValueMismatch.
//
// Neither graph is modified. A nil root is reported as a HierarchyMismatch
// at index 0.
func Compare(a, b Node) []Result {
	c := &comparer{results: []Result{}}

	switch {
	case isNil(a) && isNil(b):
	case isNil(a):
		c.add(HierarchyMismatch{Path: b.Name(), ChildIndex: 0, MissingIn: SideA})
	case isNil(b):
		c.add(HierarchyMismatch{Path: a.Name(), ChildIndex: 0, MissingIn: SideB})
	default:
		c.node(a, b, a.Name())
	}
	return c.results
}

type comparer struct {
	results []Result
}

func (c *comparer) add(r Result) {
	c.results = append(c.results, r)
}

func (c *comparer) node(a, b Node, path string) {
	compsA, compsB := a.Components(), b.Components()
	for i := 0; i < max(len(compsA), len(compsB)); i++ {
		compPath := fmt.Sprintf("%s/Component[%d]", path, i)

		switch {
		case i >= len(compsA) || compsA[i] == nil:
			c.add(ComponentMismatch{Path: compPath, Component: typeOf(compsB, i), MissingIn: SideA})
		case i >= len(compsB) || compsB[i] == nil:
			c.add(ComponentMismatch{Path: compPath, Component: typeOf(compsA, i), MissingIn: SideB})
		case compsA[i].Type() != compsB[i].Type():
			c.add(ComponentMismatch{Path: compPath, Component: compsA[i].Type(), MissingIn: SideB})
			c.add(ComponentMismatch{Path: compPath, Component: compsB[i].Type(), MissingIn: SideA})
		default:
			c.component(compsA[i], compsB[i], compPath)
		}
	}

	kidsA, kidsB := a.Children(), b.Children()
	for i := 0; i < max(len(kidsA), len(kidsB)); i++ {
		childPath := fmt.Sprintf("%s/Child[%d]", path, i)

		switch {
		case i >= len(kidsA) || isNil(kidsA[i]):
			c.add(HierarchyMismatch{Path: childPath, ChildIndex: i, MissingIn: SideA})
		case i >= len(kidsB) || isNil(kidsB[i]):
			c.add(HierarchyMismatch{Path: childPath, ChildIndex: i, MissingIn: SideB})
		default:
			c.node(kidsA[i], kidsB[i], childPath)
		}
	}
}

func (c *comparer) component(a, b Component, path string) {
	propsA, propsB := a.Properties(), b.Properties()
	n := min(len(propsA), len(propsB))

	for i := 0; i < n; i++ {
		pa, pb := propsA[i], propsB[i]
		if Equal(pa.Value, pb.Value) {
			continue
		}
		c.add(ValueMismatch{
			Path:      path,
			Component: a.Type(),
			Property:  pa.Name,
			ValueA:    Format(pa.Value),
			ValueB:    Format(pb.Value),
		})
	}
}

// typeOf names the component at i, or "<missing>" when the slot is empty.
func typeOf(comps []Component, i int) string {
	if i < len(comps) && comps[i] != nil {
		return comps[i].Type()
	}
	return "<missing>"
}

// isNil reports whether n is absent, including a nil *Object held in the
// interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	o, ok := n.(*Object)
	return ok && o == nil
}
