package graph_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/filestory/pkg/graph"
)

func TestCompare_Reflexive(t *testing.T) {
	a := mustParse(t, playerDoc)
	b := mustParse(t, playerDoc)

	assert.Empty(t, graph.Compare(a, a))
	assert.Empty(t, graph.Compare(a, b))
}

func TestCompare_ExtraTrailingChild(t *testing.T) {
	a := mustParse(t, playerDoc)
	b := mustParse(t, playerDoc+"  - name: Cape\n")

	got := graph.Compare(a, b)
	want := []graph.Result{
		graph.HierarchyMismatch{Path: "Player/Child[2]", ChildIndex: 2, MissingIn: graph.SideA},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
	}

	reversed := graph.Compare(b, a)
	require.Len(t, reversed, 1)
	assert.Equal(t, graph.SideB, reversed[0].(graph.HierarchyMismatch).MissingIn)
}

func TestCompare_SingleValueChange(t *testing.T) {
	a := mustParse(t, playerDoc)
	b := mustParse(t, strings.Replace(playerDoc, "int: 3", "int: 5", 1))

	got := graph.Compare(a, b)
	want := []graph.Result{
		graph.ValueMismatch{
			Path:      "Player/Component[1]",
			Component: "Health",
			Property:  "count",
			ValueA:    "3",
			ValueB:    "5",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare_OneResultPerProperty(t *testing.T) {
	a := mustParse(t, playerDoc)
	doc := strings.Replace(playerDoc, "float: 2.5", "float: 3", 1)
	doc = strings.Replace(doc, "string: quick", "string: slow", 1)
	b := mustParse(t, doc)

	got := graph.Compare(a, b)
	require.Len(t, got, 1, "a struct with two changed fields is one mismatch")

	vm := got[0].(graph.ValueMismatch)
	assert.Equal(t, "stats", vm.Property)
	assert.Equal(t, "{speed: 2.5, label: quick}", vm.ValueA)
	assert.Equal(t, "{speed: 3, label: slow}", vm.ValueB)
}

func TestCompare_NestedChildPath(t *testing.T) {
	a := mustParse(t, playerDoc)
	b := mustParse(t, strings.Replace(playerDoc, "int: 10", "int: 12", 1))

	got := graph.Compare(a, b)
	require.Len(t, got, 1)
	assert.Equal(t, "Player/Child[0]/Component[0]", got[0].Location())
	assert.Equal(t, graph.KindValueMismatch, got[0].Kind())
}

func TestCompare_Components(t *testing.T) {
	base := `
name: Root
components:
  - type: Transform
    properties:
      - name: x
        int: 1
`
	t.Run("extra component in B", func(t *testing.T) {
		a := mustParse(t, base)
		b := mustParse(t, base+`  - type: Collider
    properties:
      - name: radius
        float: 0.5
`)
		got := graph.Compare(a, b)
		want := []graph.Result{
			graph.ComponentMismatch{Path: "Root/Component[1]", Component: "Collider", MissingIn: graph.SideA},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("extra component in A", func(t *testing.T) {
		a := mustParse(t, base+"  - type: Rigidbody\n")
		b := mustParse(t, base)
		got := graph.Compare(a, b)
		want := []graph.Result{
			graph.ComponentMismatch{Path: "Root/Component[1]", Component: "Rigidbody", MissingIn: graph.SideB},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("type mismatch at same index", func(t *testing.T) {
		a := mustParse(t, base)
		b := mustParse(t, strings.Replace(base, "Transform", "RectTransform", 1))
		got := graph.Compare(a, b)
		want := []graph.Result{
			graph.ComponentMismatch{Path: "Root/Component[0]", Component: "Transform", MissingIn: graph.SideB},
			graph.ComponentMismatch{Path: "Root/Component[0]", Component: "RectTransform", MissingIn: graph.SideA},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("extra properties are ignored", func(t *testing.T) {
		a := mustParse(t, base)
		b := mustParse(t, base+`      - name: y
        int: 2
`)
		assert.Empty(t, graph.Compare(a, b))
	})
}

func TestCompare_ReferencesByName(t *testing.T) {
	doc := `
name: Root
components:
  - type: Follow
    properties:
      - name: target
        ref: %s
`
	a := mustParse(t, strings.Replace(doc, "%s", "Enemy", 1))
	b := mustParse(t, strings.Replace(doc, "%s", "Enemy", 1))
	null := mustParse(t, strings.Replace(doc, "%s", "null", 1))

	assert.Empty(t, graph.Compare(a, b))

	got := graph.Compare(a, null)
	require.Len(t, got, 1)
	vm := got[0].(graph.ValueMismatch)
	assert.Equal(t, "Enemy", vm.ValueA)
	assert.Equal(t, "null", vm.ValueB)
}

func TestCompare_Deterministic(t *testing.T) {
	a := mustParse(t, playerDoc)
	doc := strings.Replace(playerDoc, "int: 3", "int: 4", 1)
	doc = strings.Replace(doc, "enum: Fast", "enum: Slow", 1)
	doc = strings.Replace(doc, "  - name: Hat\n", "", 1)
	b := mustParse(t, doc)

	first := graph.Compare(a, b)
	second := graph.Compare(a, b)
	require.Len(t, first, 3)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Compare() differs (-first +second):\n%s", diff)
	}

	assert.Equal(t, "count", first[0].(graph.ValueMismatch).Property)
	assert.Equal(t, "mode", first[1].(graph.ValueMismatch).Property)
	assert.Equal(t, graph.KindHierarchyMismatch, first[2].Kind())

	sum := graph.Summarize(first)
	assert.Equal(t, graph.Summary{Values: 2, Hierarchy: 1}, sum)
	assert.Equal(t, 3, sum.Total())
}

func TestCompare_DoesNotMutate(t *testing.T) {
	a := mustParse(t, playerDoc)
	b := mustParse(t, strings.Replace(playerDoc, "int: 3", "int: 5", 1))
	before := mustParse(t, playerDoc)

	graph.Compare(a, b)
	if diff := cmp.Diff(before, a); diff != "" {
		t.Errorf("graph A changed (-before +after):\n%s", diff)
	}
}

func TestCompare_NilRoots(t *testing.T) {
	a := mustParse(t, playerDoc)

	assert.Empty(t, graph.Compare(nil, nil))

	got := graph.Compare(a, nil)
	require.Len(t, got, 1)
	assert.Equal(t, graph.SideB, got[0].(graph.HierarchyMismatch).MissingIn)

	var missing *graph.Object
	assert.Empty(t, graph.Compare(missing, missing))

	got = graph.Compare(missing, a)
	want := []graph.Result{
		graph.HierarchyMismatch{Path: "Player", ChildIndex: 0, MissingIn: graph.SideA},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
	}

	got = graph.Compare(a, missing)
	require.Len(t, got, 1)
	assert.Equal(t, graph.SideB, got[0].(graph.HierarchyMismatch).MissingIn)
}

func TestCompare_NullEntriesKeepPosition(t *testing.T) {
	t.Run("null component", func(t *testing.T) {
		a := mustParse(t, `
name: R
components:
  - ~
  - type: X
`)
		b := mustParse(t, `
name: R
components:
  - type: Y
  - type: X
`)
		got := graph.Compare(a, b)
		want := []graph.Result{
			graph.ComponentMismatch{Path: "R/Component[0]", Component: "Y", MissingIn: graph.SideA},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("null child", func(t *testing.T) {
		a := mustParse(t, `
name: R
children:
  - name: C0
  - name: C1
`)
		b := mustParse(t, `
name: R
children:
  - ~
  - name: C1
`)
		got := graph.Compare(a, b)
		want := []graph.Result{
			graph.HierarchyMismatch{Path: "R/Child[0]", ChildIndex: 0, MissingIn: graph.SideB},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, `Root/Component[0]: Health.count "3" != "5"`,
		graph.ValueMismatch{Path: "Root/Component[0]", Component: "Health", Property: "count", ValueA: "3", ValueB: "5"}.String())
	assert.Equal(t, "Root/Component[1]: component Collider missing in A",
		graph.ComponentMismatch{Path: "Root/Component[1]", Component: "Collider", MissingIn: graph.SideA}.String())
	assert.Equal(t, "Root/Child[2]: child 2 missing in B",
		graph.HierarchyMismatch{Path: "Root/Child[2]", ChildIndex: 2, MissingIn: graph.SideB}.String())
}
