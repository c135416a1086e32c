package graph_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"github.com/utkarsh5026/filestory/pkg/graph"
)

func TestParse(t *testing.T) {
	root := mustParse(t, playerDoc)

	assert.Equal(t, "Player", root.Name())
	require.Len(t, root.Components(), 2)
	require.Len(t, root.Children(), 2)
	assert.Equal(t, "Weapon", root.Children()[0].Name())

	health := root.Components()[1]
	assert.Equal(t, "Health", health.Type())

	props := health.Properties()
	require.Len(t, props, 7)
	assert.Equal(t, graph.Int(3), props[0].Value)
	assert.Equal(t, graph.Bool(true), props[1].Value)
	assert.Equal(t, graph.Color{R: 1, G: 0, B: 0, A: 1}, props[2].Value)
	assert.Equal(t, graph.Enum("Fast"), props[3].Value)
	assert.Equal(t, graph.ObjectRef{Name: "Enemy"}, props[4].Value)
	assert.Equal(t, graph.Array{graph.String("hero"), graph.String("blue")}, props[5].Value)
	assert.Equal(t, graph.Struct{
		{Name: "speed", Value: graph.Float(2.5)},
		{Name: "label", Value: graph.String("quick")},
	}, props[6].Value)

	transform := root.Components()[0]
	assert.Equal(t, graph.Vector{0, 1.5, 0}, transform.Properties()[0].Value)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "name: [unclosed"},
		{"unknown field", "name: a\nmystery: 1\n"},
		{"unknown value kind", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n        quaternion: [0, 0, 0, 1]\n"},
		{"two values", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n        int: 1\n        bool: true\n"},
		{"no value", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n"},
		{"no name", "name: a\ncomponents:\n  - type: T\n    properties:\n      - int: 1\n"},
		{"bad color", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n        color: [1, 0]\n"},
		{"bad vector", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n        vector: [1]\n"},
		{"bad int", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n        int: three\n"},
		{"bad array", "name: a\ncomponents:\n  - type: T\n    properties:\n      - name: p\n        array: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, scerr.IsCode(err, scerr.CodeInvalidFormat), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Player.prefab")
	require.NoError(t, os.WriteFile(path, []byte(playerDoc), 0o644))

	obj, err := graph.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Player", obj.Name())

	_, err = graph.Load(filepath.Join(dir, "missing.prefab"))
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))
}
