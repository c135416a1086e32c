package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/filestory/pkg/graph"
)

const playerDoc = `
name: Player
components:
  - type: Transform
    properties:
      - name: position
        vector: [0, 1.5, 0]
      - name: scale
        vector: [1, 1, 1]
  - type: Health
    properties:
      - name: count
        int: 3
      - name: regenerates
        bool: true
      - name: tint
        color: [1, 0, 0]
      - name: mode
        enum: Fast
      - name: target
        ref: Enemy
      - name: tags
        array:
          - string: hero
          - string: blue
      - name: stats
        struct:
          - name: speed
            float: 2.5
          - name: label
            string: quick
children:
  - name: Weapon
    components:
      - type: Damage
        properties:
          - name: amount
            int: 10
  - name: Hat
`

func mustParse(t *testing.T, doc string) *graph.Object {
	t.Helper()
	obj, err := graph.Parse([]byte(doc))
	require.NoError(t, err)
	return obj
}
