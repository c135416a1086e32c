package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"int", Int(-42), "-42"},
		{"bool", Bool(true), "true"},
		{"float", Float(0.25), "0.25"},
		{"whole float", Float(3), "3"},
		{"string", String("hello world"), "hello world"},
		{"color", Color{R: 1, G: 0.5, B: 0, A: 1}, "RGBA(1.000, 0.500, 0.000, 1.000)"},
		{"enum", Enum("Fast"), "Fast"},
		{"vector", Vector{0, 1.5, -2}, "(0, 1.5, -2)"},
		{"array", Array{Int(1), String("a")}, "[1, a]"},
		{"empty array", Array{}, "[]"},
		{"ref", ObjectRef{Name: "Enemy"}, "Enemy"},
		{"null ref", ObjectRef{}, "null"},
		{"struct", Struct{{Name: "hp", Value: Int(3)}}, "{hp: 3}"},
		{"nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.value))
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same int", Int(3), Int(3), true},
		{"different int", Int(3), Int(5), false},
		{"int vs float", Int(3), Float(3), false},
		{"nan", Float(math.NaN()), Float(math.NaN()), true},
		{"color", Color{1, 0, 0, 1}, Color{1, 0, 0, 1}, true},
		{"color alpha", Color{1, 0, 0, 1}, Color{1, 0, 0, 0.5}, false},
		{"enum", Enum("A"), Enum("B"), false},
		{"vector length", Vector{1, 2}, Vector{1, 2, 0}, false},
		{"vector", Vector{1, 2, 3}, Vector{1, 2, 3}, true},
		{"array elementwise", Array{Int(1), Int(2)}, Array{Int(1), Int(3)}, false},
		{"array equal", Array{String("a")}, Array{String("a")}, true},
		{"ref by name", ObjectRef{Name: "Enemy"}, ObjectRef{Name: "Enemy"}, true},
		{"ref vs null", ObjectRef{Name: "Enemy"}, ObjectRef{}, false},
		{"struct field name", Struct{{Name: "a", Value: Int(1)}}, Struct{{Name: "b", Value: Int(1)}}, false},
		{"struct nested", Struct{{Name: "a", Value: Array{Bool(true)}}}, Struct{{Name: "a", Value: Array{Bool(true)}}}, true},
		{"nil vs nil", nil, nil, true},
		{"nil vs value", nil, Int(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "symmetric")
		})
	}
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "ref", ObjectRef{}.Kind().String())
	assert.Equal(t, "struct", KindStruct.String())
	assert.Equal(t, "unknown", ValueKind(99).String())
}
