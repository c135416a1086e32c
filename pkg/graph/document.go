package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	scerr "github.com/utkarsh5026/filestory/pkg/common/err"
	"gopkg.in/yaml.v3"
)

const pkgName = "graph"

// Object is a node read from a graph document.
//
// Documents are YAML. Each property carries its name and exactly one
// typed value key:
//
//	name: Player
//	components:
//	  - type: Health
//	    properties:
//	      - name: count
//	        int: 3
//	      - name: tint
//	        color: [1, 0, 0, 1]
//	      - name: target
//	        ref: Enemy
//	children:
//	  - name: Weapon
//
// Value keys: int, bool, float, string, color, enum, vector, array
// (a list of single-key value maps), ref (a name, or null) and struct
// (a list of properties).
type Object struct {
	ObjectName string     `yaml:"name"`
	Elements   []*Element `yaml:"components"`
	Kids       []*Object  `yaml:"children"`
}

// Element is a component read from a graph document.
type Element struct {
	TypeName string     `yaml:"type"`
	Props    []Property `yaml:"properties"`
}

// Name returns the object's name. A nil object has no name.
func (o *Object) Name() string {
	if o == nil {
		return ""
	}
	return o.ObjectName
}

// Components returns the object's components by position. A null list entry
// stays in place as a nil Component.
func (o *Object) Components() []Component {
	if o == nil {
		return nil
	}
	out := make([]Component, len(o.Elements))
	for i, e := range o.Elements {
		if e != nil {
			out[i] = e
		}
	}
	return out
}

// Children returns the object's children by position. A null list entry
// stays in place as a nil Node.
func (o *Object) Children() []Node {
	if o == nil {
		return nil
	}
	out := make([]Node, len(o.Kids))
	for i, k := range o.Kids {
		if k != nil {
			out[i] = k
		}
	}
	return out
}

func (e *Element) Type() string           { return e.TypeName }
func (e *Element) Properties() []Property { return e.Props }

// Parse decodes a graph document held in memory.
func Parse(data []byte) (*Object, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one graph document from r.
func Decode(r io.Reader) (*Object, error) {
	var root Object
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, scerr.New(pkgName, scerr.CodeInvalidFormat, "decode", "empty graph document", nil)
		}
		return nil, scerr.New(pkgName, scerr.CodeInvalidFormat, "decode", "malformed graph document", err)
	}
	return &root, nil
}

// Load reads a graph document from a file.
func Load(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		code := scerr.CodeIOFailure
		if os.IsNotExist(err) {
			code = scerr.CodeNotFound
		}
		return nil, scerr.New(pkgName, code, "load", "cannot open graph document", err).
			WithContext("path", path)
	}
	defer f.Close()

	obj, err := Decode(f)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "load")
	}
	return obj, nil
}

// UnmarshalYAML decodes a property mapping with a name and one value key.
func (p *Property) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: property must be a mapping", n.Line)
	}

	var (
		name     string
		value    Value
		hasValue bool
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Value == "name" {
			if err := val.Decode(&name); err != nil {
				return err
			}
			continue
		}
		if hasValue {
			return fmt.Errorf("line %d: property %q has more than one value", key.Line, name)
		}
		v, err := decodeValue(key.Value, val)
		if err != nil {
			return err
		}
		value, hasValue = v, true
	}

	if name == "" {
		return fmt.Errorf("line %d: property without a name", n.Line)
	}
	if !hasValue {
		return fmt.Errorf("line %d: property %q has no value", n.Line, name)
	}
	p.Name, p.Value = name, value
	return nil
}

func decodeValue(kind string, n *yaml.Node) (Value, error) {
	switch kind {
	case "int":
		var v int64
		err := n.Decode(&v)
		return Int(v), err
	case "bool":
		var v bool
		err := n.Decode(&v)
		return Bool(v), err
	case "float":
		var v float64
		err := n.Decode(&v)
		return Float(v), err
	case "string":
		var v string
		err := n.Decode(&v)
		return String(v), err
	case "enum":
		var v string
		err := n.Decode(&v)
		return Enum(v), err
	case "color":
		var v []float64
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		switch len(v) {
		case 3:
			return Color{R: v[0], G: v[1], B: v[2], A: 1}, nil
		case 4:
			return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
		default:
			return nil, fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", n.Line, len(v))
		}
	case "vector":
		var v []float64
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if len(v) < 2 || len(v) > 4 {
			return nil, fmt.Errorf("line %d: vector needs 2 to 4 components, got %d", n.Line, len(v))
		}
		return Vector(v), nil
	case "ref":
		if n.Tag == "!!null" {
			return ObjectRef{}, nil
		}
		var v string
		err := n.Decode(&v)
		return ObjectRef{Name: v}, err
	case "array":
		return decodeArray(n)
	case "struct":
		var fields []Property
		if err := n.Decode(&fields); err != nil {
			return nil, err
		}
		return Struct(fields), nil
	default:
		return nil, fmt.Errorf("line %d: unknown value kind %q", n.Line, kind)
	}
}

func decodeArray(n *yaml.Node) (Value, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: array must be a sequence", n.Line)
	}

	out := make(Array, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, fmt.Errorf("line %d: array element must have exactly one value key", item.Line)
		}
		v, err := decodeValue(item.Content[0].Value, item.Content[1])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
