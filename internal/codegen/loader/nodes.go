package loader

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mindc/fakeheader/adl"
)

// document is the on-disk form of a model file.
type document struct {
	Definitions []definitionNode `yaml:"definitions" json:"definitions"`
	IDLs        []idlNode        `yaml:"idls" json:"idls"`
}

type definitionNode struct {
	Name       string          `yaml:"name" json:"name"`
	Interfaces []interfaceNode `yaml:"interfaces" json:"interfaces"`
	Data       *dataNode       `yaml:"data" json:"data"`
	Sources    []sourceNode    `yaml:"sources" json:"sources"`
	Attributes []attributeNode `yaml:"attributes" json:"attributes"`
	Flags      *flagsNode      `yaml:"flags" json:"flags"`
}

type interfaceNode struct {
	Name            string `yaml:"name" json:"name"`
	Role            string `yaml:"role" json:"role"`
	Cardinality     string `yaml:"cardinality" json:"cardinality"`
	NumberOfElement *int   `yaml:"numberOfElement" json:"numberOfElement"`
	Signature       string `yaml:"signature" json:"signature"`
}

type dataNode struct {
	Code string `yaml:"code" json:"code"`
	Path string `yaml:"path" json:"path"`
}

type sourceNode struct {
	Path  string     `yaml:"path" json:"path"`
	Flags *flagsNode `yaml:"flags" json:"flags"`
}

type attributeNode struct {
	Name  string `yaml:"name" json:"name"`
	Type  string `yaml:"type" json:"type"`
	Value string `yaml:"value" json:"value"`
}

type flagsNode struct {
	IncludePaths []string `yaml:"includePaths" json:"includePaths"`
	CPPFlags     []string `yaml:"cppFlags" json:"cppFlags"`
	CFlags       []string `yaml:"cFlags" json:"cFlags"`
	ASFlags      []string `yaml:"asFlags" json:"asFlags"`
}

type idlNode struct {
	Name     string       `yaml:"name" json:"name"`
	Includes []string     `yaml:"includes" json:"includes"`
	Types    []typeNode   `yaml:"types" json:"types"`
	Methods  []methodNode `yaml:"methods" json:"methods"`
}

type methodNode struct {
	Name       string          `yaml:"name" json:"name"`
	Returns    *typeNode       `yaml:"returns" json:"returns"`
	Parameters []parameterNode `yaml:"parameters" json:"parameters"`
}

type parameterNode struct {
	Name string    `yaml:"name" json:"name"`
	Type *typeNode `yaml:"type" json:"type"`
}

// typeNode encodes one adl.Type. A plain string is shorthand for a primitive
// type: `returns: void`.
type typeNode struct {
	Kind string    `yaml:"kind" json:"kind"`
	Name string    `yaml:"name" json:"name"`
	Of   *typeNode `yaml:"of" json:"of"`
}

// typeNodeFields breaks the UnmarshalYAML/UnmarshalJSON recursion.
type typeNodeFields typeNode

func (t *typeNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = typeNode{Kind: kindPrimitive, Name: value.Value}
		return nil
	}
	var f typeNodeFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	*t = typeNode(f)
	return nil
}

func (t *typeNode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*t = typeNode{Kind: kindPrimitive, Name: name}
		return nil
	}
	var f typeNodeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*t = typeNode(f)
	return nil
}

const (
	kindPrimitive  = "primitive"
	kindEnum       = "enum"
	kindEnumRef    = "enumref"
	kindStruct     = "struct"
	kindStructRef  = "structref"
	kindUnion      = "union"
	kindUnionRef   = "unionref"
	kindTypedef    = "typedef"
	kindTypedefRef = "typedefref"
	kindConst      = "const"
	kindArray      = "array"
	kindPointer    = "pointer"
)

var namedKinds = map[string]func(string) adl.Type{
	kindPrimitive:  func(n string) adl.Type { return adl.PrimitiveType{Name: n} },
	kindEnum:       func(n string) adl.Type { return adl.EnumDefinition{Name: n} },
	kindEnumRef:    func(n string) adl.Type { return adl.EnumReference{Name: n} },
	kindStruct:     func(n string) adl.Type { return adl.StructDefinition{Name: n} },
	kindStructRef:  func(n string) adl.Type { return adl.StructReference{Name: n} },
	kindUnion:      func(n string) adl.Type { return adl.UnionDefinition{Name: n} },
	kindUnionRef:   func(n string) adl.Type { return adl.UnionReference{Name: n} },
	kindTypedefRef: func(n string) adl.Type { return adl.TypeDefReference{Name: n} },
	kindConst:      func(n string) adl.Type { return adl.ConstantDefinition{Name: n} },
}

func (t *typeNode) toType() (adl.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("missing type")
	}
	switch t.Kind {
	case kindArray, kindPointer:
		inner, err := t.Of.toType()
		if err != nil {
			return nil, fmt.Errorf("%s element: %w", t.Kind, err)
		}
		if t.Kind == kindArray {
			return adl.ArrayOf{Of: inner}, nil
		}
		return adl.PointerOf{Of: inner}, nil
	case kindTypedef:
		if t.Name == "" {
			return nil, fmt.Errorf("typedef without name")
		}
		inner, err := t.Of.toType()
		if err != nil {
			return nil, fmt.Errorf("typedef %s: %w", t.Name, err)
		}
		return adl.TypeDefinition{Name: t.Name, Type: inner}, nil
	}
	kind := t.Kind
	if kind == "" {
		kind = kindPrimitive
	}
	mk, ok := namedKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown type kind %q", t.Kind)
	}
	if t.Name == "" {
		return nil, fmt.Errorf("%s type without name", kind)
	}
	return mk(t.Name), nil
}
