package adl

// IDL is one interface description document. A nil slice means the document
// does not carry that capability; several capabilities may coexist.
type IDL struct {
	Name     string
	Includes []string
	Types    []Type
	Methods  []Method
}

// Method of an interface definition.
type Method struct {
	Name       string
	Returns    Type
	Parameters []Parameter
}

// Parameter of a method.
type Parameter struct {
	Name string
	Type Type
}

// Type is the closed union of IDL type descriptions. Only this package can
// add variants.
type Type interface {
	isType()
}

type (
	PrimitiveType      struct{ Name string }
	EnumDefinition     struct{ Name string }
	EnumReference      struct{ Name string }
	StructDefinition   struct{ Name string }
	StructReference    struct{ Name string }
	UnionDefinition    struct{ Name string }
	UnionReference     struct{ Name string }
	TypeDefReference   struct{ Name string }
	ConstantDefinition struct{ Name string }

	// TypeDefinition declares Name as an alias of Type.
	TypeDefinition struct {
		Name string
		Type Type
	}

	// ArrayOf wraps an element type.
	ArrayOf struct{ Of Type }
	// PointerOf wraps a pointee type.
	PointerOf struct{ Of Type }
)

func (PrimitiveType) isType()      {}
func (EnumDefinition) isType()     {}
func (EnumReference) isType()      {}
func (StructDefinition) isType()   {}
func (StructReference) isType()    {}
func (UnionDefinition) isType()    {}
func (UnionReference) isType()     {}
func (TypeDefReference) isType()   {}
func (ConstantDefinition) isType() {}
func (TypeDefinition) isType()     {}
func (ArrayOf) isType()            {}
func (PointerOf) isType()          {}

// TypeDefinitions returns the typedef declarations of the document in order.
func (i *IDL) TypeDefinitions() []TypeDefinition {
	var out []TypeDefinition
	for _, t := range i.Types {
		if td, ok := t.(TypeDefinition); ok {
			out = append(out, td)
		}
	}
	return out
}
