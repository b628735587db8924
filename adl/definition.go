// Package adl holds the structural model of component definitions and IDL
// documents as handed over by the front end. The generator only reads it.
package adl

import "strings"

// Role tells whether an interface is provided (server) or required (client).
type Role string

const (
	RoleServer Role = "server"
	RoleClient Role = "client"
)

// Cardinality of an interface.
type Cardinality string

const (
	CardinalitySingle     Cardinality = "single"
	CardinalityCollection Cardinality = "collection"
)

// Definition is the structural description of one component.
type Definition struct {
	// Name is the dotted fully-qualified name (e.g. "pkg.Comp"). Every
	// generated path and guard macro of the definition derives from it.
	Name       string
	Interfaces []Interface
	Data       *Data
	Sources    []Source
	Attributes []Attribute
	// Flags carries definition-scoped compilation flag annotations.
	Flags *Flags
}

// Interface is a named connection point of a component.
type Interface struct {
	Name        string
	Role        Role
	Cardinality Cardinality
	// NumberOfElement is the explicit element count of a collection, nil when absent.
	NumberOfElement *int
	// Signature is the dotted name of the IDL document describing the interface.
	Signature string
}

// IsServer reports whether the interface is provided by the component.
func (i Interface) IsServer() bool { return i.Role == RoleServer }

// IsClient reports whether the interface is required by the component.
func (i Interface) IsClient() bool { return i.Role == RoleClient }

// Source is an implementation source file of a definition.
type Source struct {
	// Path is slash separated and starts with the root marker "/".
	Path  string
	Flags *Flags
}

// Data is the private data of a definition, inline and/or file referenced.
type Data struct {
	CCode string
	Path  string
}

// HasInline reports whether the data carries inline C code.
func (d *Data) HasInline() bool { return d != nil && d.CCode != "" }

// HasFile reports whether the data references a separate file.
func (d *Data) HasFile() bool { return d != nil && d.Path != "" }

// Attribute is a typed value of a definition. Type is a raw C type spelling.
type Attribute struct {
	Name string
	Type string
	// Value is the default value carried by the model. It is never emitted.
	Value string
}

// Flags are compilation flag annotations attached to a definition or source.
// IncludePaths is only consulted at project scope.
type Flags struct {
	IncludePaths []string
	CPPFlags     []string
	CFlags       []string
	ASFlags      []string
}

// ServerInterfaces returns the server interfaces in declaration order.
func (d *Definition) ServerInterfaces() []Interface {
	return d.filter(Interface.IsServer)
}

// ClientInterfaces returns the client interfaces in declaration order.
func (d *Definition) ClientInterfaces() []Interface {
	return d.filter(Interface.IsClient)
}

func (d *Definition) filter(keep func(Interface) bool) []Interface {
	var out []Interface
	for _, itf := range d.Interfaces {
		if keep(itf) {
			out = append(out, itf)
		}
	}
	return out
}

// Valid reports whether the definition name is a usable dotted name.
func (d *Definition) Valid() bool {
	if d == nil || d.Name == "" {
		return false
	}
	for _, part := range strings.Split(d.Name, ".") {
		if part == "" {
			return false
		}
	}
	return true
}
