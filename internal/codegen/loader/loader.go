// Package loader reads model files: the definitions and IDL documents the
// front end hands over, serialized as YAML, JSON or TOML.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/meta"
)

// LoadFiles loads and merges every model file.
func LoadFiles(paths ...string) (*meta.Metadata, error) {
	md := &meta.Metadata{}
	for _, p := range paths {
		one, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		if err := md.Merge(one); err != nil {
			return nil, fmt.Errorf("merge %s: %w", p, err)
		}
	}
	return md, nil
}

// LoadFile loads one model file, picking the format from its extension.
func LoadFile(path string) (*meta.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	md, err := Load(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	md.Files = []string{path}
	return md, nil
}

// Load decodes a model in the given format ("yaml", "yml", "json", "toml").
// Any other format tries YAML, then JSON.
func Load(data []byte, format string) (*meta.Metadata, error) {
	var doc document
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML model: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON model: %w", err)
		}
	case "toml":
		if err := decodeTOML(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing TOML model: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("unable to parse model as YAML or JSON")
			}
		}
	}
	return doc.toMetadata()
}

// decodeTOML goes through the generic tree so the type shorthand and the
// JSON tags apply to TOML as well.
func decodeTOML(data []byte, doc *document) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, doc)
}

func (d *document) toMetadata() (*meta.Metadata, error) {
	md := &meta.Metadata{}
	for _, n := range d.IDLs {
		idl, err := n.toIDL()
		if err != nil {
			return nil, fmt.Errorf("IDL %s: %w", n.Name, err)
		}
		md.IDLs = append(md.IDLs, idl)
	}
	for _, n := range d.Definitions {
		def, err := n.toDefinition()
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", n.Name, err)
		}
		md.Definitions = append(md.Definitions, def)
	}
	return md, nil
}

func (n *definitionNode) toDefinition() (*adl.Definition, error) {
	def := &adl.Definition{Name: n.Name}
	if !def.Valid() {
		return nil, fmt.Errorf("invalid definition name %q", n.Name)
	}
	flags, err := n.Flags.toFlags()
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	def.Flags = flags
	for _, in := range n.Interfaces {
		itf, err := in.toInterface()
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", in.Name, err)
		}
		def.Interfaces = append(def.Interfaces, itf)
	}
	if n.Data != nil {
		def.Data = &adl.Data{CCode: n.Data.Code, Path: n.Data.Path}
	}
	for _, s := range n.Sources {
		if s.Path == "" {
			return nil, fmt.Errorf("source without path")
		}
		flags, err := s.Flags.toFlags()
		if err != nil {
			return nil, fmt.Errorf("source %s flags: %w", s.Path, err)
		}
		def.Sources = append(def.Sources, adl.Source{Path: s.Path, Flags: flags})
	}
	for _, a := range n.Attributes {
		if a.Name == "" || a.Type == "" {
			return nil, fmt.Errorf("attribute %q needs a name and a type", a.Name)
		}
		def.Attributes = append(def.Attributes, adl.Attribute{Name: a.Name, Type: a.Type, Value: a.Value})
	}
	return def, nil
}

func (n *interfaceNode) toInterface() (adl.Interface, error) {
	itf := adl.Interface{
		Name:            n.Name,
		Role:            adl.Role(strings.ToLower(n.Role)),
		Cardinality:     adl.Cardinality(strings.ToLower(n.Cardinality)),
		NumberOfElement: n.NumberOfElement,
		Signature:       n.Signature,
	}
	if itf.Name == "" {
		return itf, fmt.Errorf("interface without name")
	}
	if itf.Signature == "" {
		return itf, fmt.Errorf("interface without signature")
	}
	switch itf.Role {
	case adl.RoleServer, adl.RoleClient:
	default:
		return itf, fmt.Errorf("unknown role %q", n.Role)
	}
	if itf.Cardinality == "" {
		itf.Cardinality = adl.CardinalitySingle
	}
	if itf.NumberOfElement != nil && *itf.NumberOfElement < 0 {
		return itf, fmt.Errorf("negative numberOfElement %d", *itf.NumberOfElement)
	}
	return itf, nil
}

// toFlags converts definition or source flags. Include paths only exist at
// project scope, so they are rejected here.
func (n *flagsNode) toFlags() (*adl.Flags, error) {
	if n == nil {
		return nil, nil
	}
	if len(n.IncludePaths) > 0 {
		return nil, fmt.Errorf("includePaths is only supported as a project setting (--inc-path)")
	}
	return &adl.Flags{
		CPPFlags: n.CPPFlags,
		CFlags:   n.CFlags,
		ASFlags:  n.ASFlags,
	}, nil
}

func (n *idlNode) toIDL() (*adl.IDL, error) {
	if n.Name == "" {
		return nil, fmt.Errorf("IDL without name")
	}
	idl := &adl.IDL{Name: n.Name, Includes: n.Includes}
	for i := range n.Types {
		t, err := n.Types[i].toType()
		if err != nil {
			return nil, fmt.Errorf("type %d: %w", i, err)
		}
		idl.Types = append(idl.Types, t)
	}
	for _, m := range n.Methods {
		method, err := m.toMethod()
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		idl.Methods = append(idl.Methods, method)
	}
	return idl, nil
}

func (n *methodNode) toMethod() (adl.Method, error) {
	if n.Name == "" {
		return adl.Method{}, fmt.Errorf("method without name")
	}
	ret := n.Returns
	if ret == nil {
		ret = &typeNode{Kind: kindPrimitive, Name: "void"}
	}
	rt, err := ret.toType()
	if err != nil {
		return adl.Method{}, fmt.Errorf("return type: %w", err)
	}
	m := adl.Method{Name: n.Name, Returns: rt}
	for _, p := range n.Parameters {
		pt, err := p.Type.toType()
		if err != nil {
			return adl.Method{}, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		m.Parameters = append(m.Parameters, adl.Parameter{Name: p.Name, Type: pt})
	}
	return m, nil
}
