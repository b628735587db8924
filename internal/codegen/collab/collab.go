// Package collab declares the services header generation consults. They are
// supplied by the host toolchain; package locate has filesystem versions.
package collab

import (
	"context"
	"fmt"

	"github.com/mindc/fakeheader/adl"
)

// IDLResolver loads the IDL document named by an interface signature.
type IDLResolver interface {
	Resolve(ctx context.Context, signature string) (*adl.IDL, error)
}

// OutputLocator maps a logical relative output path ("pkg/Comp.adl.h") to
// the filesystem path the file is written to.
type OutputLocator interface {
	OutputPath(ctx context.Context, relPath string) (string, error)
}

// SourceLocator finds an implementation source given its model path.
type SourceLocator interface {
	FindSource(ctx context.Context, relPath string) (string, error)
}

// ResourceRootLocator lists the directories searched for headers.
type ResourceRootLocator interface {
	ResourceRoots(ctx context.Context) ([]string, error)
}

// FlagResolver returns compilation flags of one class for one scope.
type FlagResolver interface {
	IncludePaths(ctx context.Context, scope Scope) ([]string, error)
	CPPFlags(ctx context.Context, scope Scope) ([]string, error)
	CFlags(ctx context.Context, scope Scope) ([]string, error)
	ASFlags(ctx context.Context, scope Scope) ([]string, error)
}

// ScopeKind is the granularity of a flag lookup.
type ScopeKind int

const (
	ScopeProject ScopeKind = iota
	ScopeDefinition
	ScopeSource
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProject:
		return "project"
	case ScopeDefinition:
		return "definition"
	case ScopeSource:
		return "source"
	default:
		return fmt.Sprintf("scope(%d)", int(k))
	}
}

// Scope selects what a flag lookup applies to. Definition is set for
// definition and source scopes, Source only for source scope.
type Scope struct {
	Kind       ScopeKind
	Definition *adl.Definition
	Source     *adl.Source
}

// Project is the project-wide scope.
func Project() Scope { return Scope{Kind: ScopeProject} }

// ForDefinition is the scope of def.
func ForDefinition(def *adl.Definition) Scope {
	return Scope{Kind: ScopeDefinition, Definition: def}
}

// ForSource is the scope of src within def.
func ForSource(def *adl.Definition, src *adl.Source) Scope {
	return Scope{Kind: ScopeSource, Definition: def, Source: src}
}

func (s Scope) String() string {
	switch {
	case s.Source != nil:
		return fmt.Sprintf("%s %s", s.Kind, s.Source.Path)
	case s.Definition != nil:
		return fmt.Sprintf("%s %s", s.Kind, s.Definition.Name)
	default:
		return s.Kind.String()
	}
}

// Set bundles every collaborator a generation needs.
type Set struct {
	IDLs    IDLResolver
	Outputs OutputLocator
	Sources SourceLocator
	Flags   FlagResolver
	Roots   ResourceRootLocator
}

// Validate reports the first missing collaborator.
func (s Set) Validate() error {
	switch {
	case s.IDLs == nil:
		return fmt.Errorf("missing IDL resolver")
	case s.Outputs == nil:
		return fmt.Errorf("missing output locator")
	case s.Sources == nil:
		return fmt.Errorf("missing source locator")
	case s.Flags == nil:
		return fmt.Errorf("missing flag resolver")
	case s.Roots == nil:
		return fmt.Errorf("missing resource root locator")
	}
	return nil
}
