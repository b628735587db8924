// Package locate implements the collab services on top of the local
// filesystem and a loaded model.
package locate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	"github.com/mindc/fakeheader/internal/codegen/common"
	"github.com/mindc/fakeheader/internal/codegen/generr"
)

// OutputDir places every output below Root.
type OutputDir struct {
	Root string
}

// OutputPath joins relPath under Root and rejects paths escaping it.
func (o OutputDir) OutputPath(_ context.Context, relPath string) (string, error) {
	rel := filepath.FromSlash(common.StripRoot(relPath))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("output path %q escapes the output directory", relPath)
	}
	return filepath.Join(o.Root, rel), nil
}

// SourcePath looks up sources in Roots, in order.
type SourcePath struct {
	Roots []string
}

// FindSource returns the absolute path of the first root holding relPath.
func (s SourcePath) FindSource(_ context.Context, relPath string) (string, error) {
	rel := filepath.FromSlash(common.StripRoot(relPath))
	for _, root := range s.Roots {
		candidate := filepath.Join(root, rel)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate, nil
			}
			return abs, nil
		}
	}
	return "", generr.Resolution(nil, "source %s not found in %v", relPath, s.Roots)
}

// StaticRoots is a fixed resource root list.
type StaticRoots []string

func (r StaticRoots) ResourceRoots(context.Context) ([]string, error) {
	return []string(r), nil
}

// AnnotatedFlags serves project flags from configuration and definition or
// source flags from the flag annotations carried by the model.
type AnnotatedFlags struct {
	Project adl.Flags
}

func (f AnnotatedFlags) IncludePaths(_ context.Context, scope collab.Scope) ([]string, error) {
	return f.lookup(scope, func(fl *adl.Flags) []string { return fl.IncludePaths })
}

func (f AnnotatedFlags) CPPFlags(_ context.Context, scope collab.Scope) ([]string, error) {
	return f.lookup(scope, func(fl *adl.Flags) []string { return fl.CPPFlags })
}

func (f AnnotatedFlags) CFlags(_ context.Context, scope collab.Scope) ([]string, error) {
	return f.lookup(scope, func(fl *adl.Flags) []string { return fl.CFlags })
}

func (f AnnotatedFlags) ASFlags(_ context.Context, scope collab.Scope) ([]string, error) {
	return f.lookup(scope, func(fl *adl.Flags) []string { return fl.ASFlags })
}

func (f AnnotatedFlags) lookup(scope collab.Scope, pick func(*adl.Flags) []string) ([]string, error) {
	switch scope.Kind {
	case collab.ScopeProject:
		return pick(&f.Project), nil
	case collab.ScopeDefinition:
		if scope.Definition == nil {
			return nil, generr.FlagResolution(nil, "definition scope without definition")
		}
		if scope.Definition.Flags == nil {
			return nil, nil
		}
		return pick(scope.Definition.Flags), nil
	case collab.ScopeSource:
		if scope.Source == nil {
			return nil, generr.FlagResolution(nil, "source scope without source")
		}
		if scope.Source.Flags == nil {
			return nil, nil
		}
		return pick(scope.Source.Flags), nil
	default:
		return nil, generr.FlagResolution(nil, "unknown flag scope %s", scope.Kind)
	}
}

// IDLRegistry resolves signatures against loaded documents.
type IDLRegistry map[string]*adl.IDL

// NewIDLRegistry indexes docs by name. Later documents replace earlier ones.
func NewIDLRegistry(docs []*adl.IDL) IDLRegistry {
	r := make(IDLRegistry, len(docs))
	for _, d := range docs {
		r[d.Name] = d
	}
	return r
}

func (r IDLRegistry) Resolve(_ context.Context, signature string) (*adl.IDL, error) {
	if doc, ok := r[signature]; ok && doc != nil {
		return doc, nil
	}
	return nil, generr.Resolution(nil, "no IDL document for signature %s", signature)
}
