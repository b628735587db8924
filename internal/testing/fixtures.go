// Package testing holds collaborator doubles and filesystem helpers shared by
// the generator tests.
package testing

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	"github.com/mindc/fakeheader/internal/codegen/locate"
)

// Workspace is a throwaway project: a source tree, a resource root and an
// output directory, all below t.TempDir().
type Workspace struct {
	t        *testing.T
	Sources  string
	Resource string
	Out      string
}

func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	base := t.TempDir()
	w := &Workspace{
		t:        t,
		Sources:  filepath.Join(base, "src"),
		Resource: filepath.Join(base, "res"),
		Out:      filepath.Join(base, "out"),
	}
	for _, d := range []string{w.Sources, w.Resource, w.Out} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	return w
}

// AddSource creates an empty implementation source at the model path rel and
// returns its absolute path.
func (w *Workspace) AddSource(rel string) string {
	w.t.Helper()
	p := filepath.Join(w.Sources, filepath.FromSlash(rel))
	require.NoError(w.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(w.t, os.WriteFile(p, []byte("/* impl */\n"), 0o644))
	abs, err := filepath.Abs(p)
	require.NoError(w.t, err)
	return abs
}

// Read returns the generated file at the logical path rel.
func (w *Workspace) Read(rel string) string {
	w.t.Helper()
	data, err := os.ReadFile(filepath.Join(w.Out, filepath.FromSlash(rel)))
	require.NoError(w.t, err)
	return string(data)
}

// Exists reports whether the generated file rel was written.
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(w.Out, filepath.FromSlash(rel)))
	return err == nil
}

// Set returns filesystem collaborators over the workspace. Project flags are
// taken from project.
func (w *Workspace) Set(idls IDLs, project adl.Flags) collab.Set {
	return collab.Set{
		IDLs:    idls,
		Outputs: locate.OutputDir{Root: w.Out},
		Sources: locate.SourcePath{Roots: []string{w.Sources}},
		Flags:   locate.AnnotatedFlags{Project: project},
		Roots:   locate.StaticRoots{w.Resource, filepath.Join(w.Resource, "missing")},
	}
}

// IDLs is an in-memory resolver counting lookups per signature.
type IDLs struct {
	docs  map[string]*adl.IDL
	mu    *sync.Mutex
	calls map[string]int
}

func NewIDLs(docs ...*adl.IDL) IDLs {
	r := IDLs{docs: map[string]*adl.IDL{}, mu: &sync.Mutex{}, calls: map[string]int{}}
	for _, d := range docs {
		r.docs[d.Name] = d
	}
	return r
}

func (r IDLs) Resolve(ctx context.Context, signature string) (*adl.IDL, error) {
	r.mu.Lock()
	r.calls[signature]++
	r.mu.Unlock()
	if doc, ok := r.docs[signature]; ok {
		return doc, nil
	}
	return locate.IDLRegistry(nil).Resolve(ctx, signature)
}

// Calls returns how many times signature was resolved.
func (r IDLs) Calls(signature string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[signature]
}

// Flags is a FlagResolver with canned answers. Fail makes one class fail for
// one scope kind.
type Flags struct {
	locate.AnnotatedFlags
	Fail map[string]collab.ScopeKind
}

func (f Flags) failing(class string, scope collab.Scope) bool {
	k, ok := f.Fail[class]
	return ok && k == scope.Kind
}

func (f Flags) IncludePaths(ctx context.Context, scope collab.Scope) ([]string, error) {
	if f.failing("include", scope) {
		return nil, os.ErrPermission
	}
	return f.AnnotatedFlags.IncludePaths(ctx, scope)
}

func (f Flags) CPPFlags(ctx context.Context, scope collab.Scope) ([]string, error) {
	if f.failing("cpp", scope) {
		return nil, os.ErrPermission
	}
	return f.AnnotatedFlags.CPPFlags(ctx, scope)
}

func (f Flags) CFlags(ctx context.Context, scope collab.Scope) ([]string, error) {
	if f.failing("c", scope) {
		return nil, os.ErrPermission
	}
	return f.AnnotatedFlags.CFlags(ctx, scope)
}

func (f Flags) ASFlags(ctx context.Context, scope collab.Scope) ([]string, error) {
	if f.failing("as", scope) {
		return nil, os.ErrPermission
	}
	return f.AnnotatedFlags.ASFlags(ctx, scope)
}

// Logger returns a text logger at debug level writing into the returned
// buffer.
func Logger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&syncWriter{w: &buf}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
