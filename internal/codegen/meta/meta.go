package meta

import (
	"fmt"
	"sort"

	"github.com/mindc/fakeheader/adl"
)

// Metadata is the loaded model handed to the generator: every definition to
// generate and every IDL document signatures may resolve to.
type Metadata struct {
	Definitions []*adl.Definition
	IDLs        []*adl.IDL
	// Files lists the model files the metadata was loaded from.
	Files []string
}

// Merge appends other to m. A definition or IDL name present in both is an
// error.
func (m *Metadata) Merge(other *Metadata) error {
	defs := map[string]bool{}
	for _, d := range m.Definitions {
		defs[d.Name] = true
	}
	for _, d := range other.Definitions {
		if defs[d.Name] {
			return fmt.Errorf("definition %s declared twice", d.Name)
		}
		defs[d.Name] = true
		m.Definitions = append(m.Definitions, d)
	}

	idls := map[string]bool{}
	for _, i := range m.IDLs {
		idls[i.Name] = true
	}
	for _, i := range other.IDLs {
		if idls[i.Name] {
			return fmt.Errorf("IDL %s declared twice", i.Name)
		}
		idls[i.Name] = true
		m.IDLs = append(m.IDLs, i)
	}
	m.Files = append(m.Files, other.Files...)
	return nil
}

// Select returns the definitions named in names, in model order. An empty
// filter selects everything. Unknown names are an error.
func (m *Metadata) Select(names []string) ([]*adl.Definition, error) {
	if len(names) == 0 {
		return m.Definitions, nil
	}
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []*adl.Definition
	for _, d := range m.Definitions {
		if want[d.Name] {
			out = append(out, d)
			delete(want, d.Name)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for n := range want {
			missing = append(missing, n)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("unknown definitions: %v", missing)
	}
	return out, nil
}
