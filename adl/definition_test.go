package adl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindc/fakeheader/adl"
)

func TestDefinitionInterfaces(t *testing.T) {
	def := &adl.Definition{Interfaces: []adl.Interface{
		{Name: "c1", Role: adl.RoleClient},
		{Name: "s1", Role: adl.RoleServer},
		{Name: "c2", Role: adl.RoleClient},
		{Name: "s2", Role: adl.RoleServer},
	}}
	names := func(itfs []adl.Interface) []string {
		var out []string
		for _, i := range itfs {
			out = append(out, i.Name)
		}
		return out
	}
	assert.Equal(t, []string{"s1", "s2"}, names(def.ServerInterfaces()))
	assert.Equal(t, []string{"c1", "c2"}, names(def.ClientInterfaces()))
}

func TestDefinitionValid(t *testing.T) {
	type testCase struct {
		name  string
		valid bool
	}
	testCases := []testCase{
		{name: "pkg.Comp", valid: true},
		{name: "Comp", valid: true},
		{name: "", valid: false},
		{name: ".Comp", valid: false},
		{name: "pkg..Comp", valid: false},
		{name: "pkg.", valid: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, (&adl.Definition{Name: tc.name}).Valid())
		})
	}
	var nilDef *adl.Definition
	assert.False(t, nilDef.Valid())
}

func TestData(t *testing.T) {
	var none *adl.Data
	assert.False(t, none.HasInline())
	assert.False(t, none.HasFile())
	d := &adl.Data{CCode: "int x;", Path: "/a.h"}
	assert.True(t, d.HasInline())
	assert.True(t, d.HasFile())
}

func TestTypeDefinitions(t *testing.T) {
	doc := &adl.IDL{Types: []adl.Type{
		adl.EnumDefinition{Name: "enum e"},
		adl.TypeDefinition{Name: "a_t", Type: adl.PrimitiveType{Name: "int"}},
		adl.StructDefinition{Name: "struct s"},
		adl.TypeDefinition{Name: "b_t", Type: adl.PointerOf{Of: adl.PrimitiveType{Name: "char"}}},
	}}
	tds := doc.TypeDefinitions()
	if assert.Len(t, tds, 2) {
		assert.Equal(t, "a_t", tds[0].Name)
		assert.Equal(t, "b_t", tds[1].Name)
	}
}
