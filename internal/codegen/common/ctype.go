package common

import (
	"strings"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/generr"
)

// RenderType returns the C spelling of an IDL type. Arrays and pointers both
// render as a pointer suffix ("int * "); collection macros own the array shape.
func RenderType(t adl.Type) (string, error) {
	switch v := t.(type) {
	case adl.PrimitiveType:
		return v.Name, nil
	case adl.EnumDefinition:
		return v.Name, nil
	case adl.EnumReference:
		return v.Name, nil
	case adl.StructDefinition:
		return v.Name, nil
	case adl.StructReference:
		return v.Name, nil
	case adl.UnionDefinition:
		return v.Name, nil
	case adl.UnionReference:
		return v.Name, nil
	case adl.TypeDefinition:
		return v.Name, nil
	case adl.TypeDefReference:
		return v.Name, nil
	case adl.ConstantDefinition:
		return v.Name, nil
	case adl.ArrayOf:
		return renderPointer(v.Of)
	case adl.PointerOf:
		return renderPointer(v.Of)
	case nil:
		return "", generr.Render("missing type")
	default:
		return "", generr.Render("unsupported type variant %T", t)
	}
}

func renderPointer(inner adl.Type) (string, error) {
	s, err := RenderType(inner)
	if err != nil {
		return "", err
	}
	return s + " * ", nil
}

// RenderParameters renders a C parameter list body (without parentheses).
// An empty list renders as "void"; otherwise each parameter is preceded by a
// space for the first and ", " for the others: " int a, char * b".
func RenderParameters(params []adl.Parameter) (string, error) {
	if len(params) == 0 {
		return "void", nil
	}
	var b strings.Builder
	delim := " "
	for _, p := range params {
		t, err := RenderType(p.Type)
		if err != nil {
			return "", generr.Wrapf(err, "parameter %s", p.Name)
		}
		b.WriteString(delim)
		b.WriteString(t)
		b.WriteString(" ")
		b.WriteString(p.Name)
		delim = ", "
	}
	return b.String(), nil
}
