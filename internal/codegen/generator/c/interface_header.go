package cgen

import (
	"context"
	"io"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/common"
	"github.com/mindc/fakeheader/internal/codegen/generr"
)

// InterfaceHeaderPath is the relative path of the header of a signature.
func InterfaceHeaderPath(signature string) string {
	return common.NameToPath(signature, "itf.h")
}

// EmitInterfaceHeader resolves the signature of itf and writes its interface
// header. A resolution failure writes nothing and is returned as a
// resolution error. The resolved document is returned for reuse.
func (e *Emitter) EmitInterfaceHeader(ctx context.Context, itf adl.Interface) (*adl.IDL, error) {
	doc, err := e.set.IDLs.Resolve(ctx, itf.Signature)
	if err != nil {
		return nil, generr.Resolution(err, "interface %s: signature %s", itf.Name, itf.Signature)
	}
	if doc == nil {
		return nil, generr.Resolution(nil, "interface %s: signature %s resolved to nothing", itf.Name, itf.Signature)
	}
	err = e.writeFile(ctx, InterfaceHeaderPath(itf.Signature), func(w io.Writer) error {
		return WriteInterfaceHeader(w, itf.Signature, doc)
	})
	if err != nil {
		return nil, generr.Wrapf(err, "interface %s", itf.Name)
	}
	return doc, nil
}

// WriteInterfaceHeader writes the guarded header of the IDL document named
// signature: propagated includes, local typedefs and the method table.
func WriteInterfaceHeader(w io.Writer, signature string, doc *adl.IDL) error {
	return common.Guarded(w, common.GuardMacro(signature), func(w io.Writer) error {
		p := &printer{w: w}

		if len(doc.Includes) > 0 {
			p.blank()
			p.line("/* Begin includes imported from interface */")
			for _, inc := range doc.Includes {
				p.printf("#include %s\n", common.NormalizeInclude(inc))
			}
			p.line("/* End includes imported from interface */")
			p.blank()
		}

		for _, td := range doc.TypeDefinitions() {
			aliased, err := common.RenderType(td.Type)
			if err != nil {
				return generr.Wrapf(err, "typedef %s", td.Name)
			}
			p.printf("typedef %s %s;\n", aliased, td.Name)
		}

		if len(doc.Methods) > 0 {
			ctype := common.CIdentifier(signature)
			p.blank()
			p.line("/* Begin interface type definition */")
			p.printf("struct %s_s {\n", ctype)
			for _, m := range doc.Methods {
				ret, params, err := renderSignature(m)
				if err != nil {
					return err
				}
				p.printf("\t%s (*%s)(%s);\n", ret, m.Name, params)
			}
			p.line("};")
			p.blank()
			p.printf("typedef struct %s_s %s;\n", ctype, ctype)
			p.line("/* End interface type definition */")
			p.blank()
		}
		return p.err
	})
}

func renderSignature(m adl.Method) (ret, params string, err error) {
	ret, err = common.RenderType(m.Returns)
	if err != nil {
		return "", "", generr.Wrapf(err, "method %s return type", m.Name)
	}
	params, err = common.RenderParameters(m.Parameters)
	if err != nil {
		return "", "", generr.Wrapf(err, "method %s", m.Name)
	}
	return ret, params, nil
}
