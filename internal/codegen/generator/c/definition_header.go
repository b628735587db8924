package cgen

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"
	"text/template"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/common"
	"github.com/mindc/fakeheader/internal/codegen/generr"
)

var prologueTmpl = template.Must(template.New("prologue").Parse(`#include "mindcommon.h"

#define DEFINITION_NAME {{.CName}}

#include "commonMacro.h"

`))

// attributeSuffix names the attribute struct. The spelling is relied upon by
// existing implementation code.
const attributeSuffix = "_attribue"

// DefinitionHeaderPath is the relative path of the header of a definition.
func DefinitionHeaderPath(definition string) string {
	return common.NameToPath(definition, "adl.h")
}

// EmitDefinition writes every file of def: its header, the interface headers,
// the per-source headers and the build fragment. The definition header and
// the fragment are committed only when the whole definition succeeded.
//
// Unresolvable interfaces and sources are logged and skipped. Output creation
// and render failures abort the definition and are returned.
func (e *Emitter) EmitDefinition(ctx context.Context, def *adl.Definition) error {
	if !def.Valid() {
		return generr.Newf("invalid definition name %q", definitionName(def))
	}
	logger := e.logger.With("definition", def.Name)

	hdr, err := e.create(ctx, DefinitionHeaderPath(def.Name))
	if err != nil {
		return err
	}
	defer hdr.Discard()

	mk, err := e.create(ctx, BuildRulePath(def.Name))
	if err != nil {
		return err
	}
	defer mk.Discard()

	if err := e.rules.WriteHeader(mk, def); err != nil {
		return err
	}

	d := &definitionWriter{
		Emitter: e,
		logger:  logger,
		def:     def,
		make:    mk,
		idls:    map[string]*adl.IDL{},
		failed:  map[string]error{},
	}
	if err := common.Guarded(hdr, common.GuardMacro(def.Name), func(w io.Writer) error {
		return d.write(ctx, w)
	}); err != nil {
		return err
	}

	if err := hdr.Commit(); err != nil {
		return err
	}
	if err := mk.Commit(); err != nil {
		return err
	}
	logger.Info("Generated definition header", "file", hdr.Path(), "make", mk.Path())
	return nil
}

func definitionName(def *adl.Definition) string {
	if def == nil {
		return ""
	}
	return def.Name
}

// definitionWriter carries the state of one EmitDefinition call.
type definitionWriter struct {
	*Emitter
	logger *slog.Logger
	def    *adl.Definition
	make   io.Writer
	// idls caches resolved documents by signature; each interface header is
	// written once per definition.
	idls   map[string]*adl.IDL
	failed map[string]error
}

func (d *definitionWriter) write(ctx context.Context, w io.Writer) error {
	p := &printer{w: w}
	if err := prologueTmpl.Execute(w, struct{ CName string }{common.CIdentifier(d.def.Name)}); err != nil {
		return err
	}

	if len(d.def.Interfaces) > 0 {
		p.line("/* Begin server interface listing */")
		for _, itf := range d.def.ServerInterfaces() {
			if err := d.writeInterface(ctx, p, itf); err != nil {
				return err
			}
		}
		p.line("/* End server interface listing */")
		p.blank()

		p.line("/* Begin client interface listing */")
		for _, itf := range d.def.ClientInterfaces() {
			if err := d.writeInterface(ctx, p, itf); err != nil {
				return err
			}
		}
		p.line("/* End client interface listing */")
	}

	if d.def.Data != nil {
		d.writeData(p)
	}

	for i := range d.def.Sources {
		if err := d.writeSource(ctx, &d.def.Sources[i]); err != nil {
			return err
		}
	}

	if len(d.def.Attributes) > 0 {
		d.writeAttributes(p)
	}
	return p.err
}

// resolve returns the document of itf, writing its interface header on first
// use. A nil document with nil error means the interface must be skipped.
func (d *definitionWriter) resolve(ctx context.Context, itf adl.Interface) (*adl.IDL, error) {
	if doc, ok := d.idls[itf.Signature]; ok {
		return doc, nil
	}
	if err, ok := d.failed[itf.Signature]; ok {
		d.logger.Warn("Skipping interface", "interface", itf.Name, "signature", itf.Signature, "error", err)
		return nil, nil
	}
	doc, err := d.EmitInterfaceHeader(ctx, itf)
	if err != nil {
		if generr.Is(err, generr.ErrResolution) {
			d.failed[itf.Signature] = err
			d.logger.Warn("Skipping interface", "interface", itf.Name, "signature", itf.Signature, "error", err)
			return nil, nil
		}
		return nil, generr.Wrapf(err, "definition %s", d.def.Name)
	}
	d.idls[itf.Signature] = doc
	return doc, nil
}

func (d *definitionWriter) writeInterface(ctx context.Context, p *printer, itf adl.Interface) error {
	doc, err := d.resolve(ctx, itf)
	if err != nil || doc == nil {
		return err
	}

	ctype := common.CIdentifier(itf.Signature)
	p.printf("#include \"%s\"\n", InterfaceHeaderPath(itf.Signature))
	if itf.IsServer() {
		p.printf("%s GET_MY_INTERFACE(%s);\n", ctype, itf.Name)
	} else {
		p.printf("extern %s GET_MY_INTERFACE(%s%s);\n", ctype, itf.Name, collectionSuffix(itf))
	}
	p.printf("int GET_COLLECTION_SIZE(%s) = %d;\n", itf.Name, collectionSize(itf))

	if len(doc.Methods) == 0 {
		return nil
	}
	p.blank()
	p.line("/* Begin METH declaration */")
	for _, m := range doc.Methods {
		ret, params, err := renderSignature(m)
		if err != nil {
			return generr.Wrapf(err, "definition %s: interface %s", d.def.Name, itf.Name)
		}
		p.printf("%s METH(%s, %s)(%s);\n", ret, itf.Name, m.Name, params)
	}
	p.line("/* End METH declaration */")
	p.blank()
	return nil
}

// collectionSuffix is "[N]" for a client collection with an explicit count.
func collectionSuffix(itf adl.Interface) string {
	if itf.Cardinality != adl.CardinalityCollection || itf.NumberOfElement == nil {
		return ""
	}
	return "[" + strconv.Itoa(*itf.NumberOfElement) + "]"
}

// collectionSize is |NumberOfElement|, or 1 when absent. math.MinInt clamps
// to math.MaxInt.
func collectionSize(itf adl.Interface) int {
	if itf.NumberOfElement == nil {
		return 1
	}
	n := *itf.NumberOfElement
	switch {
	case n == math.MinInt:
		return math.MaxInt
	case n < 0:
		return -n
	}
	return n
}

// writeData emits the private data section. Inline code and a data file may
// both be present; both are emitted, inline code first.
func (d *definitionWriter) writeData(p *printer) {
	data := d.def.Data
	if !data.HasInline() && !data.HasFile() {
		return
	}
	if data.HasInline() && data.HasFile() {
		d.logger.Warn("Definition carries both inline and file private data, emitting both")
	}
	p.blank()
	p.line("/* Begin private data declaration */")
	p.line("static ")
	if data.HasInline() {
		p.line(data.CCode)
	}
	if data.HasFile() {
		p.printf("#include %s\n", common.NormalizeInclude(data.Path))
	}
	p.line("/* End private data declaration */")
	p.blank()
}

// writeSource emits the pre-include header and the recipe line of src.
func (d *definitionWriter) writeSource(ctx context.Context, src *adl.Source) error {
	srcPath, err := d.set.Sources.FindSource(ctx, src.Path)
	if err != nil {
		d.logger.Warn("Skipping source", "source", src.Path,
			"error", generr.Resolution(err, "source %s", src.Path))
		return nil
	}

	headerPath := SourceHeaderPath(src.Path)
	if err := d.EmitSourceHeader(ctx, headerPath, DefinitionHeaderPath(d.def.Name)); err != nil {
		return generr.Wrapf(err, "definition %s: source %s", d.def.Name, src.Path)
	}
	return d.rules.WriteRecipe(ctx, d.make, d.def, src, srcPath, headerPath)
}

func (d *definitionWriter) writeAttributes(p *printer) {
	ctype := common.CIdentifier(d.def.Name) + attributeSuffix
	p.blank()
	p.line("/* Begin attributes declaration */")
	p.printf("struct %s_s {\n", ctype)
	for _, a := range d.def.Attributes {
		p.printf("%s %s;\n", a.Type, a.Name)
	}
	p.line("};")
	p.printf("typedef struct %s_s %s_t;\n", ctype, ctype)
	p.printf("static %s_t ATTRIBUTE_STRUCT_NAME;\n", ctype)
	p.line("/* End attributes declaration */")
	p.blank()
}
