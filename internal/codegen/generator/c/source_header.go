package cgen

import (
	"context"
	"fmt"
	"io"

	"github.com/mindc/fakeheader/internal/codegen/common"
)

// SourceHeaderPath is the relative path of the pre-include header of a
// source: "/dir/comp.c" -> "dir/comp.impl.h".
func SourceHeaderPath(sourcePath string) string {
	return common.StripRoot(common.ReplaceExtension(sourcePath, "impl.h"))
}

// EmitSourceHeader writes the pre-include header at headerPath, which only
// includes the definition header.
func (e *Emitter) EmitSourceHeader(ctx context.Context, headerPath, definitionHeader string) error {
	return e.writeFile(ctx, headerPath, func(w io.Writer) error {
		return WriteSourceHeader(w, headerPath, definitionHeader)
	})
}

// WriteSourceHeader writes the guarded pre-include header at headerPath.
func WriteSourceHeader(w io.Writer, headerPath, definitionHeader string) error {
	return common.Guarded(w, common.FileGuard(headerPath), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "#include \"%s\"\n", definitionHeader)
		return err
	})
}
