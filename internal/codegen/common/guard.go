package common

import (
	"fmt"
	"io"
)

// OpenGuard writes the opening half of an include guard for macro.
func OpenGuard(w io.Writer, macro string) error {
	_, err := fmt.Fprintf(w, "#ifndef %s\n#define %s\n\n", macro, macro)
	return err
}

// CloseGuard writes the closing half of an include guard for macro.
func CloseGuard(w io.Writer, macro string) error {
	_, err := fmt.Fprintf(w, "\n#endif /* %s */\n\n", macro)
	return err
}

// Guarded writes body between an opening and closing guard for macro. When
// body fails the guard is left open and the error returned; the caller must
// discard the partial output.
func Guarded(w io.Writer, macro string, body func(io.Writer) error) error {
	if err := OpenGuard(w, macro); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	return CloseGuard(w, macro)
}
