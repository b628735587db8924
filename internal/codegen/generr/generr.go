// Package generr defines the error kinds reported by header generation.
//
// Errors are regular wrapped errors marked with one of the kind sentinels, so
// callers classify them with Is:
//
//	if generr.Is(err, generr.ErrResolution) {
//	    // skip this interface
//	}
package generr

import (
	crdb "github.com/cockroachdb/errors"
)

// Kind sentinels.
var (
	// ErrResolution: a signature or source could not be resolved.
	ErrResolution = crdb.New("resolution error")
	// ErrOutputCreation: an output file could not be created.
	ErrOutputCreation = crdb.New("output creation error")
	// ErrFlagResolution: a scoped flag lookup failed.
	ErrFlagResolution = crdb.New("flag resolution error")
	// ErrRender: a type variant the renderer does not support.
	ErrRender = crdb.New("render error")
)

var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrapf        = crdb.Wrapf
	Is           = crdb.Is
	As           = crdb.As
	Join         = crdb.Join
	FlattenHints = crdb.FlattenHints
)

// Resolution marks err as a resolution failure for the named element.
func Resolution(err error, format string, args ...any) error {
	return mark(err, ErrResolution, format, args...)
}

// OutputCreation marks err as a failure to create the output at path.
func OutputCreation(err error, path string) error {
	return crdb.WithHintf(mark(err, ErrOutputCreation, "create %s", path),
		"check that the output directory exists and is writable")
}

// FlagResolution marks err as a failed flag lookup.
func FlagResolution(err error, format string, args ...any) error {
	return mark(err, ErrFlagResolution, format, args...)
}

// Render builds a render failure.
func Render(format string, args ...any) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrRender)
}

func mark(err error, kind error, format string, args ...any) error {
	if err == nil {
		err = crdb.Newf(format, args...)
		return crdb.Mark(err, kind)
	}
	return crdb.Mark(crdb.Wrapf(err, format, args...), kind)
}
