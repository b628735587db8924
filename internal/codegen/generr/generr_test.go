package generr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/internal/codegen/generr"
)

func TestKinds(t *testing.T) {
	type testCase struct {
		name     string
		err      error
		kind     error
		contains string
	}

	cause := errors.New("boom")
	testCases := []testCase{
		{
			name:     "resolution wraps cause",
			err:      generr.Resolution(cause, "interface %s", "logger"),
			kind:     generr.ErrResolution,
			contains: "interface logger: boom",
		},
		{
			name:     "resolution without cause",
			err:      generr.Resolution(nil, "signature %s", "pkg.I"),
			kind:     generr.ErrResolution,
			contains: "signature pkg.I",
		},
		{
			name:     "output creation",
			err:      generr.OutputCreation(cause, "/out/a.h"),
			kind:     generr.ErrOutputCreation,
			contains: "create /out/a.h",
		},
		{
			name:     "flag resolution",
			err:      generr.FlagResolution(cause, "cflags"),
			kind:     generr.ErrFlagResolution,
			contains: "cflags",
		},
		{
			name:     "render",
			err:      generr.Render("unsupported type %T", 1),
			kind:     generr.ErrRender,
			contains: "unsupported type int",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.err)
			assert.True(t, generr.Is(tc.err, tc.kind))
			assert.Contains(t, tc.err.Error(), tc.contains)
			for _, other := range []error{generr.ErrResolution, generr.ErrOutputCreation, generr.ErrFlagResolution, generr.ErrRender} {
				if other == tc.kind {
					continue
				}
				assert.False(t, generr.Is(tc.err, other))
			}
		})
	}
}

func TestOutputCreationHint(t *testing.T) {
	err := generr.OutputCreation(errors.New("denied"), "x.h")
	assert.Contains(t, generr.FlattenHints(err), "writable")
}

func TestWrappedKindSurvives(t *testing.T) {
	err := generr.Wrapf(generr.Render("bad"), "definition %s", "pkg.Comp")
	assert.True(t, generr.Is(err, generr.ErrRender))
	assert.Contains(t, err.Error(), "definition pkg.Comp: bad")
}
