package common

import (
	"path"
	"strings"
)

// CIdentifier turns a dotted name into a C identifier: "pkg.Comp" -> "pkg_Comp".
func CIdentifier(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "_")
}

// GuardMacro returns the include guard macro of a dotted name: "pkg.Comp" -> "PKG_COMP".
func GuardMacro(dotted string) string {
	return strings.ToUpper(CIdentifier(dotted))
}

// FileGuard returns the include guard macro of a slash separated file path:
// "sub/comp.impl.h" -> "SUB_COMP_IMPL_H".
func FileGuard(relPath string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_", " ", "_")
	return strings.ToUpper(r.Replace(StripRoot(relPath)))
}

// NameToPath maps a dotted name to a relative slash separated path with the
// given extension: ("pkg.Comp", "adl.h") -> "pkg/Comp.adl.h".
func NameToPath(dotted, ext string) string {
	p := strings.ReplaceAll(dotted, ".", "/")
	if ext == "" {
		return p
	}
	return p + "." + strings.TrimPrefix(ext, ".")
}

// StripRoot removes the leading root marker(s) of a model path: "/dir/a.c" -> "dir/a.c".
func StripRoot(p string) string {
	return strings.TrimLeft(p, "/")
}

// ReplaceExtension swaps the extension of the last path element:
// ("/dir/comp.c", "impl.h") -> "/dir/comp.impl.h". A path without extension
// gets ext appended.
func ReplaceExtension(p, ext string) string {
	ext = "." + strings.TrimPrefix(ext, ".")
	base := path.Base(p)
	if i := strings.LastIndex(base, "."); i > 0 {
		return p[:len(p)-len(base)+i] + ext
	}
	return p + ext
}

// NormalizeInclude rewrites the operand of an #include directive so that it
// never names an absolute-looking path.
//
//   - "\"/a/b.h\"" -> "\"a/b.h\""
//   - "<stdio.h>"  -> "<stdio.h>" (system includes are left untouched)
//   - "/a/b.h"     -> "\"a/b.h\"" (bare paths are quoted)
//
// Surrounding whitespace is dropped.
func NormalizeInclude(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return s
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return s
	case len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`):
		return `"` + StripRoot(s[1:len(s)-1]) + `"`
	default:
		return `"` + StripRoot(strings.Trim(s, `"`)) + `"`
	}
}
