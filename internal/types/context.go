package types

import (
	"path/filepath"
	"strings"
)

// ModuleRoot prefixes a derived module path, a presentation-only marker
// (see DESIGN.md's Open Question on module-path derivation — declarative
// scope-dep resolution never relies on this, only on the literal
// src/<...>.rs convention).
const ModuleRoot = "crate"

// FileContext is the per-file analysis input handed to every PerFileRule.
type FileContext struct {
	AbsPath  string
	Content  string
	RelPath  string
	IsTest   bool
	ModulePath string
}

// NewFileContext derives IsTest and ModulePath from relPath the way the
// spec's conventions require, then returns a populated FileContext.
func NewFileContext(absPath, relPath, content string) FileContext {
	return FileContext{
		AbsPath:    absPath,
		RelPath:    relPath,
		Content:    content,
		IsTest:     classifyTest(relPath),
		ModulePath: deriveModulePath(relPath),
	}
}

// classifyTest applies the three common conventions for marking a path
// segment named tests/test/benches, or a file name ending in
// _test/_tests, or a test_ prefix.
func classifyTest(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, seg := range strings.Split(relPath, "/") {
		switch seg {
		case "tests", "test", "benches":
			return true
		}
	}
	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	if strings.HasSuffix(base, "_test") || strings.HasSuffix(base, "_tests") {
		return true
	}
	return strings.HasPrefix(base, "test_")
}

// deriveModulePath turns a relative path into a dotted, root-marker-prefixed
// logical module identifier: strip the extension, strip a trailing "mod" or
// "lib" segment, replace path separators with "::".
func deriveModulePath(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath))
	segs := strings.Split(relPath, "/")
	if n := len(segs); n > 0 && (segs[n-1] == "mod" || segs[n-1] == "lib") {
		segs = segs[:n-1]
	}
	if len(segs) == 0 {
		return ModuleRoot
	}
	return ModuleRoot + "::" + strings.Join(segs, "::")
}

// ProjectContext is the whole-project analysis input handed to every
// ProjectRule: the root directory, every discovered primary-language file,
// and every discovered manifest file (e.g. Cargo.toml).
type ProjectContext struct {
	Root      string
	Files     []FileContext
	Manifests []string
}
