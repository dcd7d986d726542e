// Package ktsyntax is the Kotlin LanguageExtractor for the
// cross-language layer engine: it parses Kotlin source with tree-sitter and
// reduces it to a layer.FileAnalysis (package name, imports, top-level
// declarations), the same shape every other language extractor produces.
package ktsyntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"

	"github.com/oxhq/archlint/internal/layer"
)

// Extractor implements layer.Extractor for Kotlin (.kt, .kts) sources.
type Extractor struct{}

func (Extractor) Language() string      { return "kotlin" }
func (Extractor) Extensions() []string  { return []string{".kt", ".kts"} }

func (Extractor) Analyze(source []byte) (layer.FileAnalysis, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(kotlin.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return layer.FileAnalysis{}, fmt.Errorf("ktsyntax: parse: %w", err)
	}
	root := tree.RootNode()

	fa := layer.FileAnalysis{}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "package_header":
			fa.PackageName = packageName(child, source)
		case "import_list":
			fa.Imports = append(fa.Imports, collectImports(child, source)...)
		case "import_header":
			if imp, ok := importInfo(child, source); ok {
				fa.Imports = append(fa.Imports, imp)
			}
		default:
			if decl, ok := declInfo(child, source); ok {
				fa.Decls = append(fa.Decls, decl)
			}
		}
	}
	return fa, nil
}

func packageName(n *sitter.Node, source []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "identifier", "qualified_identifier":
			return c.Content(source)
		}
	}
	return ""
}

func collectImports(list *sitter.Node, source []byte) []layer.ImportInfo {
	var out []layer.ImportInfo
	for i := 0; i < int(list.ChildCount()); i++ {
		c := list.Child(i)
		if c.Type() != "import_header" {
			continue
		}
		if imp, ok := importInfo(c, source); ok {
			out = append(out, imp)
		}
	}
	return out
}

func importInfo(n *sitter.Node, source []byte) (layer.ImportInfo, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "identifier", "qualified_identifier":
			return layer.ImportInfo{
				Path: c.Content(source),
				Line: int(n.StartPoint().Row) + 1,
			}, true
		}
	}
	return layer.ImportInfo{}, false
}

var declKinds = map[string]string{
	"class_declaration":  "class",
	"object_declaration": "object",
	"function_declaration": "function",
}

func declInfo(n *sitter.Node, source []byte) (layer.DeclInfo, bool) {
	kind, ok := declKinds[n.Type()]
	if !ok {
		return layer.DeclInfo{}, false
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		// fall back to a direct type-identifier child, since not every
		// grammar version exposes a "name" field uniformly.
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c.Type() == "type_identifier" || c.Type() == "simple_identifier" {
				name = c
				break
			}
		}
	}
	if name == nil {
		return layer.DeclInfo{}, false
	}
	return layer.DeclInfo{
		Name: name.Content(source),
		Kind: kind,
		Line: int(n.StartPoint().Row) + 1,
	}, true
}
