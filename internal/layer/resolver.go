// Package layer implements the cross-language layer engine: a
// LayerResolver mapping package-qualified names to architectural layers by
// longest-prefix-wins, and an ArchRuleEngine evaluating layer-dependency,
// pattern and naming constraints over a language-neutral FileAnalysis.
package layer

import (
	"fmt"
	"sort"
	"strings"
)

// LayerDef is one configured layer: a name plus the package-name prefixes
// that belong to it.
type LayerDef struct {
	Name     string
	Prefixes []string
}

type prefixEntry struct {
	prefix string
	layer  string
}

// LayerResolver maps a qualified package/class name to its configured
// layer by longest-prefix-wins, so a broad prefix never shadows a more
// specific one, and "com.example.domains" never matches the prefix
// "com.example.domain".
type LayerResolver struct {
	entries []prefixEntry
}

// NewLayerResolver flattens defs into (prefix, layer) pairs and sorts them
// by prefix length descending.
func NewLayerResolver(defs []LayerDef) *LayerResolver {
	var entries []prefixEntry
	for _, d := range defs {
		for _, p := range d.Prefixes {
			entries = append(entries, prefixEntry{prefix: p, layer: d.Name})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].prefix) > len(entries[j].prefix)
	})
	return &LayerResolver{entries: entries}
}

// Resolve returns the layer of the first (longest) prefix P such that
// qualifiedName == P or qualifiedName starts with P+".", and false if no
// prefix matches.
func (r *LayerResolver) Resolve(qualifiedName string) (string, bool) {
	for _, e := range r.entries {
		if qualifiedName == e.prefix || strings.HasPrefix(qualifiedName, e.prefix+".") {
			return e.layer, true
		}
	}
	return "", false
}

// ArchConfig is the validated layer/dependency/constraint configuration an
// ArchRuleEngine runs against.
type ArchConfig struct {
	Layers      []LayerDef
	Allowed     map[string][]string // layer -> layers it may depend on
	Constraints []Constraint
}

// Constraint is one `no-import-pattern` or `naming-rule` entry.
type Constraint struct {
	Name                string
	InLayers            []string
	Pattern             string // substring; non-empty selects a PATTERN001 constraint
	ImportMatches       string // substring; non-empty selects a naming-rule constraint
	SourceMustMatch     string
	SourceMustNotMatch  string
	Severity            string
}

// NewArchConfig validates cfg: every referenced layer in dependencies and
// constraints must exist, every layer must have a dependencies entry, and
// no layer may depend on itself. All violations are collected into one
// error rather than failing on the first.
func NewArchConfig(cfg ArchConfig) (*ArchConfig, error) {
	known := make(map[string]bool, len(cfg.Layers))
	for _, l := range cfg.Layers {
		known[l.Name] = true
	}

	var problems []string
	for _, l := range cfg.Layers {
		allowed, has := cfg.Allowed[l.Name]
		if !has {
			problems = append(problems, fmt.Sprintf("layer %q has no dependencies entry", l.Name))
			continue
		}
		for _, target := range allowed {
			if target == l.Name {
				problems = append(problems, fmt.Sprintf("layer %q may not depend on itself", l.Name))
				continue
			}
			if !known[target] {
				problems = append(problems, fmt.Sprintf("layer %q depends on unknown layer %q", l.Name, target))
			}
		}
	}
	for from := range cfg.Allowed {
		if !known[from] {
			problems = append(problems, fmt.Sprintf("dependencies entry for unknown layer %q", from))
		}
	}
	for _, c := range cfg.Constraints {
		for _, in := range c.InLayers {
			if !known[in] {
				problems = append(problems, fmt.Sprintf("constraint %q references unknown layer %q", c.Name, in))
			}
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid arch config: %s", strings.Join(problems, "; "))
	}
	return &cfg, nil
}
