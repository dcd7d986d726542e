package declarative

import "github.com/bmatcuk/doublestar/v4"

// globMatch reports whether relPath matches pattern using doublestar glob
// semantics (`*`, `**`, character classes), consistent with the discovery
// and exclude-matching glob dialect used elsewhere in the analyzer.
func globMatch(pattern, relPath string) bool {
	ok, err := doublestar.Match(pattern, relPath)
	if err != nil {
		return false
	}
	return ok
}
