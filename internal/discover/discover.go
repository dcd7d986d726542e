// Package discover walks a project root to find the primary-language
// source files an analysis run should consider, honoring excludes,
// includes, and (optionally) .gitignore, the way the scanner this is
// grounded on resolves its own file set before handing off to parsing.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/oxhq/archlint/internal/errs"
)

// DefaultExcludes are applied only when the caller supplies no excludes of
// its own.
var DefaultExcludes = []string{"**/target/**", "**/vendor/**"}

// Options configures a discovery run.
type Options struct {
	Root             string
	Extensions       []string // e.g. [".rs"]; empty matches every file
	Exclude          []string
	Include          []string // when non-empty, only files matching one of these globs are kept
	RespectGitignore bool
	// Workers bounds the optional parallel stat/filter pass; zero or
	// negative runs sequentially.
	Workers int
}

// Walk returns every matching file's path, sorted, relative to Root. A
// file-read or glob error aborts discovery entirely (the fail-fast
// semantics: "File-read errors and glob errors abort analysis").
func Walk(ctx context.Context, opts Options) ([]string, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, &errs.AnalyzerError{Op: "discover", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &errs.AnalyzerError{Op: "discover", Path: root, Err: fmt.Errorf("not a directory")}
	}

	exclude := opts.Exclude
	if len(exclude) == 0 {
		exclude = DefaultExcludes
	}

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	var candidates []string
	walkErr := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		rel := filepath.ToSlash(path)
		if d.IsDir() {
			if matchesAny(exclude, rel, true) || (gi != nil && gi.MatchesPath(rel)) {
				return fs.SkipDir
			}
			return nil
		}
		if matchesAny(exclude, rel, false) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if !hasWantedExtension(rel, opts.Extensions) {
			return nil
		}
		if len(opts.Include) > 0 && !matchesAny(opts.Include, rel, false) {
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if walkErr != nil {
		return nil, &errs.AnalyzerError{Op: "discover", Path: root, Err: walkErr}
	}

	sort.Strings(candidates)

	if opts.Workers > 1 {
		return filterParallel(ctx, root, candidates, opts.Workers)
	}
	return candidates, nil
}

// filterParallel re-stats every candidate across a bounded worker pool,
// dropping paths that are no longer regular files by the time they're
// visited (a rename/delete race). This mirrors the producer/worker-pool
// shape of a bounded parallel file walk; the final list is always sorted
// again since worker completion order is not deterministic.
func filterParallel(ctx context.Context, root string, candidates []string, workers int) ([]string, error) {
	if workers > runtime.NumCPU()*2 {
		workers = runtime.NumCPU() * 2
	}
	in := make(chan string, len(candidates))
	for _, c := range candidates {
		in <- c
	}
	close(in)

	out := make(chan string, len(candidates))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range in {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if info, err := os.Stat(filepath.Join(root, rel)); err == nil && info.Mode().IsRegular() {
					out <- rel
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	var kept []string
	for rel := range out {
		kept = append(kept, rel)
	}
	sort.Strings(kept)
	return kept, ctx.Err()
}

// matchesAny reports whether rel matches pattern by doublestar glob OR by
// substring-after-`**`-stripping, the dual-match rule exclude patterns use
// so a pattern like "**/target/**" also excludes a bare "target" directory
// reached via a shorter relative path. dir indicates rel is a directory,
// whose trailing-slash form is also tried.
func matchesAny(patterns []string, rel string, dir bool) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if dir {
			if ok, _ := doublestar.Match(p, rel+"/"); ok {
				return true
			}
		}
		if stripped := stripDoubleStarWrap(p); stripped != "" && strings.Contains(rel, stripped) {
			return true
		}
	}
	return false
}

// stripDoubleStarWrap turns "**/target/**" into "target" and "**/vendor/**"
// into "vendor" — the substring form of a `**`-wrapped directory pattern.
func stripDoubleStarWrap(pattern string) string {
	p := strings.TrimPrefix(pattern, "**/")
	p = strings.TrimSuffix(p, "/**")
	if p == pattern {
		return ""
	}
	return p
}

func hasWantedExtension(rel string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	for _, e := range exts {
		if strings.HasSuffix(rel, e) {
			return true
		}
	}
	return false
}

// loadGitignore collects every .gitignore from root up to the filesystem
// root, root-to-leaf order so the closest file's rules take precedence,
// and compiles them into one matcher. A missing or unreadable .gitignore
// is silently skipped, since respecting gitignore is a convenience, not a
// correctness requirement.
func loadGitignore(root string) *ignore.GitIgnore {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil
	}
	var files []string
	for dir := abs; ; {
		p := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if len(files) == 0 {
		return nil
	}
	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}
	var lines []string
	for _, f := range files[1:] {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	gi, err := ignore.CompileIgnoreFileAndLines(files[0], lines...)
	if err != nil {
		return nil
	}
	return gi
}
