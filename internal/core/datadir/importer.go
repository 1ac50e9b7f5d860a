// Package datadir contains the pure rules for importing a data directory.
package datadir

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/easel/internal/core/effects"
)

// ImportContext provides the facts needed to validate an import source.
// Populated by the caller from the file system.
type ImportContext struct {
	Path    string
	HomeDir string
	Exists  bool
	IsDir   bool
}

// AllowedPrefixes returns the directories an import may come from.
func AllowedPrefixes(home string) []string {
	prefixes := []string{"/tmp/", "/var/tmp/"}
	if home != "" {
		home = strings.TrimRight(home, "/")
		for _, sub := range []string{"Downloads", "Documents", "Desktop"} {
			prefixes = append(prefixes, home+"/"+sub+"/")
		}
	}
	return prefixes
}

// ValidateImportPath checks that the import source is an existing absolute
// directory inside one of the allowed locations.
func ValidateImportPath(ctx ImportContext) error {
	p := ctx.Path
	switch {
	case p == "":
		return fmt.Errorf("import path cannot be empty")
	case strings.Contains(p, "..") || strings.Contains(p, "~"):
		return fmt.Errorf("invalid import path: path traversal detected")
	case !filepath.IsAbs(p):
		return fmt.Errorf("import path must be absolute")
	case !ctx.Exists:
		return fmt.Errorf("import directory does not exist")
	case !ctx.IsDir:
		return fmt.Errorf("import path must be a directory")
	}

	for _, prefix := range AllowedPrefixes(ctx.HomeDir) {
		if strings.HasPrefix(p, prefix) {
			return nil
		}
	}
	return fmt.Errorf("import path not in allowed location")
}

// Entry is one item found under the import source.
type Entry struct {
	RelPath string // Slash-separated, relative to the source root
	IsDir   bool
}

// PlanImport returns the effects that copy every entry from src into dst,
// overwriting existing files. Entries escaping the source root are skipped.
func PlanImport(src, dst string, entries []Entry) []effects.Effect {
	plan := []effects.Effect{
		effects.FileEffect{Operation: effects.FileMkdir, Path: dst, Mode: 0o755},
	}
	for _, e := range entries {
		rel := filepath.Clean(filepath.FromSlash(e.RelPath))
		if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
			continue
		}
		target := filepath.Join(dst, rel)
		if e.IsDir {
			plan = append(plan, effects.FileEffect{Operation: effects.FileMkdir, Path: target, Mode: 0o755})
			continue
		}
		plan = append(plan, effects.FileEffect{
			Operation: effects.FileCopy,
			Path:      target,
			Source:    filepath.Join(src, rel),
			Mode:      0o644,
		})
	}
	return plan
}

// ExcludeTopLevel drops entries whose first path element starts with any of
// the given prefixes, along with everything below them.
func ExcludeTopLevel(entries []Entry, prefixes ...string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		first, _, _ := strings.Cut(e.RelPath, "/")
		skip := false
		for _, p := range prefixes {
			if strings.HasPrefix(first, p) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, e)
		}
	}
	return out
}
