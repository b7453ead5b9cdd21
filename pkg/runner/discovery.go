package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// matcher holds the compiled exclude patterns.
type matcher struct {
	patterns []glob.Glob
	// base[i] is true when pattern i has no slash and so matches file names.
	base []bool
}

func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		m.patterns = append(m.patterns, compiled)
		m.base = append(m.base, !strings.Contains(pattern, "/"))
	}
	return m, nil
}

// excluded reports whether relPath matches any pattern. Directories also
// match with a trailing slash so that "vendor/**" prunes "vendor".
func (m *matcher) excluded(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	name := relPath[strings.LastIndex(relPath, "/")+1:]

	for i, pattern := range m.patterns {
		if pattern.Match(relPath) || (isDir && pattern.Match(relPath+"/")) {
			return true
		}
		if m.base[i] && pattern.Match(name) {
			return true
		}
	}
	return false
}

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := newMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Explicit files skip the extension check but not the excludes.
		if !exclude.excluded(d.rel(absPath), false) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)

	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	exclude    *matcher
	follow     bool
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// excluded matches path relative to the working directory and relative to
// the root being walked.
func (d *discoverer) excluded(root, path string, isDir bool) bool {
	if path == root {
		return false
	}
	if d.exclude.excluded(d.rel(path), isDir) {
		return true
	}
	relPath, err := filepath.Rel(root, path)
	return err == nil && d.exclude.excluded(relPath, isDir)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excluded(root, path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// Broken or unreadable symlink.
				return nil //nolint:nilerr // skipped, not fatal
			}
			if info.IsDir() {
				if !d.follow {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // skipped, not fatal
				}
				return d.walk(ctx, realPath)
			}
		}

		if d.hasExtension(path) && !d.excluded(root, path, false) {
			d.add(path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

func (d *discoverer) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range d.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}
