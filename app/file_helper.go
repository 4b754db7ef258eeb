package app

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectJSFiles collects JavaScript/TypeScript files from paths.
// Patterns are doublestar globs matched against the slash-separated path
// relative to the walked directory. With respectGitignore every .gitignore
// met during the walk applies to its own subtree.
func (h *FileHelper) CollectJSFiles(paths []string, recursive bool, includePatterns, excludePatterns []string, respectGitignore bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			name := filepath.Base(root)
			if h.isJSFile(root) && !matchesAny(excludePatterns, name) {
				add(root)
			}
			continue
		}

		w := &walker{
			helper:           h,
			root:             root,
			recursive:        recursive,
			include:          includePatterns,
			exclude:          excludePatterns,
			respectGitignore: respectGitignore,
			ignores:          make(map[string]*ignore.GitIgnore),
		}
		if err := filepath.WalkDir(root, w.visit(add)); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

type walker struct {
	helper           *FileHelper
	root             string
	recursive        bool
	include          []string
	exclude          []string
	respectGitignore bool
	// ignores holds the compiled .gitignore of each visited directory,
	// keyed by slash path relative to root ("." for root)
	ignores map[string]*ignore.GitIgnore
}

func (w *walker) visit(add func(string)) fs.WalkDirFunc {
	return func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(w.root, filePath)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				w.loadGitignore(filePath, rel)
				return nil
			}
			if !w.recursive || d.Name() == ".git" || w.excludedDir(rel) || w.ignored(rel, true) {
				return filepath.SkipDir
			}
			w.loadGitignore(filePath, rel)
			return nil
		}

		if !w.helper.isJSFile(filePath) {
			return nil
		}
		if len(w.include) > 0 && !matchesAny(w.include, rel) {
			return nil
		}
		if matchesAny(w.exclude, rel) || w.ignored(rel, false) {
			return nil
		}
		add(filePath)
		return nil
	}
}

func (w *walker) loadGitignore(dir, rel string) {
	if !w.respectGitignore {
		return
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return
	}
	w.ignores[rel] = gi
}

// ignored checks rel against the .gitignore of every ancestor directory
func (w *walker) ignored(rel string, isDir bool) bool {
	if !w.respectGitignore {
		return false
	}
	for dir := path.Dir(rel); ; dir = path.Dir(dir) {
		if gi, ok := w.ignores[dir]; ok {
			target := rel
			if dir != "." {
				target = strings.TrimPrefix(rel, dir+"/")
			}
			if isDir {
				target += "/"
			}
			if gi.MatchesPath(target) {
				return true
			}
		}
		if dir == "." {
			return false
		}
	}
}

// excludedDir reports whether every file below rel is excluded
func (w *walker) excludedDir(rel string) bool {
	for _, pattern := range w.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if trimmed, found := strings.CutSuffix(pattern, "/**"); found {
			if ok, _ := doublestar.Match(trimmed, rel); ok {
				return true
			}
		}
	}
	return false
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// IsValidJSFile checks if a file is a valid JavaScript/TypeScript file
func (h *FileHelper) IsValidJSFile(path string) bool {
	return h.isJSFile(path)
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// isJSFile checks if a file is JavaScript/TypeScript based on extension
func (h *FileHelper) isJSFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs", ".mts", ".cts":
		return true
	}
	return false
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
	respectGitignore bool,
) ([]string, error) {
	// Check if all paths are already files
	allFiles := true
	for _, p := range paths {
		exists, err := fileHelper.FileExists(p)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	// If all paths are already files, no need to collect again
	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectJSFiles(paths, recursive, includePatterns, excludePatterns, respectGitignore)
}
