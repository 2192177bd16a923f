package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// matchGlob reports whether a relative path matches a pattern. Patterns
// without a slash match any single path segment; otherwise the pattern is
// matched segment by segment and "**" spans zero or more segments.
func matchGlob(relPath, pattern string) bool {
	name := filepath.ToSlash(relPath)
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

	if !strings.Contains(pattern, "/") {
		for _, segment := range strings.Split(name, "/") {
			if ok, err := path.Match(pattern, segment); err == nil && ok {
				return true
			}
		}
		return false
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if matchSegments(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		}

		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

// matchesAny reports whether relPath matches any of the patterns.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
