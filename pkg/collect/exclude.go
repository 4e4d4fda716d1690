package collect

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Precompiled regular expressions used to translate exclude globs.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\\\*\\\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\\\*\\\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\\\*\\\*/`)
)

// excludeRule is one compiled exclude glob.
type excludeRule struct {
	re     *regexp.Regexp
	negate bool   // "!" prefix re-includes matching paths.
	glob   string // Original pattern.
}

// Excluder matches slash-separated relative paths against gitignore-style
// globs. Later rules override earlier ones.
type Excluder struct {
	rules []excludeRule
}

// NewExcluder compiles patterns. Empty lines and lines starting with "#" are
// ignored. "*" matches within one path segment, "**" across segments, and
// a leading "/" anchors the pattern to the walked directory.
func NewExcluder(patterns ...string) (*Excluder, error) {
	ex := &Excluder{}
	for _, p := range patterns {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		negate := strings.HasPrefix(trimmed, "!")
		trimmed = strings.TrimPrefix(trimmed, "!")

		re, err := regexp.Compile(globToRegex(trimmed))
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		ex.rules = append(ex.rules, excludeRule{re: re, negate: negate, glob: p})
	}
	return ex, nil
}

// Matches reports whether relPath is excluded.
func (ex *Excluder) Matches(relPath string) bool {
	if ex == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	matched := false
	for _, r := range ex.rules {
		if r.re.MatchString(relPath) {
			matched = !r.negate
		}
	}
	return matched
}

func globToRegex(glob string) string {
	pattern := regexp.QuoteMeta(strings.TrimSuffix(glob, "/"))
	pattern = doubleStarMiddle.ReplaceAllString(pattern, `(/|/.+/)`)
	pattern = doubleStarTrailing.ReplaceAllString(pattern, `(/.*)?`)
	pattern = doubleStarLeading.ReplaceAllString(pattern, `(.*/)?`)
	pattern = strings.ReplaceAll(pattern, `\*`, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, `\?`, `[^/]`)
	pattern += `(/.*)?$`

	if strings.HasPrefix(glob, "/") {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	return "^(.*/)?" + pattern
}
