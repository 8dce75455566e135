// Package stacktrace trims goroutine dumps down to this module's frames.
package stacktrace

import (
	"strings"

	"github.com/samber/lo"
)

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a debug.Stack dump, outermost call last. Runtime and third-party frames
// are dropped, as are repeats of the same location.
func InternalPaths(stack []byte) []string {
	paths := lo.FilterMap(strings.Split(string(stack), "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "/") && !strings.Contains(line, ":/") {
			return "", false
		}

		loc, _, _ := strings.Cut(line, " +0x")
		idx := strings.LastIndex(loc, marker)
		if idx == -1 || !strings.Contains(loc[idx:], ".go:") {
			return "", false
		}
		return loc[idx+1:], true
	})

	return lo.Uniq(paths)
}
