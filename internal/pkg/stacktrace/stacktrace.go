// Package stacktrace trims goroutine dumps down to the frames of this module.
package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a raw stack trace, innermost first. Frames outside internal/ are dropped.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line[:idx], marker) {
			continue
		}

		location, _, _ := strings.Cut(line, " ")
		paths = append(paths, location[strings.Index(location, marker)+1:])
	}

	return paths
}
