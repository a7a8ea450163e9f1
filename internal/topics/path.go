package topics

import "strings"

// DefaultTopic is assigned to questions with no usable topic label.
const DefaultTopic = "General"

// separators are the characters a raw topic label is split on. The
// en-dash shows up in labels pasted from formatted documents.
var separators = []rune{'|', '-', '–', ':', ';', '/', '>'}

// SplitPath breaks one raw topic label into an ordered list of trimmed
// segment names. Empty segments are dropped; a label with no usable
// segments yields nil.
func SplitPath(label string) []string {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		for _, sep := range separators {
			if r == sep {
				return true
			}
		}
		return false
	})

	var path []string
	for _, p := range parts {
		if seg := strings.TrimSpace(p); seg != "" {
			path = append(path, seg)
		}
	}
	return path
}

// Paths normalizes a question's topic labels into distinct topic paths.
// Duplicate paths are removed so a question's history is never counted
// twice within the same path. No usable labels → a single DefaultTopic
// path.
func Paths(labels []string) [][]string {
	var paths [][]string
	seen := make(map[string]bool)
	for _, label := range labels {
		path := SplitPath(label)
		if len(path) == 0 {
			continue
		}
		key := strings.Join(path, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return [][]string{{DefaultTopic}}
	}
	return paths
}
