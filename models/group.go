package models

import (
	"strings"

	"golang.org/x/text/cases"
)

var groupPrefixes = []string{"group ", "gruppe "}

// CanonicalGroup normalizes a group label to its lookup key:
// "Group A", "gruppe a" and "A" all map to "a".
func CanonicalGroup(label string) string {
	key := cases.Fold().String(strings.TrimSpace(label))
	for _, prefix := range groupPrefixes {
		if strings.HasPrefix(key, prefix) {
			key = strings.TrimSpace(strings.TrimPrefix(key, prefix))
			break
		}
	}
	return key
}

// SameGroup reports whether two labels name the same group.
func SameGroup(a, b string) bool {
	return CanonicalGroup(a) == CanonicalGroup(b)
}
