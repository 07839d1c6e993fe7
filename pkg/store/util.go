package store

import (
	"fmt"
	"path"
	"strings"
)

// CleanName validates a name passed to Dir.Dir or Dir.File. Names are
// slash separated and relative; they must not escape their parent.
func CleanName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name")
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", fmt.Errorf("name %q must be relative and slash separated", name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("name %q escapes its parent", name)
	}
	return cleaned, nil
}
