package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// partSuffix matches a part number at the end of a file base name,
// e.g. "chat-2" or "chat_2".
var partSuffix = regexp.MustCompile(`^(.*?)[-_](\d+)$`)

// DiscoverParts expands the path of the first part of an export into the
// ordered list of all sibling parts. Chat applications split large exports
// into numbered files ("chat.txt", "chat-2.txt", "chat-3.txt"); given any
// part, DiscoverParts finds the whole set and orders it by part number.
//
// If no siblings exist the input path is returned as-is (the caller gets a
// file-not-found error later if the path itself is bad).
func DiscoverParts(first string) ([]string, error) {
	ext := filepath.Ext(first)
	base := strings.TrimSuffix(first, ext)

	root := base
	if m := partSuffix.FindStringSubmatch(base); m != nil {
		root = m[1]
	}

	type part struct {
		num  int
		path string
	}

	seen := make(map[string]bool)
	var parts []part

	add := func(path string, num int) {
		if !seen[path] {
			seen[path] = true
			parts = append(parts, part{num: num, path: path})
		}
	}

	// The unnumbered file is the first part.
	if matches, err := filepath.Glob(root + ext); err == nil {
		for _, m := range matches {
			add(m, 1)
		}
	}

	for _, sep := range []string{"-", "_"} {
		matches, err := filepath.Glob(root + sep + "*" + ext)
		if err != nil {
			return nil, fmt.Errorf("discovering export parts for %s: %w", first, err)
		}
		for _, m := range matches {
			numStr := strings.TrimSuffix(strings.TrimPrefix(m, root+sep), ext)
			num, err := strconv.Atoi(numStr)
			if err != nil {
				// Sibling file that isn't a numbered part.
				continue
			}
			add(m, num)
		}
	}

	if len(parts) == 0 {
		// Nothing matched, keep the literal path for a clear error later.
		return []string{first}, nil
	}

	sort.Slice(parts, func(i, j int) bool {
		return parts[i].num < parts[j].num
	})

	result := make([]string, len(parts))
	for i, p := range parts {
		result[i] = p.path
	}

	return result, nil
}
