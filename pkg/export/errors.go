package export

import (
	"errors"
	"fmt"
)

var (
	errMissingGroups    = errors.New("pattern must have three capture groups (timestamp, sender, text)")
	errMissingDateGroup = errors.New("date pattern must have one capture group (date)")
)

// ParseError indicates that the first content line of an export file
// did not match any known export layout.
type ParseError struct {
	// Line is the offending line content.
	Line string

	// Source is the file path the line came from.
	Source string

	// LineNum is the 1-based line number.
	LineNum int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: line does not match the export format: %q", e.Source, e.LineNum, e.Line)
}
