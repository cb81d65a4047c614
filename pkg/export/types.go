// Package export provides reading and parsing of chat export files.
package export

import "time"

// Message is a single chat message extracted from an export file.
type Message struct {
	// Timestamp is the time the message was sent.
	Timestamp time.Time

	// Sender is the display name of the message author.
	Sender string

	// Text is the message body. Continuation lines are joined with newlines.
	Text string

	// Source is the file path this message came from.
	Source string

	// LineNum is the 1-based line number where the message starts.
	LineNum int
}
