package export

import "context"

// MessageSource provides an iterator over parsed chat messages.
// Implementations must be safe for sequential access (not concurrent).
type MessageSource interface {
	// Next returns the next parsed message.
	// Returns io.EOF when no more messages are available.
	Next(ctx context.Context) (*Message, error)

	// Close releases any resources held by the source.
	Close() error
}
