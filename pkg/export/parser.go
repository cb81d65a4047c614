package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSource implements MessageSource for reading export files.
// Files are read in order and treated as one logical message stream.
type FileSource struct {
	files  []string
	format *LineFormat

	// pending is the last message line seen, held back so that
	// continuation lines can still be appended to it.
	pending *Message

	// firstChecked is set once the first content line of the initial
	// file has been validated against the format.
	firstChecked bool

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a MessageSource reading the given files in order,
// parsed with the given line format.
func NewFileSource(files []string, format *LineFormat) *FileSource {
	return &FileSource{
		files:     files,
		format:    format,
		fileIndex: -1,
	}
}

// Next returns the next complete message. A message is complete once the
// following message line (or end of input) has been seen, because lines that
// match no layout are continuations of the preceding message's text.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Message, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				if err == io.EOF && s.pending != nil {
					msg := s.pending
					s.pending = nil
					return msg, nil
				}
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			line := s.currentScanner.Text()
			if s.currentLine == 1 {
				line = strings.TrimPrefix(line, "\ufeff")
			}
			line = strings.TrimRight(line, "\r")

			if strings.TrimSpace(line) == "" {
				continue
			}

			if msg, err := s.consumeLine(line); err != nil {
				return nil, err
			} else if msg != nil {
				return msg, nil
			}
			continue
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// consumeLine feeds one content line into the parser state.
// Returns a message when one has been completed by this line.
func (s *FileSource) consumeLine(line string) (*Message, error) {
	if ts, sender, text, ok := s.format.ParseMessage(line); ok {
		s.firstChecked = true
		msg := &Message{
			Timestamp: ts,
			Sender:    sender,
			Text:      text,
			Source:    s.currentSource,
			LineNum:   s.currentLine,
		}
		if s.pending != nil {
			done := s.pending
			s.pending = msg
			return done, nil
		}
		s.pending = msg
		return nil, nil
	}

	if s.format.IsDateDivider(line) {
		// Day-divider lines carry no message content.
		s.firstChecked = true
		return nil, nil
	}

	// The very first content line of the initial file must match the
	// format; anything else means the wrong format was selected.
	if !s.firstChecked && s.fileIndex == 0 {
		return nil, &ParseError{
			Line:    line,
			Source:  s.currentSource,
			LineNum: s.currentLine,
		}
	}

	// Continuation of the previous message's text.
	if s.pending != nil {
		s.pending.Text += "\n" + line
	}
	return nil, nil
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening export file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}
