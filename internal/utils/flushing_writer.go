package utils

import "io"

// promptWriter pushes written bytes through the wrapped writer and flushes it
// immediately so confirmation prompts appear before zen blocks on input.
type promptWriter struct {
	destination io.Writer
}

// NewFlushingWriter wraps the provided writer so every write is flushed when
// the writer supports flushing. A nil writer yields a discarding writer.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return &promptWriter{destination: io.Discard}
	}
	return &promptWriter{destination: writer}
}

func (prompt *promptWriter) Write(data []byte) (int, error) {
	writtenByteCount, writeError := prompt.destination.Write(data)
	if writeError != nil {
		return writtenByteCount, writeError
	}
	if flushableDestination, supportsFlush := prompt.destination.(interface{ Flush() error }); supportsFlush {
		if flushError := flushableDestination.Flush(); flushError != nil {
			return writtenByteCount, flushError
		}
	}
	return writtenByteCount, nil
}
