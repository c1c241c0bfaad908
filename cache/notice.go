package cache

import (
	"io"
	"strings"
)

// Notice is the message written every time a memoized function misses.
// It is configuration only: it is not part of the call key.
type Notice []string

// Message builds a Notice from one or more lines.
func Message(lines ...string) Notice {
	return Notice(lines)
}

// String joins the lines with newlines.
func (n Notice) String() string {
	return strings.Join(n, "\n")
}

// WriteTo writes each line followed by a newline. An empty Notice writes
// nothing.
func (n Notice) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range n {
		written, err := io.WriteString(w, line+"\n")
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
