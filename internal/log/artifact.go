package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// ArtifactLogger records the content of every committed output file.
type ArtifactLogger interface {
	Log(path string, data []byte)
}

type artifactLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewArtifact creates an ArtifactLogger. A nil writer gives a no-op logger.
func NewArtifact(w io.Writer) ArtifactLogger {
	return &artifactLogger{w: w}
}

// Log writes a header line with timestamp, path and size followed by the
// content, each content line prefixed with "| ".
func (a *artifactLogger) Log(path string, data []byte) {
	if a.w == nil {
		return
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s: %d bytes\n",
		time.Now().Format("2006/01/02 15:04:05"), path, len(data))
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		buf.WriteString("| ")
		buf.Write(line)
		if line[len(line)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	a.mu.Lock()
	_, _ = a.w.Write(buf.Bytes())
	a.mu.Unlock()
}
