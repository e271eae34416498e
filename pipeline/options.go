package pipeline

import (
	"io"
	"log"
	"os"
)

// narration carries the two output streams of a stage: progress through a
// logger and result listings through a plain writer.
type narration struct {
	log *log.Logger
	out io.Writer
}

func newNarration(l *log.Logger, out io.Writer) narration {
	if l == nil {
		l = log.Default()
	}
	if out == nil {
		out = os.Stdout
	}

	return narration{log: l, out: out}
}
