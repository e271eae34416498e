package genepanel

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// delimiterPreference breaks ties between characters that occur equally often
// on every sampled line, e.g. tabs and the underscores of IDs like F2_2147.
const delimiterPreference = "\t,;|"

// DetermineDelimiter returns the field separator of r. The detector reports its
// candidates in map order, so they are ranked here: tab, comma, semicolon and
// pipe first, then anything else by byte value. Tab is the default.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) == 0 {
		return '\t'
	}

	sort.Slice(delimiters, func(i, j int) bool {
		ri, rj := delimiterRank(delimiters[i]), delimiterRank(delimiters[j])
		if ri != rj {
			return ri < rj
		}
		return delimiters[i] < delimiters[j]
	})

	return rune(delimiters[0][0])
}

func delimiterRank(candidate string) int {
	if i := strings.Index(delimiterPreference, candidate); i >= 0 {
		return i
	}

	return len(delimiterPreference)
}

// PeekDelimiter determines the delimiter from the first few lines of r
// without consuming them.
func PeekDelimiter(r *bufio.Reader, lines int) rune {
	// Peek a generous window; a short file simply returns what exists.
	head, _ := r.Peek(64 * 1024)

	end := 0
	for i := 0; i < lines; i++ {
		next := bytes.IndexByte(head[end:], '\n')
		if next < 0 {
			end = len(head)
			break
		}
		end += next + 1
	}

	return DetermineDelimiter(bytes.NewReader(head[:end]))
}
