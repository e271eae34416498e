package genepanel

import (
	"bufio"
	"io"
	"strings"
)

// Preview returns up to n lines from r, with trailing newlines removed. Lines
// longer than width runes are cut to width and suffixed with "...". A width of
// 0 disables truncation.
func Preview(r io.Reader, n, width int) ([]string, error) {
	out := make([]string, 0, n)

	br := bufio.NewReader(r)
	for len(out) < n {
		line, err := br.ReadString('\n')
		if line != "" {
			out = append(out, truncate(strings.TrimRight(line, "\r\n"), width))
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return out, err
		}
	}

	return out, nil
}

func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}

	runes := []rune(line)
	if len(runes) <= width {
		return line
	}

	return string(runes[:width]) + "..."
}
