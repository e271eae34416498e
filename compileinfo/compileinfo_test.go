package compileinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	c := CompileInfo{Tool: "panelcorrelate", Module: "github.com/carbocation/genepanel", GoVersion: "go1.18", Commit: "abc123", CommitTime: "2022-06-01T00:00:00Z", Modified: true}

	s := c.String()
	for _, want := range []string{"panelcorrelate", "abc123", "modified"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %q", want, s)
		}
	}

	if s := (CompileInfo{Tool: "panelsubset", GoVersion: "go1.18"}).String(); !strings.Contains(s, "without version control") {
		t.Errorf("Unexpected string without commit: %q", s)
	}
}

func TestCommitTime(t *testing.T) {
	for _, v := range []struct {
		Input    string
		Expected string
	}{
		{"2022-06-01T02:03:04Z", "2022-06-01 02:03:04 UTC"},
		{"2022-06-01T02:03:04-04:00", "2022-06-01 06:03:04 UTC"},
		{"not a time", "not a time"},
	} {
		if got := commitTime(v.Input); got != v.Expected {
			t.Errorf("commitTime(%q) = %q, expected %q", v.Input, got, v.Expected)
		}
	}
}
