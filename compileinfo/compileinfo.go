// Package compileinfo reports which commit a binary was built from, so that
// figures and tables can be traced back to the code that produced them.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime/debug"

	"github.com/araddon/dateparse"
)

type CompileInfo struct {
	Tool       string
	Module     string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Commit == "" {
		return fmt.Sprintf("This %s binary was built with %s without version control information.", c.Tool, c.GoVersion)
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary (%s) was built with %s at commit %v at time %v.%s", c.Tool, c.Module, c.GoVersion, c.Commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{Tool: path.Base(os.Args[0])}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Module = z.Main.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = commitTime(s.Value)
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build provenance line to w.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}

// commitTime renders a VCS timestamp in UTC. Unparseable values are returned
// as they are.
func commitTime(value string) string {
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return value
	}

	return t.UTC().Format("2006-01-02 15:04:05 MST")
}
