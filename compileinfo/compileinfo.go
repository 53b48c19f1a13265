package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime/debug"
)

// CompileInfo describes the binary that is running, so that output files can
// be traced back to the commit that produced them.
type CompileInfo struct {
	Command    string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.GoVersion == "" {
		return "No build information is embedded in this binary."
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	commit := c.Commit
	if commit == "" {
		commit = "unknown"
	}

	return fmt.Sprintf("%s (%s %s) was built with %s at commit %s at time %v.%s", c.Command, c.Module, c.Version, c.GoVersion, commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Command = path.Base(z.Path)
	out.Module = z.Main.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
