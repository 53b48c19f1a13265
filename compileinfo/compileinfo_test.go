package compileinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	if s := (CompileInfo{}).String(); !strings.Contains(s, "No build information") {
		t.Errorf("Unexpected description of an empty CompileInfo: %s", s)
	}

	c := CompileInfo{
		Command:   "getloci",
		Module:    "github.com/gwasmisc/gwasmisc",
		Version:   "(devel)",
		GoVersion: "go1.18",
		Modified:  true,
	}

	s := c.String()
	for _, want := range []string{"getloci", "go1.18", "commit unknown", "modified"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q does not mention %q", s, want)
		}
	}
}
