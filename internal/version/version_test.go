package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	info := Current()
	if info.Version != Version || info.GitCommit != GitCommit || info.BuildDate != BuildDate {
		t.Fatalf("Current() = %+v does not mirror build variables", info)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct {
		in   string
		want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3+build.7", "1.2.3+build.7"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPretty(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	out := Pretty(Info{Version: "1.0.0", GitCommit: "abc123"})
	if !strings.HasPrefix(out, "turbalance 1.0.0\n") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "commit: abc123") {
		t.Fatalf("missing commit line: %q", out)
	}
	if strings.Contains(out, "built:") {
		t.Fatalf("empty build date must be omitted: %q", out)
	}
}
