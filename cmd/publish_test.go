package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestPublish(t *testing.T) {
	useTempLedger(t)
	if got := run(t, &declareCmd{}, "-d", "2025-01-01", "-s", "HYPE-USDC", "-base", "HYPE", "-quote", "USDC", "-lower", "30", "-upper", "50", "-entry", "40"); got != subcommands.ExitSuccess {
		t.Fatalf("declare = %v", got)
	}
	if got := run(t, &depositCmd{}, "-d", "2025-01-01", "-a", "HYPE-USDC", "-q", "1", "-cost", "1000"); got != subcommands.ExitSuccess {
		t.Fatalf("deposit = %v", got)
	}

	dir := t.TempDir()
	tpl := filepath.Join(dir, "fm.tmpl")
	if err := os.WriteFile(tpl, []byte("---\ntitle: {{.Report}} {{.Date}}\n---\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "reports")
	if got := run(t, &publishCmd{}, "-o", out, "-d", "2025-01-11", "-frontmatter", tpl); got != subcommands.ExitSuccess {
		t.Fatalf("publish = %v, want success", got)
	}

	tests := []struct {
		file string
		want string
	}{
		{"earnings/2025-01-11.md", "title: earnings 2025-01-11"},
		{"positions/2025-01-11.md", "HYPE-USDC"},
		{"transactions.md", "Deposited 1 HYPE-USDC"},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join(out, tc.file))
			if err != nil {
				t.Fatalf("ReadFile(%s): %v", tc.file, err)
			}
			if !strings.Contains(string(content), tc.want) {
				t.Errorf("%s = %q, want it to contain %q", tc.file, content, tc.want)
			}
		})
	}
}
