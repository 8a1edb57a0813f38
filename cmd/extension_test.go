package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script requires a POSIX shell")
	}
	tempDir := t.TempDir()

	// lpf-hello dumps the environment it received in the file passed as argument.
	script := `#!/bin/sh
echo "$LPF_LEDGER_FILE|$LPF_PRICES_DB|$LPF_VERBOSE" > "$1"
exit 3
`
	if err := os.WriteFile(filepath.Join(tempDir, "lpf-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write lpf-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldLedger, oldDB, oldVerbose := *ledgerFile, *pricesDB, *Verbose
	t.Cleanup(func() { *ledgerFile, *pricesDB, *Verbose = oldLedger, oldDB, oldVerbose })
	*ledgerFile = filepath.Join(tempDir, "random_ledger.jsonl")
	*pricesDB = filepath.Join(tempDir, "prices.db")
	*Verbose = true

	out := filepath.Join(tempDir, "env.txt")
	found, code := RunExtension("hello", []string{out})
	if !found {
		t.Fatal("RunExtension(hello) did not find lpf-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension(hello) exit code = %d, want 3", code)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read extension output: %v", err)
	}
	want := *ledgerFile + "|" + *pricesDB + "|true"
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("extension environment = %q, want %q", strings.TrimSpace(string(got)), want)
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("missing", nil); found || code != 0 {
		t.Errorf("RunExtension(missing) = (%v, %d), want (false, 0)", found, code)
	}
}
