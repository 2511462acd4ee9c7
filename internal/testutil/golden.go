// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// UpdateEnv rewrites golden files instead of comparing when set.
const UpdateEnv = "GOLDEN_UPDATE"

// Path is the golden file for name, under the calling package's testdata.
func Path(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// Golden compares got with the golden file for name and reports the first
// differing line.
func Golden(t testing.TB, name string, got []byte) {
	t.Helper()
	path := Path(name)

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create testdata: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("update %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v (run with %s=1 to create it)\ngot:\n%s", path, err, UpdateEnv, got)
	}
	if d := Diff(string(want), string(got)); d != "" {
		t.Errorf("%s mismatch (run with %s=1 to accept):\n%s", path, UpdateEnv, d)
	}
}

// GoldenString is Golden for string output.
func GoldenString(t testing.TB, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

// Diff describes the first line where want and got differ, or returns ""
// when they are equal. Missing lines are shown as <eof>.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; i < max(len(wl), len(gl)); i++ {
		w, g := lineAt(wl, i), lineAt(gl, i)
		if w == g {
			continue
		}
		var b bytes.Buffer
		fmt.Fprintf(&b, "line %d:\n", i+1)
		fmt.Fprintf(&b, "  want: %s\n", w)
		fmt.Fprintf(&b, "  got:  %s\n", g)
		return b.String()
	}
	return ""
}

func lineAt(lines []string, i int) string {
	if i >= len(lines) {
		return "<eof>"
	}
	return fmt.Sprintf("%q", lines[i])
}
