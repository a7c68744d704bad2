package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInlineQueriesCarryUniqueMarkers(t *testing.T) {
	violations, err := lint([]string{filepath.Join("..", "..", "sqlinline")})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	for _, v := range violations {
		t.Errorf("%s", v)
	}
}

func TestLintReportsMissingAndDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	src := "package q\n\n" +
		"const QOne = `--sql 0e77d9ec-dbbf-4fb8-8cff-bf3300368934\nselect 1;`\n\n" +
		"const QTwo = `--sql 0e77d9ec-dbbf-4fb8-8cff-bf3300368934\nselect 2;`\n\n" +
		"const QBare = `select 3;`\n\n" +
		"const notSQL = \"hello\"\n"
	if err := os.WriteFile(filepath.Join(dir, "q.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	if code := run([]string{dir}, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	out := stderr.String()
	if !strings.Contains(out, "marker already used by QOne") || !strings.Contains(out, "(QTwo)") {
		t.Fatalf("duplicate not reported:\n%s", out)
	}
	if !strings.Contains(out, "missing or invalid --sql <uuid> marker (QBare)") {
		t.Fatalf("missing marker not reported:\n%s", out)
	}
	if strings.Contains(out, "notSQL") {
		t.Fatalf("non-SQL constant reported:\n%s", out)
	}
}
