package recordfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadJSONLSkipsMalformedLines(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		`{"name": "Bungalow", "rooms": [{"roomName": "Hall", "wallArea": 12}]}`,
		``,
		`{not json`,
		`{"name": "Maisonette"}`,
	}, "\n"))

	recs, skipped, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL: %v", err)
	}
	if len(recs) != 2 || recs[0].Name != "Bungalow" || recs[1].Name != "Maisonette" {
		t.Fatalf("records = %+v", recs)
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0].Error(), "line 3") {
		t.Errorf("skipped = %v", skipped)
	}
}

func TestLoadJSONLErrors(t *testing.T) {
	if _, _, err := LoadJSONL(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, skipped, err := LoadJSONL(writeFile(t, "garbage\n\n")); err == nil || len(skipped) != 1 {
		t.Errorf("err=%v skipped=%v", err, skipped)
	}
}
