package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/originality-tools/oriscan/view"
)

func makeEnvelope(t *testing.T, raw string) *view.ScanEnvelope {
	t.Helper()
	var result view.ScanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return &view.ScanEnvelope{Result: result, Raw: json.RawMessage(raw)}
}

func TestSaveWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	raw := `{"properties":{"id":"x1","title":"Essay"},"ai":{"confidence":{"AI":0.5,"Original":0.5}}}`
	files, err := repo.Save(makeEnvelope(t, raw), "formatted report", SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	report, err := os.ReadFile(files.FormattedPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(report) != "formatted report" {
		t.Errorf("unexpected report content %q", string(report))
	}

	rawBytes, err := os.ReadFile(files.RawPath)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	// Stored raw is indented but must decode to the same document.
	var stored, original map[string]interface{}
	if err := json.Unmarshal(rawBytes, &stored); err != nil {
		t.Fatalf("decode stored raw: %v", err)
	}
	if err := json.Unmarshal([]byte(raw), &original); err != nil {
		t.Fatalf("decode original raw: %v", err)
	}
	if !reflect.DeepEqual(stored, original) {
		t.Errorf("stored raw differs from the API response:\n%s", string(rawBytes))
	}

	if !strings.HasPrefix(files.Id, "scan_result_") {
		t.Errorf("unexpected basename %q", files.Id)
	}
	if files.FormattedPath != filepath.Join(dir, files.Id+".txt") {
		t.Errorf("unexpected formatted path %q", files.FormattedPath)
	}
	if files.RawPath != filepath.Join(dir, files.Id+"_raw.json") {
		t.Errorf("unexpected raw path %q", files.RawPath)
	}
}

func TestSaveSkipRaw(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	files, err := repo.Save(makeEnvelope(t, `{}`), "report", SaveOptions{SkipRaw: true})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if files.RawPath != "" {
		t.Errorf("expected no raw path, got %q", files.RawPath)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the report file, found %d entries", len(entries))
	}
}

func TestSaveCustomBasename(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	files, err := repo.Save(makeEnvelope(t, `{}`), "report", SaveOptions{Basename: "my_scan"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if files.Id != "my_scan" {
		t.Errorf("expected custom basename, got %q", files.Id)
	}
	if _, err := os.Stat(filepath.Join(dir, "my_scan.txt")); err != nil {
		t.Errorf("report not found: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "my_scan_raw.json")); err != nil {
		t.Errorf("raw not found: %v", err)
	}
}

func TestSaveAvoidsBasenameCollision(t *testing.T) {
	dir := t.TempDir()
	repo := resultRepositoryImpl{resultsDir: dir}

	base := resultPrefix + time.Now().Format(timestampLayout)
	first := repo.freeBasename(base)
	if err := os.WriteFile(filepath.Join(dir, first+reportSuffix), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := repo.freeBasename(base)
	if second == first {
		t.Fatalf("expected a distinct basename, got %q twice", first)
	}
	if !strings.HasPrefix(second, first) {
		t.Errorf("expected collision counter suffix, got %q", second)
	}
}

func TestSaveCustomBasenameDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	first, err := repo.Save(makeEnvelope(t, `{}`), "first report", SaveOptions{Basename: "my_scan"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := repo.Save(makeEnvelope(t, `{}`), "second report", SaveOptions{Basename: "my_scan"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if second.Id == first.Id {
		t.Fatalf("expected a distinct id for the reused basename, got %q twice", first.Id)
	}
	kept, err := os.ReadFile(first.FormattedPath)
	if err != nil {
		t.Fatalf("read first report: %v", err)
	}
	if string(kept) != "first report" {
		t.Errorf("first report was overwritten: %q", string(kept))
	}
}

func TestListReturnsSummariesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	old := `{"properties":{"title":"Old"},"ai":{"confidence":{"AI":0.25}},"plagiarism":{"score":40}}`
	recent := `{"properties":{"title":"Recent"}}`

	writePair(t, dir, "scan_result_20250101_090000", "old report", old)
	writePair(t, dir, "scan_result_20250601_120000", "recent report", recent)

	scans, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(scans))
	}
	if scans[0].Title != "Recent" || scans[1].Title != "Old" {
		t.Errorf("expected newest first, got %q then %q", scans[0].Title, scans[1].Title)
	}

	oldScan := scans[1]
	if oldScan.AIProbability == nil || *oldScan.AIProbability != 25 {
		t.Errorf("expected AI probability 25, got %v", oldScan.AIProbability)
	}
	if oldScan.PlagiarismScore == nil || *oldScan.PlagiarismScore != 40 {
		t.Errorf("expected plagiarism score 40, got %v", oldScan.PlagiarismScore)
	}
	if oldScan.ContentChecksum == "" {
		t.Error("expected a content checksum for stored raw")
	}
	if oldScan.CreatedAt.Year() != 2025 || oldScan.CreatedAt.Month() != time.January {
		t.Errorf("unexpected created at %v", oldScan.CreatedAt)
	}
}

func TestListSkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	writePair(t, dir, "scan_result_20250601_120000", "report", `{}`)

	scans, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("expected 1 scan, got %d", len(scans))
	}
}

func TestListMissingDirectory(t *testing.T) {
	repo := NewResultRepository(filepath.Join(t.TempDir(), "does-not-exist"))
	scans, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if scans != nil {
		t.Errorf("expected no scans, got %v", scans)
	}
}

func TestGetRawAndReportMissing(t *testing.T) {
	repo := NewResultRepository(t.TempDir())

	raw, err := repo.GetRaw("nope")
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw != nil {
		t.Errorf("expected nil raw, got %s", string(raw))
	}

	report, err := repo.GetReport("nope")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report != "" {
		t.Errorf("expected empty report, got %q", report)
	}
}

func TestCleanupRemovesOldPairs(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	writePair(t, dir, "scan_result_20200101_000000", "stale", `{}`)
	freshId := "scan_result_" + time.Now().Format(timestampLayout)
	writePair(t, dir, freshId, "fresh", `{}`)

	removed, err := repo.Cleanup(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed pair, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, "scan_result_20200101_000000.txt")); !os.IsNotExist(err) {
		t.Error("stale report still present")
	}
	if _, err := os.Stat(filepath.Join(dir, "scan_result_20200101_000000_raw.json")); !os.IsNotExist(err) {
		t.Error("stale raw still present")
	}
	if _, err := os.Stat(filepath.Join(dir, freshId+".txt")); err != nil {
		t.Errorf("fresh report removed: %v", err)
	}
}

func TestParseCreatedAtWithCollisionCounter(t *testing.T) {
	withCounter := parseCreatedAt("scan_result_20250115_104501_2")
	plain := parseCreatedAt("scan_result_20250115_104501")
	if !withCounter.Equal(plain) {
		t.Errorf("expected identical timestamps, got %v and %v", withCounter, plain)
	}
	if bad := parseCreatedAt("scan_result_garbage"); !bad.IsZero() {
		t.Errorf("expected zero time for malformed id, got %v", bad)
	}
}

func writePair(t *testing.T, dir, id, report, raw string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, id+reportSuffix), []byte(report), 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+rawSuffix), []byte(raw), 0o644); err != nil {
		t.Fatalf("write raw: %v", err)
	}
}
