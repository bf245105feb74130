package buildindex

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const testIndexPage = `<html>
<head><title>Interim Builds</title></head>
<body>
    <div class="directory-list">
<!-- DIRECTORIES_LIST_START -->
        <p>stale content</p>
<!-- DIRECTORIES_LIST_END -->
    </div>
    <footer>hand-written footer</footer>
</body>
</html>
`

func TestSpliceRegion(t *testing.T) {
	got, err := spliceRegion("a<s>old</e>b", "<s>", "</e>", "new")
	if err != nil {
		t.Fatalf("spliceRegion failed: %v", err)
	}
	if got != "a<s>new</e>b" {
		t.Errorf("spliceRegion = %q, want a<s>new</e>b", got)
	}
}

func TestSpliceRegionMissingMarkers(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no start", "old</e>b"},
		{"no end", "a<s>old"},
		{"reversed", "</e>old<s>"},
		{"neither", "plain content"},
	}

	for _, tt := range tests {
		if _, err := spliceRegion(tt.content, "<s>", "</e>", "new"); !errors.Is(err, ErrMarkersNotFound) {
			t.Errorf("%s: err = %v, want ErrMarkersNotFound", tt.name, err)
		}
	}
}

func TestUpdateIndexRewritesRegion(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.IndexFile = filepath.Join(dir, "index.html")
	if err := os.WriteFile(cfg.IndexFile, []byte(testIndexPage), 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	builds := []Build{
		{ID: "00002", FileCount: 2, Created: "2024-03-01 10:00:00"},
		{ID: "00001", FileCount: 1, Created: "2024-02-01 09:00:00"},
	}
	if err := UpdateIndex(cfg, builds, zap.NewNop()); err != nil {
		t.Fatalf("UpdateIndex failed: %v", err)
	}

	content, err := os.ReadFile(cfg.IndexFile)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	doc := parseHTML(t, content)

	items := doc.Find(".directory-item")
	if items.Length() != 2 {
		t.Fatalf("directory-item count = %d, want 2", items.Length())
	}
	if got := items.Eq(0).Find(".directory-name").Text(); got != "Build #00002" {
		t.Errorf("first entry = %q, want Build #00002", got)
	}
	if got := items.Eq(0).Find(".directory-files").Text(); !strings.Contains(got, "2 files") {
		t.Errorf("first entry files = %q, want 2 files", got)
	}
	if got := items.Eq(1).Find(".directory-files").Text(); !strings.Contains(got, "1 file ") {
		t.Errorf("second entry files = %q, want singular 1 file", got)
	}
	if href, _ := items.Eq(0).Attr("href"); href != "builds/00002/index.html" {
		t.Errorf("first entry href = %q", href)
	}

	// content outside the markers survives untouched
	if !bytes.Contains(content, []byte("hand-written footer")) {
		t.Errorf("footer outside region was lost")
	}
	if !bytes.Contains(content, []byte("<!-- DIRECTORIES_LIST_START -->")) ||
		!bytes.Contains(content, []byte("<!-- DIRECTORIES_LIST_END -->")) {
		t.Errorf("markers not re-emitted")
	}
	if bytes.Contains(content, []byte("stale content")) {
		t.Errorf("old region content survived")
	}
}

func TestUpdateIndexZeroBuilds(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.IndexFile = filepath.Join(dir, "index.html")
	if err := os.WriteFile(cfg.IndexFile, []byte(testIndexPage), 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	if err := UpdateIndex(cfg, nil, zap.NewNop()); err != nil {
		t.Fatalf("UpdateIndex failed: %v", err)
	}

	content, err := os.ReadFile(cfg.IndexFile)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	doc := parseHTML(t, content)

	if doc.Find(".directory-item").Length() != 0 {
		t.Errorf("directory entries rendered for zero builds")
	}
	if !strings.Contains(doc.Find(".empty-state").Text(), "No builds yet") {
		t.Errorf("empty-state guidance missing")
	}
}

func TestUpdateIndexMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IndexFile = filepath.Join(t.TempDir(), "index.html")

	err := UpdateIndex(cfg, nil, zap.NewNop())
	if !errors.Is(err, ErrIndexMissing) {
		t.Fatalf("err = %v, want ErrIndexMissing", err)
	}

	// the tool must not fabricate an index file
	if _, statErr := os.Stat(cfg.IndexFile); !os.IsNotExist(statErr) {
		t.Errorf("index file was created: %v", statErr)
	}
}

func TestUpdateIndexMissingMarkers(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.IndexFile = filepath.Join(dir, "index.html")
	original := []byte("<html><body>no markers here</body></html>")
	if err := os.WriteFile(cfg.IndexFile, original, 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	err := UpdateIndex(cfg, []Build{{ID: "00001"}}, zap.NewNop())
	if !errors.Is(err, ErrMarkersNotFound) {
		t.Fatalf("err = %v, want ErrMarkersNotFound", err)
	}

	after, readErr := os.ReadFile(cfg.IndexFile)
	if readErr != nil {
		t.Fatalf("read index: %v", readErr)
	}
	if !bytes.Equal(original, after) {
		t.Errorf("index file modified despite missing markers")
	}
}
