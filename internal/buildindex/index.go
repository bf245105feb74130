package buildindex

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Marker comments delimiting the directory-list region of the root index.
const (
	listStartMarker = "<!-- DIRECTORIES_LIST_START -->"
	listEndMarker   = "<!-- DIRECTORIES_LIST_END -->"
)

var (
	// ErrIndexMissing means the root index file does not exist. The tool
	// never fabricates one; the file is hand-maintained.
	ErrIndexMissing = errors.New("index file not found")

	// ErrMarkersNotFound means the index file has no directory-list region
	// to replace.
	ErrMarkersNotFound = errors.New("directory list markers not found")
)

type indexEntryData struct {
	ID        string
	FileCount int
	FileWord  string
	Created   string
}

var indexEntryTmpl = template.Must(template.New("indexentry").Parse(`                <a href="builds/{{.ID}}/index.html" class="directory-item">
                    <div class="directory-name">Build #{{.ID}}</div>
                    <div class="directory-files">{{.FileCount}} {{.FileWord}} &bull; {{.Created}}</div>
                </a>`))

const emptyIndexList = `                <div class="empty-state">
                    <p>No builds yet. Upload artifact files via FTP to builds/00001/ and run the generator.</p>
                </div>`

// spliceRegion replaces the span between the start and end markers in
// content, re-emitting both markers. Returns ErrMarkersNotFound when either
// marker is absent or they appear out of order.
func spliceRegion(content, start, end, replacement string) (string, error) {
	i := strings.Index(content, start)
	if i < 0 {
		return "", ErrMarkersNotFound
	}
	rest := content[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return "", ErrMarkersNotFound
	}

	var b strings.Builder
	b.WriteString(content[:i])
	b.WriteString(start)
	b.WriteString(replacement)
	b.WriteString(end)
	b.WriteString(rest[j+len(end):])
	return b.String(), nil
}

func renderIndexList(builds []Build) (string, error) {
	if len(builds) == 0 {
		return emptyIndexList, nil
	}

	var buf bytes.Buffer
	for i, b := range builds {
		if i > 0 {
			buf.WriteByte('\n')
		}
		entry := indexEntryData{
			ID:        b.ID,
			FileCount: b.FileCount,
			FileWord:  Pluralize(b.FileCount, "file", "files"),
			Created:   b.Created,
		}
		if err := indexEntryTmpl.Execute(&buf, entry); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// UpdateIndex rewrites the directory-list region of the root index file with
// one entry per build, newest-first. The file must already exist; content
// outside the markers is preserved byte for byte.
func UpdateIndex(cfg Config, builds []Build, log *zap.Logger) error {
	content, err := os.ReadFile(cfg.IndexFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", cfg.IndexFile, ErrIndexMissing)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.IndexFile, err)
	}

	listing, err := renderIndexList(builds)
	if err != nil {
		return fmt.Errorf("render directory list: %w", err)
	}

	updated, err := spliceRegion(string(content), listStartMarker, listEndMarker,
		"\n"+listing+"\n                ")
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.IndexFile, err)
	}

	if err := os.WriteFile(cfg.IndexFile, []byte(updated), 0644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.IndexFile, err)
	}

	log.Debug("index updated", zap.String("path", cfg.IndexFile), zap.Int("builds", len(builds)))
	return nil
}
