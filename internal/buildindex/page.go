package buildindex

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

const defaultInfo = "No information added yet. Edit this HTML file to add build notes, changelog, or other details."

// Marker comments delimiting the editable regions of a build page.
// html/template drops comments from template source, so these are injected
// as pre-escaped data instead of written inline.
const (
	infoStart  = template.HTML("<!-- INFO_START -->")
	infoEnd    = template.HTML("<!-- INFO_END -->")
	filesStart = template.HTML("<!-- FILES_START -->")
	filesEnd   = template.HTML("<!-- FILES_END -->")
)

var existingInfoPattern = regexp.MustCompile(`(?s)<!-- INFO_START -->\n(.*?)\n<!-- INFO_END -->`)

type pageData struct {
	ID        string
	Created   string
	Info      template.HTML
	FileCount int
	Files     template.HTML
	Owner     string
	Repo      string
	Branch    string

	InfoStart  template.HTML
	InfoEnd    template.HTML
	FilesStart template.HTML
	FilesEnd   template.HTML
}

type fileItemData struct {
	Name string
	Size string
}

var fileItemTmpl = template.Must(template.New("fileitem").Parse(`                <div class="file-item">
                    <span class="file-name">{{.Name}}</span>
                    <span class="file-size">{{.Size}}</span>
                    <a href="#" class="file-download" data-filename="{{.Name}}" download="{{.Name}}">Download</a>
                </div>`))

const emptyFileList = template.HTML(`                <div class="empty-state">
                    <p>No artifact files found</p>
                </div>`)

var pageTmpl = template.Must(template.New("buildpage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Build #{{.ID}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            padding: 2rem;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        .header {
            background: white;
            padding: 2rem;
            border-radius: 12px;
            box-shadow: 0 10px 30px rgba(0, 0, 0, 0.2);
            margin-bottom: 2rem;
        }

        .back-link {
            display: inline-block;
            color: #667eea;
            text-decoration: none;
            margin-bottom: 1rem;
            font-weight: 600;
        }

        .back-link:hover {
            text-decoration: underline;
        }

        h1 {
            color: #333;
            margin-bottom: 0.5rem;
            font-size: 2.5rem;
        }

        .build-display {
            color: #666;
            font-size: 1.1rem;
        }

        .info-section,
        .files-section {
            background: white;
            padding: 2rem;
            border-radius: 12px;
            box-shadow: 0 10px 30px rgba(0, 0, 0, 0.2);
            margin-bottom: 2rem;
        }

        .info-section h2,
        .files-section h2 {
            color: #333;
            margin-bottom: 1rem;
            font-size: 1.8rem;
        }

        .info-content {
            color: #555;
            line-height: 1.6;
            white-space: pre-wrap;
        }

        .file-list {
            display: flex;
            flex-direction: column;
            gap: 1rem;
        }

        .file-item {
            display: flex;
            justify-content: space-between;
            align-items: center;
            padding: 1rem;
            background: #f8f9fa;
            border-radius: 8px;
            transition: background 0.3s;
        }

        .file-item:hover {
            background: #e9ecef;
        }

        .file-name {
            font-weight: 600;
            color: #333;
            flex: 1;
        }

        .file-size {
            color: #666;
            margin: 0 1rem;
        }

        .file-download {
            padding: 0.5rem 1rem;
            background: #667eea;
            color: white;
            text-decoration: none;
            border-radius: 6px;
            transition: background 0.3s;
        }

        .file-download:hover {
            background: #5568d3;
        }

        .empty-state {
            text-align: center;
            padding: 2rem;
            color: #999;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <a href="../../index.html" class="back-link">&larr; Back to all builds</a>
            <h1>&#128230; Build #{{.ID}}</h1>
            <p class="build-display">Created: {{.Created}}</p>
        </div>

        <div class="info-section">
            <h2>&#128221; Build Information</h2>
            <div class="info-content">
{{.InfoStart}}
{{.Info}}
{{.InfoEnd}}
            </div>
        </div>

        <div class="files-section">
            <h2>&#128193; Files ({{.FileCount}})</h2>
            <div class="file-list">
{{.FilesStart}}
{{.Files}}
{{.FilesEnd}}
            </div>
        </div>
    </div>

    <script>
        const REPO_OWNER = '{{.Owner}}';
        const REPO_NAME = '{{.Repo}}';
        const REPO_BRANCH = '{{.Branch}}';
        const BUILD_ID = '{{.ID}}';

        document.addEventListener('DOMContentLoaded', function() {
            const downloadLinks = document.querySelectorAll('.file-download');
            downloadLinks.forEach(link => {
                const filename = link.getAttribute('data-filename');
                if (filename) {
                    link.href = 'https://raw.githubusercontent.com/' + REPO_OWNER + '/' + REPO_NAME +
                        '/' + REPO_BRANCH + '/builds/' + BUILD_ID + '/' + filename;
                }
            });
        });
    </script>
</body>
</html>
`))

// readExistingInfo extracts the info region from an existing page. It
// returns false when the page is absent, unreadable, or has no markers.
func readExistingInfo(pagePath string) (string, bool) {
	content, err := os.ReadFile(pagePath)
	if err != nil {
		return "", false
	}
	m := existingInfoPattern.FindSubmatch(content)
	if m == nil {
		return "", false
	}
	return string(bytes.TrimSpace(m[1])), true
}

// infoContent picks the info-region content for a new page: a previously
// written region if one survives at pagePath, rendered NOTES.md if the build
// has one, the fixed placeholder otherwise.
func infoContent(b Build, pagePath string, log *zap.Logger) template.HTML {
	if existing, ok := readExistingInfo(pagePath); ok {
		return template.HTML(existing)
	}

	notes, err := os.ReadFile(filepath.Join(b.Path, NotesFile))
	if os.IsNotExist(err) {
		return template.HTML(defaultInfo)
	}
	if err != nil {
		log.Warn("unreadable build notes", zap.String("build", b.ID), zap.Error(err))
		return template.HTML(defaultInfo)
	}

	rendered, err := RenderNotes(notes)
	if err != nil {
		log.Warn("render build notes", zap.String("build", b.ID), zap.Error(err))
		return template.HTML(defaultInfo)
	}
	return template.HTML(bytes.TrimSpace(rendered))
}

func renderFileList(dir, ext string) (template.HTML, error) {
	names, err := listArtifacts(dir, ext)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return emptyFileList, nil
	}

	var buf bytes.Buffer
	for i, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", name, err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		item := fileItemData{Name: name, Size: FormatSize(info.Size())}
		if err := fileItemTmpl.Execute(&buf, item); err != nil {
			return "", err
		}
	}
	return template.HTML(buf.String()), nil
}

// GeneratePage writes the page for one build directory. Builds that already
// have a page are left untouched and reported as skipped (created=false).
func GeneratePage(cfg Config, b Build, log *zap.Logger) (created bool, err error) {
	pagePath := filepath.Join(b.Path, cfg.PageName)

	if _, err := os.Stat(pagePath); err == nil {
		log.Debug("page exists, skipping", zap.String("build", b.ID))
		return false, nil
	}

	files, err := renderFileList(b.Path, cfg.ArtifactExt)
	if err != nil {
		return false, fmt.Errorf("list artifacts for %s: %w", b.ID, err)
	}

	data := pageData{
		ID:         b.ID,
		Created:    b.Created,
		Info:       infoContent(b, pagePath, log),
		FileCount:  b.FileCount,
		Files:      files,
		Owner:      cfg.RepoOwner,
		Repo:       cfg.RepoName,
		Branch:     cfg.RepoBranch,
		InfoStart:  infoStart,
		InfoEnd:    infoEnd,
		FilesStart: filesStart,
		FilesEnd:   filesEnd,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return false, fmt.Errorf("render page for %s: %w", b.ID, err)
	}

	if err := os.WriteFile(pagePath, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("write page for %s: %w", b.ID, err)
	}

	log.Debug("page generated", zap.String("build", b.ID), zap.Int("files", b.FileCount))
	return true, nil
}
