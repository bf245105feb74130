package buildindex

import (
	"fmt"
	"os"

	"gitlab.com/efronlicht/enve"
	yaml "gopkg.in/yaml.v2"
)

// Config carries everything the generator needs to know about a deployment:
// where builds live, which files count as artifacts, and the repository
// coordinates baked into generated pages for client-side download resolution.
type Config struct {
	BuildsDir   string `yaml:"builds_dir"`
	IndexFile   string `yaml:"index_file"`
	ArtifactExt string `yaml:"artifact_ext"`
	PageName    string `yaml:"page_name"`

	RepoOwner  string `yaml:"repo_owner"`
	RepoName   string `yaml:"repo_name"`
	RepoBranch string `yaml:"repo_branch"`
}

// DefaultConfig matches the original deployment layout.
func DefaultConfig() Config {
	return Config{
		BuildsDir:   "builds",
		IndexFile:   "index.html",
		ArtifactExt: ".jar",
		PageName:    "index.html",
		RepoOwner:   "r7l-labs",
		RepoName:    "interim-builds",
		RepoBranch:  "main",
	}
}

// LoadConfig builds a Config from defaults, an optional YAML file, and
// environment overrides, in that order. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.BuildsDir = enve.StringOr("BUILDS_DIR", cfg.BuildsDir)
	cfg.IndexFile = enve.StringOr("INDEX_FILE", cfg.IndexFile)
	cfg.ArtifactExt = enve.StringOr("ARTIFACT_EXT", cfg.ArtifactExt)
	cfg.RepoOwner = enve.StringOr("REPO_OWNER", cfg.RepoOwner)
	cfg.RepoName = enve.StringOr("REPO_NAME", cfg.RepoName)
	cfg.RepoBranch = enve.StringOr("REPO_BRANCH", cfg.RepoBranch)

	return cfg, nil
}
