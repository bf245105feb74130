package buildindex

import (
	"fmt"

	"go.uber.org/zap"
)

// Summary reports what one run did, step by step.
type Summary struct {
	Builds    []Build
	NextID    string
	Generated []string // build IDs whose page was written this run
	Skipped   []string // build IDs whose page already existed
	PageErrs  []error
	IndexErr  error
}

// Failed reports whether any step of the run went wrong.
func (s *Summary) Failed() bool {
	return len(s.PageErrs) > 0 || s.IndexErr != nil
}

// Run executes one full pass: scan the builds root, generate pages for
// builds that lack one, and rewrite the index listing. Page-generation and
// index errors are collected in the Summary rather than aborting the run;
// only a failed scan stops everything.
func Run(cfg Config, log *zap.Logger) (*Summary, error) {
	builds, err := Scan(cfg.BuildsDir, cfg.ArtifactExt)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	log.Info("scan complete",
		zap.Int("builds", len(builds)),
		zap.String("root", cfg.BuildsDir))

	summary := &Summary{
		Builds: builds,
		NextID: NextID(builds),
	}

	for _, b := range builds {
		created, err := GeneratePage(cfg, b, log)
		switch {
		case err != nil:
			log.Error("generate page", zap.String("build", b.ID), zap.Error(err))
			summary.PageErrs = append(summary.PageErrs, err)
		case created:
			summary.Generated = append(summary.Generated, b.ID)
		default:
			summary.Skipped = append(summary.Skipped, b.ID)
		}
	}

	if err := UpdateIndex(cfg, builds, log); err != nil {
		log.Error("update index", zap.Error(err))
		summary.IndexErr = err
	}

	return summary, nil
}
