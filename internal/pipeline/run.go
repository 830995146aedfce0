package pipeline

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/logging"
)

// Manifest records one full pipeline run.
type Manifest struct {
	StartedAt  utc.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time      `json:"finished_at" yaml:"finished_at"`
	Stages     []StageResult `json:"stages" yaml:"stages"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Duration returns the wall time of the run.
func (m *Manifest) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// Run executes bronze, silver, gold and load in order, stopping at the
// first failing stage. The manifest is written to gold/manifest.yaml
// whether or not the run succeeded.
func (p *Pipeline) Run(ctx context.Context) (*Manifest, error) {
	logger := logging.FromContext(ctx)
	m := &Manifest{StartedAt: utc.Now(), Stages: []StageResult{}}

	stages := []func(context.Context) (*StageResult, error){
		p.Bronze,
		p.Silver,
		p.Gold,
		p.Load,
	}

	var runErr error
	for _, stage := range stages {
		result, err := stage(ctx)
		if err != nil {
			runErr = err
			m.Error = err.Error()
			break
		}
		m.Stages = append(m.Stages, *result)
	}
	m.FinishedAt = utc.Now()

	path := p.store.Path(constants.StageGold, constants.ManifestFile)
	if err := artifacts.WriteYAML(path, m); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write run manifest")
	}

	if runErr != nil {
		logger.Error().Err(runErr).Int("completed_stages", len(m.Stages)).Msg("Pipeline run failed")
		return m, runErr
	}
	logger.Info().
		Int("stages", len(m.Stages)).
		Dur("duration", m.Duration()).
		Msg("Pipeline run complete")
	return m, nil
}

// ReadManifest loads the manifest of the last run.
func (p *Pipeline) ReadManifest() (*Manifest, error) {
	var m Manifest
	if err := artifacts.ReadYAML(p.store.Path(constants.StageGold, constants.ManifestFile), &m); err != nil {
		return nil, err
	}
	return &m, nil
}
