package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// Bronze fetches every source and writes one bronze table per raw table.
// A failing source is logged and skipped; the stage fails only when no
// source produced a table. When every known source ran and succeeded,
// bronze tables not written by this run are removed.
func (p *Pipeline) Bronze(ctx context.Context) (*StageResult, error) {
	start := time.Now()
	ctx = logging.WithStage(ctx, constants.StageBronze)
	logger := logging.FromContext(ctx)
	result := newStageResult(constants.StageBronze)

	if len(p.sources) == 0 {
		return nil, errors.NoInput(constants.StageBronze, "")
	}

	var failures []error
	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Inputs = append(result.Inputs, src.ID().String())
		srcLogger := logging.FromContext(logging.WithSource(ctx, src.ID().String()))

		tables, err := src.Fetch(ctx)
		if err != nil {
			srcLogger.Warn().Err(err).Msg("Source failed, skipping")
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", src.ID(), err))
			failures = append(failures, err)
			continue
		}

		for _, table := range tables {
			path := p.store.TablePath(constants.StageBronze, table.ID)
			if err := artifacts.WriteTable(path, table); err != nil {
				return nil, errors.NewStageError(constants.StageBronze, path, err)
			}
			result.Rows += len(table.Rows)
			result.Output = append(result.Output, path)
			srcLogger.Info().
				Str("table", table.ID).
				Int("rows", len(table.Rows)).
				Str("path", path).
				Msg("Wrote bronze table")
		}
	}

	if len(result.Output) == 0 {
		dir := p.store.Dir(constants.StageBronze)
		if len(failures) == 0 {
			return nil, errors.NoInput(constants.StageBronze, dir)
		}
		return nil, errors.NewStageError(constants.StageBronze, dir,
			fmt.Errorf("%w: %w", errors.ErrNoInput, errors.Join(failures...)))
	}

	// Tables from a failing or skipped source are kept until it succeeds again.
	if len(failures) == 0 && p.coversAllSources() {
		removed, err := p.store.Prune(constants.StageBronze, result.Output)
		if err != nil {
			return nil, errors.NewStageError(constants.StageBronze, p.store.Dir(constants.StageBronze), err)
		}
		for _, path := range removed {
			logger.Info().Str("path", path).Msg("Removed stale bronze table")
		}
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("rows", result.Rows).
		Int("tables", len(result.Output)).
		Int("failed_sources", len(failures)).
		Dur("duration", result.Duration).
		Msg("Bronze complete")
	return result, nil
}

func (p *Pipeline) coversAllSources() bool {
	ran := make(map[sources.ID]bool, len(p.sources))
	for _, src := range p.sources {
		ran[src.ID()] = true
	}
	for _, id := range sources.IDs() {
		if !ran[id] {
			return false
		}
	}
	return true
}
