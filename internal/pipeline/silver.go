package pipeline

import (
	"context"
	"time"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// Silver normalizes every bronze table into a silver table of the same
// name. Rows without a usable name are dropped and counted. Silver tables
// without a bronze counterpart are removed.
func (p *Pipeline) Silver(ctx context.Context) (*StageResult, error) {
	start := time.Now()
	ctx = logging.WithStage(ctx, constants.StageSilver)
	logger := logging.FromContext(ctx)
	result := newStageResult(constants.StageSilver)

	files, err := p.store.List(constants.StageBronze)
	if err != nil {
		return nil, errors.NewStageError(constants.StageSilver, p.store.Dir(constants.StageBronze), err)
	}
	if len(files) == 0 {
		return nil, errors.NoInput(constants.StageSilver, p.store.Dir(constants.StageBronze))
	}

	for _, in := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := artifacts.ReadTable(in)
		if err != nil {
			return nil, errors.NewStageError(constants.StageSilver, in, err)
		}

		normalized := p.normalizer.Table(table)
		out := p.store.TablePath(constants.StageSilver, table.ID)
		if err := artifacts.WriteSilver(out, normalized.Records); err != nil {
			return nil, errors.NewStageError(constants.StageSilver, out, err)
		}

		result.Inputs = append(result.Inputs, in)
		result.Output = append(result.Output, out)
		result.Rows += len(normalized.Records)
		result.Dropped += normalized.Dropped

		columns := make(map[string]any, len(normalized.Resolution))
		for field, col := range normalized.Resolution {
			columns[string(field)] = col
		}
		logging.FromContext(logging.WithTable(ctx, table.ID)).Info().
			Int("rows", len(normalized.Records)).
			Int("dropped", normalized.Dropped).
			Fields(columns).
			Str("path", out).
			Msg("Wrote silver table")
	}

	removed, err := p.store.Prune(constants.StageSilver, result.Output)
	if err != nil {
		return nil, errors.NewStageError(constants.StageSilver, p.store.Dir(constants.StageSilver), err)
	}
	for _, path := range removed {
		logger.Info().Str("path", path).Msg("Removed stale silver table")
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("rows", result.Rows).
		Int("dropped", result.Dropped).
		Dur("duration", result.Duration).
		Msg("Silver complete")
	return result, nil
}
