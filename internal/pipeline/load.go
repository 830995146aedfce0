package pipeline

import (
	"context"
	"time"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// Load pushes the gold table into the database. Without a loader the
// stage is reported as skipped.
func (p *Pipeline) Load(ctx context.Context) (*StageResult, error) {
	start := time.Now()
	ctx = logging.WithStage(ctx, constants.StageLoad)
	logger := logging.FromContext(ctx)
	result := newStageResult(constants.StageLoad)

	in := p.store.Path(constants.StageGold, constants.GoldToolsFile)
	result.Inputs = append(result.Inputs, in)

	if p.loader == nil {
		result.Skipped = true
		logger.Info().Msg("No database configured, skipping load")
		return result, nil
	}

	tools, err := artifacts.ReadGold(in)
	if err != nil {
		return nil, errors.NewStageError(constants.StageLoad, in, err)
	}

	loaded, err := p.loader.Load(ctx, tools)
	if err != nil {
		return nil, errors.NewStageError(constants.StageLoad, in, err)
	}

	result.Rows = int(loaded.Staged)
	result.Output = append(result.Output, "tools")
	result.Duration = time.Since(start)
	logger.Info().
		Int("rows", result.Rows).
		Int64("total", loaded.Total).
		Dur("duration", result.Duration).
		Msg("Load complete")
	return result, nil
}
