package pipeline

import (
	"context"
	"time"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/differ"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/provenance"
	"github.com/agentstation/toolmap/pkg/reconciler"
	"github.com/agentstation/toolmap/pkg/records"
)

// Gold merges all silver tables into the deduplicated gold table. With
// provenance enabled it also records which source supplied each field.
func (p *Pipeline) Gold(ctx context.Context) (*StageResult, error) {
	start := time.Now()
	ctx = logging.WithStage(ctx, constants.StageGold)
	logger := logging.FromContext(ctx)
	result := newStageResult(constants.StageGold)

	files, err := p.store.List(constants.StageSilver)
	if err != nil {
		return nil, errors.NewStageError(constants.StageGold, p.store.Dir(constants.StageSilver), err)
	}
	if len(files) == 0 {
		return nil, errors.NoInput(constants.StageGold, p.store.Dir(constants.StageSilver))
	}

	var silver []records.Silver
	for _, in := range files {
		recs, err := artifacts.ReadSilver(in)
		if err != nil {
			return nil, errors.NewStageError(constants.StageGold, in, err)
		}
		silver = append(silver, recs...)
		result.Inputs = append(result.Inputs, in)
	}
	if len(silver) == 0 {
		return nil, errors.NoInput(constants.StageGold, p.store.Dir(constants.StageSilver))
	}

	opts := append([]reconciler.Option{reconciler.WithProvenance(p.provenance)}, p.reconcile...)
	rec, err := reconciler.New(opts...)
	if err != nil {
		return nil, errors.NewStageError(constants.StageGold, "", err)
	}
	merged, err := rec.Records(ctx, silver)
	if err != nil {
		return nil, errors.NewStageError(constants.StageGold, "", err)
	}

	out := p.store.Path(constants.StageGold, constants.GoldToolsFile)
	previous, err := artifacts.ReadGold(out)
	if err != nil && !errors.IsNotFound(err) {
		logger.Warn().Err(err).Str("path", out).Msg("Previous gold table unreadable, diffing against an empty catalog")
	}
	changes := differ.New().Tools(previous, merged.Records)

	if err := artifacts.WriteGold(out, merged.Records); err != nil {
		return nil, errors.NewStageError(constants.StageGold, out, err)
	}
	result.Output = append(result.Output, out)

	changesPath := p.store.Path(constants.StageGold, constants.GoldChangesFile)
	if err := artifacts.WriteYAML(changesPath, changes); err != nil {
		return nil, errors.NewStageError(constants.StageGold, changesPath, err)
	}
	result.Output = append(result.Output, changesPath)
	result.Changes = &changes.Summary

	if p.provenance {
		provPath := p.store.Path(constants.StageGold, constants.GoldProvenanceFile)
		if err := artifacts.WriteYAML(provPath, provenance.NewFile(merged.Provenance)); err != nil {
			return nil, errors.NewStageError(constants.StageGold, provPath, err)
		}
		result.Output = append(result.Output, provPath)
	}

	stats := merged.Metadata.Stats
	result.Rows = len(merged.Records)
	result.Dropped = stats.DuplicatesCollapsed
	result.Duration = time.Since(start)
	logger.Info().
		Int("records_in", stats.RecordsIn).
		Int("rows", result.Rows).
		Int("url_groups", stats.URLGroups).
		Int("fallback_groups", stats.FallbackGroups).
		Int("conflicts", stats.ConflictsResolved).
		Stringer("changes", changes.Summary).
		Str("path", out).
		Dur("duration", result.Duration).
		Msg(merged.Summary())
	return result, nil
}
