package orchestrator

import (
	"context"
	"sort"
	"strings"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/trace"
)

// Cross-chunk deduplication is stricter than intra-run: candidates from
// independent chunks should only merge as near-duplicates.
const DefaultMergeSimilarityThreshold = 0.8

// merge combines per-chunk results into one digest. Summaries concatenate
// in sequence order and are rewritten by a meta-summarize call; item lists
// deduplicate at the cross-chunk threshold; content type is a majority
// vote. Depends only on sequence numbers, never on completion order.
func (o *Orchestrator) merge(ctx context.Context, results []digest.ChunkResult, skipped int) (digest.Digest, error) {
	sort.Slice(results, func(i, j int) bool { return results[i].Seq < results[j].Seq })

	var (
		summaries []string
		tasks     []digest.TaskItem
		reminders []digest.ReminderItem
		titles    []digest.TitleItem
		confSum   float64
	)
	for _, r := range results {
		if s := strings.TrimSpace(r.Summary); s != "" {
			summaries = append(summaries, s)
		}
		tasks = append(tasks, r.Tasks...)
		reminders = append(reminders, r.Reminders...)
		titles = append(titles, r.Titles...)
		confSum += r.Confidence
	}

	summary := strings.Join(summaries, "\n\n")
	if len(summaries) > 1 {
		meta, err := o.engine.MetaSummarize(ctx, summary)
		if err != nil || strings.TrimSpace(meta) == "" {
			// Non-fatal: a fragment list beats no summary.
			trace.Logger(ctx).Warn("meta-summarize failed, keeping concatenated summaries", "error", err)
		} else {
			summary = meta
		}
	}

	threshold := o.cfg.MergeSimilarityThreshold
	return digest.Digest{
		Summary:     summary,
		Tasks:       o.extractor.ConsolidateTasks(tasks, threshold),
		Reminders:   o.extractor.ConsolidateReminders(reminders, threshold),
		Titles:      o.extractor.ConsolidateTitles(titles, threshold),
		ContentType: majorityType(results),
		Diagnostics: digest.Diagnostics{
			Chunks:        len(results) + skipped,
			SkippedChunks: skipped,
			Confidence:    confSum / float64(len(results)),
		},
	}, nil
}

// majorityType picks the most common chunk content type; ties break by
// first-seen order across sequence-sorted results.
func majorityType(results []digest.ChunkResult) digest.ContentType {
	counts := make(map[digest.ContentType]int)
	var order []digest.ContentType
	for _, r := range results {
		if counts[r.ContentType] == 0 {
			order = append(order, r.ContentType)
		}
		counts[r.ContentType]++
	}

	best := digest.ContentGeneral
	bestCount := 0
	for _, ct := range order {
		if counts[ct] > bestCount {
			best, bestCount = ct, counts[ct]
		}
	}
	return best
}
