package corpus

import (
	"context"

	"github.com/introflow/replybrain/internal/engine"
	"github.com/introflow/replybrain/internal/model"
)

// AccuracyFloor is the minimum acceptable overall primary-stage accuracy.
const AccuracyFloor = 0.90

// StageScore tallies one stage's results in an evaluation.
type StageScore struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Miss records one misclassified reply.
type Miss struct {
	Text string
	Want model.Stage
	Got  model.Stage
}

// Report is the outcome of evaluating the engine against a labeled corpus.
type Report struct {
	PerStage map[model.Stage]StageScore
	Misses   []Miss
	Total    int
	Correct  int
}

// Accuracy returns the overall primary-stage accuracy, 0 for an empty run.
func (r Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Passing reports whether the run meets the accuracy floor.
func (r Report) Passing() bool {
	return r.Total > 0 && r.Accuracy() >= AccuracyFloor
}

// Evaluate classifies every labeled reply and tallies primary-stage accuracy.
// The optional progress callback is invoked after each reply with the count
// processed so far. Evaluation stops early if ctx is canceled, returning the
// partial report.
func Evaluate(ctx context.Context, eng *engine.Engine, replies []LabeledReply, progress func(done int)) Report {
	report := Report{
		PerStage: make(map[model.Stage]StageScore),
	}

	for i, reply := range replies {
		select {
		case <-ctx.Done():
			return report
		default:
		}

		got := eng.Classify(reply.Text).Primary
		score := report.PerStage[reply.Stage]
		score.Total++
		report.Total++
		if got == reply.Stage {
			score.Correct++
			report.Correct++
		} else {
			report.Misses = append(report.Misses, Miss{Text: reply.Text, Want: reply.Stage, Got: got})
		}
		report.PerStage[reply.Stage] = score

		if progress != nil {
			progress(i + 1)
		}
	}

	return report
}
