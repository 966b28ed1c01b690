package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/introflow/replybrain/internal/corpus"
	"github.com/introflow/replybrain/internal/engine"
	"github.com/introflow/replybrain/internal/model"
)

const outboundNote = "Hey Sam - noticed Meridian Staffing helps home health agencies who can't fill shifts. " +
	"I know a few who struggle with the same thing. Worth an intro?"

func TestInterpret(t *testing.T) {
	eng := engine.NewDefault()

	got := eng.Interpret("when are you free this week?", outboundNote)

	assert.Equal(t, model.StageScheduling, got.Classification.Primary)
	assert.Equal(t, model.QualityGood, got.Anchors.Quality)
	assert.Equal(t, "scheduling/good", got.TemplateKey)
	assert.Equal(t, "home health agencies", got.Anchors.ProspectLabel)
}

func TestInterpretDegradedOutbound(t *testing.T) {
	eng := engine.NewDefault()

	got := eng.Interpret("what does this cost?", "thanks")

	assert.Equal(t, model.StagePricing, got.Classification.Primary)
	assert.Equal(t, model.QualityFallback, got.Anchors.Quality)
	assert.Equal(t, "pricing/fallback", got.TemplateKey)
}

func TestInterpretHardStop(t *testing.T) {
	eng := engine.NewDefault()

	got := eng.Interpret("please remove me from your list", outboundNote)

	assert.Equal(t, model.StageNegative, got.Classification.Primary)
	assert.Empty(t, got.Classification.Secondary)
	assert.Equal(t, "negative/good", got.TemplateKey)
}

func TestComposeMatchesExtractedFrame(t *testing.T) {
	eng := engine.NewDefault()

	frame := eng.ExtractFrame(outboundNote)
	pack := eng.Compose(outboundNote)

	require.True(t, frame.HasAudience())
	assert.Equal(t, frame.Audience, pack.ProspectLabel)
	assert.True(t, pack.Extracted.HasPain)
}

func TestInterpretDeterminism(t *testing.T) {
	eng := engine.NewDefault()

	first := eng.Interpret("is there a cost? also who are these people", outboundNote)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, eng.Interpret("is there a cost? also who are these people", outboundNote))
	}
}

func TestFamiliesExposed(t *testing.T) {
	families := engine.NewDefault().Families()

	require.NotEmpty(t, families)
	stages := make(map[model.Stage]bool)
	for _, f := range families {
		stages[f.Stage] = true
	}
	for _, stage := range model.HardStopOrder {
		assert.True(t, stages[stage], "missing hard stop %s", stage)
	}
	for _, stage := range model.Precedence {
		assert.True(t, stages[stage], "missing candidate %s", stage)
	}
}

// TestSeedCorpusRegression holds the default patterns to the labeled seed
// corpus. It fails when pattern edits drop overall accuracy below the floor.
func TestSeedCorpusRegression(t *testing.T) {
	replies, err := corpus.LoadFile("../corpus/testdata/seed_corpus.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, replies)

	report := corpus.Evaluate(context.Background(), engine.NewDefault(), replies, nil)

	require.Equal(t, len(replies), report.Total)
	for _, miss := range report.Misses {
		t.Logf("miss: %q want %s got %s", miss.Text, miss.Want, miss.Got)
	}
	assert.True(t, report.Passing(), "accuracy %.2f below floor %.2f", report.Accuracy(), corpus.AccuracyFloor)
}
