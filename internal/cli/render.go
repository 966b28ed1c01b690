package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/introflow/replybrain/internal/corpus"
	"github.com/introflow/replybrain/internal/engine"
	"github.com/introflow/replybrain/internal/model"
)

// RenderClassification renders a classification result for the terminal.
func RenderClassification(result model.ClassificationResult) string {
	var b strings.Builder

	b.WriteString(LabelStyle.Render("stage:"))
	b.WriteString(StageStyle.Render(string(result.Primary)))
	b.WriteString("\n")

	if len(result.Secondary) > 0 {
		secondary := make([]string, len(result.Secondary))
		for i, s := range result.Secondary {
			secondary[i] = string(s)
		}
		b.WriteString(LabelStyle.Render("secondary:"))
		b.WriteString(strings.Join(secondary, ", "))
		b.WriteString("\n")
	}

	if len(result.Signals) > 0 {
		b.WriteString(LabelStyle.Render("signals:"))
		b.WriteString(SubtleStyle.Render(strings.Join(result.Signals, ", ")))
		b.WriteString("\n")
	}

	if result.NegationDetected {
		b.WriteString(FormatWarning("negation detected"))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderAnchorPack renders an anchor pack for the terminal.
func RenderAnchorPack(pack model.AnchorPack) string {
	var b strings.Builder

	quality := SuccessStyle
	switch pack.Quality {
	case model.QualityPartial:
		quality = WarningStyle
	case model.QualityFallback:
		quality = ErrorStyle
	}

	b.WriteString(LabelStyle.Render("quality:"))
	b.WriteString(quality.Render(string(pack.Quality)))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("prospect:"))
	b.WriteString(pack.ProspectLabel)
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("pain:"))
	b.WriteString(pack.PainSentence)
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("offer:"))
	b.WriteString(pack.OfferSentence)
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("summary:"))
	b.WriteString(pack.OutboundSummary)
	b.WriteString("\n")

	return b.String()
}

// RenderInterpretation renders a combined classify+compose result.
func RenderInterpretation(interp engine.Interpretation) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Classification"))
	b.WriteString("\n")
	b.WriteString(RenderClassification(interp.Classification))
	b.WriteString(TitleStyle.Render("Anchors"))
	b.WriteString("\n")
	b.WriteString(RenderAnchorPack(interp.Anchors))
	b.WriteString(LabelStyle.Render("template:"))
	b.WriteString(StageStyle.Render(interp.TemplateKey))
	b.WriteString("\n")
	return b.String()
}

// RenderReport renders a corpus evaluation report with per-stage accuracy.
func RenderReport(report corpus.Report) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Corpus evaluation"))
	b.WriteString("\n")

	stages := make([]model.Stage, 0, len(report.PerStage))
	for stage := range report.PerStage {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })

	for _, stage := range stages {
		score := report.PerStage[stage]
		line := fmt.Sprintf("%-12s %3d/%-3d", stage, score.Correct, score.Total)
		if score.Correct == score.Total {
			b.WriteString(SuccessStyle.Render(line))
		} else {
			b.WriteString(WarningStyle.Render(line))
		}
		b.WriteString("\n")
	}

	for _, miss := range report.Misses {
		b.WriteString(SubtleStyle.Render(
			fmt.Sprintf("miss: %q want %s got %s", miss.Text, miss.Want, miss.Got)))
		b.WriteString("\n")
	}

	overall := fmt.Sprintf("overall: %d/%d (%.1f%%)", report.Correct, report.Total, report.Accuracy()*100)
	if report.Passing() {
		b.WriteString(FormatSuccess(overall))
	} else {
		b.WriteString(FormatError(overall + fmt.Sprintf(" (below %.0f%% floor)", corpus.AccuracyFloor*100)))
	}
	b.WriteString("\n")

	return b.String()
}
