// Package engine is the façade the hosting service calls: classification of
// inbound replies and anchor composition from outbound messages, behind two
// pure entry points.
package engine

import (
	"fmt"
	"strings"

	"github.com/introflow/replybrain/internal/anchor"
	"github.com/introflow/replybrain/internal/classify"
	"github.com/introflow/replybrain/internal/model"
	"github.com/introflow/replybrain/internal/outbound"
)

// Engine bundles a compiled classifier with the extractor and composer. It
// holds no mutable state and is safe for unbounded concurrent use; every
// method is a pure function of its arguments.
type Engine struct {
	classifier *classify.Classifier
}

// New builds an Engine around a compiled classifier.
func New(classifier *classify.Classifier) *Engine {
	return &Engine{classifier: classifier}
}

// NewDefault builds an Engine with the built-in pattern families.
func NewDefault() *Engine {
	return New(classify.NewDefault())
}

// Classify assigns a stage to an inbound reply.
func (e *Engine) Classify(inbound string) model.ClassificationResult {
	return e.classifier.Classify(inbound)
}

// ExtractFrame parses an outbound message into its structured facts.
func (e *Engine) ExtractFrame(outboundText string) model.OutboundFrame {
	return outbound.ExtractFrame(outboundText)
}

// Compose extracts an outbound frame and composes reply-template fragments
// from it.
func (e *Engine) Compose(outboundText string) model.AnchorPack {
	return anchor.Compose(outbound.ExtractFrame(outboundText))
}

// Interpretation pairs a classified inbound reply with the anchors composed
// from the matching outbound message, plus the reply template key a caller
// would select from the two.
type Interpretation struct {
	Classification model.ClassificationResult `json:"classification"`
	Anchors        model.AnchorPack           `json:"anchors"`
	TemplateKey    string                     `json:"template_key"`
}

// Interpret runs classification and composition over an inbound/outbound
// pair.
func (e *Engine) Interpret(inbound, outboundText string) Interpretation {
	result := e.Classify(inbound)
	pack := e.Compose(outboundText)
	return Interpretation{
		Classification: result,
		Anchors:        pack,
		TemplateKey:    templateKey(result.Primary, pack.Quality),
	}
}

// Families exposes the classifier's pattern tables as inspectable data.
func (e *Engine) Families() []classify.Family {
	return e.classifier.Families()
}

// templateKey names the reply template for a stage/quality pair, e.g.
// "scheduling/good".
func templateKey(stage model.Stage, quality model.AnchorQuality) string {
	return fmt.Sprintf("%s/%s", strings.ToLower(string(stage)), quality)
}
