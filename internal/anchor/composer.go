// Package anchor composes reply-template fragments from an extracted
// outbound frame, with sanitization and a forbidden-pattern guard between
// the regex captures and any human-facing text.
package anchor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/introflow/replybrain/internal/model"
)

// minOutboundLength is the shortest raw outbound message worth composing
// from. Anything shorter gets the fixed fallback pack.
const minOutboundLength = 20

// Word caps for composed fragments.
const (
	maxLabelWords     = 12
	maxPainLabelWords = 6
	maxSummaryWords   = 18
)

// Fixed fallback fragments. These must themselves pass the forbidden guard.
const (
	fallbackLabel   = "a few operators in my network"
	fallbackPain    = "They're dealing with the usual growth bottlenecks."
	fallbackSummary = "I reached out about a quick fit check for a warm intro."
)

// offerSentences keys the offer sentence off the extracted offer type. The
// intro sentence doubles as the conservative default for anything the
// extractor could not identify.
var offerSentences = map[model.OfferType]string{
	model.OfferIntro: "If it looks like a fit after a short call, I'll route the intro directly.",
	model.OfferCall:  "Open to a quick call to see whether it makes sense.",
}

var (
	// fragmentMarkerRe flags label candidates that are dependent clauses
	// rather than noun phrases. A label like "are losing two deals a month"
	// reads as a broken sentence in a template slot.
	fragmentMarkerRe = regexp.MustCompile(`(?i)\b(?:when|because|who|that|are|lose|loses|losing|struggle|struggles|struggling|waste|wastes|wasting)\b`)

	// leadingDeterminerRe strips articles and determiners off a label.
	leadingDeterminerRe = regexp.MustCompile(`(?i)^(?:a|an|the|some|most|many|all|our|their|these|those)\s+`)

	// trailingDashRe drops a trailing clause after a dash.
	trailingDashRe = regexp.MustCompile(`\s+[-\x{2013}\x{2014}].*$`)

	// bareVerbRe marks a pain clause that starts verb-first and needs a
	// subject.
	bareVerbRe = regexp.MustCompile(`(?i)^(?:lose|loses|losing|waste|wastes|wasting|struggle|struggles|struggling|can'?t|cannot|need|needs|have|are)\b`)

	// subjectPronounRe marks a pain clause that already carries a subject.
	subjectPronounRe = regexp.MustCompile(`(?i)^(?:they|they're|we|we're|he|she|it|i|you)\b`)

	// Double-subject repairs for clauses that already half-carried one.
	doubleTheyRe     = regexp.MustCompile(`(?i)^they they\b`)
	doubleTheyAposRe = regexp.MustCompile(`(?i)^they're they\b`)
)

// Compose builds an AnchorPack from an outbound frame. It is total: any
// frame, including an empty one, yields a well-formed pack. Degraded input
// degrades quality, never correctness.
func Compose(frame model.OutboundFrame) model.AnchorPack {
	if len(strings.TrimSpace(frame.Raw)) < minOutboundLength {
		return fallbackPack()
	}

	pack := model.AnchorPack{
		ProspectLabel:   prospectLabel(frame),
		PainSentence:    painSentence(frame.Pain),
		OfferSentence:   offerSentence(frame.Offer),
		OutboundSummary: outboundSummary(frame),
		Quality:         grade(frame),
		Extracted: model.ExtractedFlags{
			HasAudience: frame.HasAudience(),
			HasPain:     frame.HasPain(),
			HasProvider: frame.HasProvider(),
			HasOffer:    frame.Offer != model.OfferUnknown,
		},
	}

	// Last line of defense: anything matching a forbidden pattern reverts to
	// its fallback value. Offer sentences are fixed templates and never
	// checked.
	if isForbidden(pack.ProspectLabel) {
		pack.ProspectLabel = fallbackLabel
	}
	if isForbidden(pack.PainSentence) {
		pack.PainSentence = fallbackPain
	}
	if isForbidden(pack.OutboundSummary) {
		pack.OutboundSummary = fallbackSummary
	}

	return pack
}

func fallbackPack() model.AnchorPack {
	return model.AnchorPack{
		ProspectLabel:   fallbackLabel,
		PainSentence:    fallbackPain,
		OfferSentence:   offerSentence(model.OfferUnknown),
		OutboundSummary: fallbackSummary,
		Quality:         model.QualityFallback,
	}
}

// prospectLabel prefers the cleaned audience phrase, then a provider-derived
// phrase, then the first words of the pain clause. Whatever is chosen must
// survive the fragment-marker gate or the generic label is used instead.
func prospectLabel(frame model.OutboundFrame) string {
	var candidate string
	switch {
	case frame.HasAudience():
		candidate = cleanLabel(frame.Audience)
	case frame.HasProvider():
		candidate = fmt.Sprintf("the folks %s works with", frame.Provider)
	case frame.HasPain():
		candidate = truncateWords(frame.Pain, maxPainLabelWords)
	}

	if candidate == "" || fragmentMarkerRe.MatchString(candidate) {
		return fallbackLabel
	}
	return candidate
}

// cleanLabel strips leading determiners, drops any trailing dashed clause,
// and caps the label length.
func cleanLabel(audience string) string {
	label := strings.TrimSpace(audience)
	label = trailingDashRe.ReplaceAllString(label, "")
	label = leadingDeterminerRe.ReplaceAllString(label, "")
	return truncateWords(strings.TrimSpace(label), maxLabelWords)
}

// painSentence turns a captured pain clause into a full sentence: supply a
// subject when the capture starts verb-first, repair accidental double
// subjects, and terminate with a period.
func painSentence(pain string) string {
	clause := strings.TrimSpace(pain)
	if clause == "" {
		return fallbackPain
	}

	if bareVerbRe.MatchString(clause) {
		clause = "they " + clause
	}
	if !subjectPronounRe.MatchString(clause) {
		clause = "they're dealing with " + clause
	}
	clause = doubleTheyAposRe.ReplaceAllString(clause, "they're")
	clause = doubleTheyRe.ReplaceAllString(clause, "they")

	return ensurePeriod(capitalize(clause))
}

func offerSentence(offer model.OfferType) string {
	if s, ok := offerSentences[offer]; ok {
		return s
	}
	return offerSentences[model.OfferIntro]
}

// outboundSummary compresses whatever was extracted into one line.
func outboundSummary(frame model.OutboundFrame) string {
	var summary string
	switch {
	case frame.HasAudience() && frame.HasPain():
		summary = fmt.Sprintf("My note mentioned %s who %s", frame.Audience, frame.Pain)
	case frame.HasAudience():
		summary = fmt.Sprintf("My note was about %s", frame.Audience)
	case frame.HasPain():
		summary = fmt.Sprintf("My note was about folks who %s", frame.Pain)
	default:
		return fallbackSummary
	}
	return ensurePeriod(capitalize(truncateWords(summary, maxSummaryWords)))
}

func grade(frame model.OutboundFrame) model.AnchorQuality {
	switch {
	case frame.HasAudience() && frame.HasPain():
		return model.QualityGood
	case frame.HasAudience() || frame.HasPain() || frame.HasProvider():
		return model.QualityPartial
	default:
		return model.QualityFallback
	}
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func ensurePeriod(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
