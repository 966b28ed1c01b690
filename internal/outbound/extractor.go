// Package outbound parses the operator's own prior message into an
// OutboundFrame: who the provider is, who they serve, what hurts, and what
// was being offered. It is independent of inbound classification.
package outbound

import (
	"regexp"
	"strings"

	"github.com/introflow/replybrain/internal/model"
)

// audienceTemplate is one provider/audience extraction template. Templates
// are tried in order and the first match wins. When withProvider is set the
// regex captures (provider, audience); otherwise it captures (audience).
type audienceTemplate struct {
	re           *regexp.Regexp
	withProvider bool
}

// clauseEnd terminates an audience capture before a relative clause or the
// next sentence, so "helps RIAs who can't hire" yields "RIAs", not the whole
// clause.
const clauseEnd = `(?:[.,;!?]| who | that | - |$)`

var audienceTemplates = []audienceTemplate{
	{re: regexp.MustCompile(`(?i)noticed\s+(.+?)\s+helps\s+(.+?)` + clauseEnd), withProvider: true},
	{re: regexp.MustCompile(`(?i)\bhelps\s+(.+?)` + clauseEnd)},
	{re: regexp.MustCompile(`(?i)\bworks? with\s+(.+?)` + clauseEnd)},
	{re: regexp.MustCompile(`(?i)\bfor\s+(.+?)` + clauseEnd)},
	{re: regexp.MustCompile(`(?i)\bsupports?\s+(.+?)` + clauseEnd)},
	{re: regexp.MustCompile(`(?i)\bspecializ(?:es|ing)?\s+in\s+(.+?)` + clauseEnd)},
}

// painTemplates capture the relative clause describing what the audience
// struggles with. The capture starts at the verb so the composer can repair
// the missing subject. First match wins.
var painTemplates = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bknow (?:a few|some|several|a couple)(?: \w+){0,3}? who\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\b(?:who|that)\s+((?:can'?t|cannot|struggles?|struggling|loses?|losing|wastes?|wasting|needs?|are)\b[^.!?\n]*)`),
}

var (
	offerIntroRe = regexp.MustCompile(`(?i)worth (?:an? )?intro|open to (?:an? )?intro|make (?:an |the )?intro|intro'?ing|worth connecting|happy to (?:connect|intro)`)
	offerCallRe  = regexp.MustCompile(`(?i)worth a (?:quick|short) (?:call|chat)|quick call|can i send (?:over )?(?:details|more)|15 minutes|hop on a (?:quick )?call`)
	offerInfoRe  = regexp.MustCompile(`(?i)send (?:you )?(?:some |more )?(?:info|details|an? (?:deck|overview|one[- ]pager))|details below|more info below`)
)

// ExtractFrame parses an outbound message into an OutboundFrame. It never
// fails: fields that cannot be extracted stay empty and simply earn no score.
func ExtractFrame(outboundText string) model.OutboundFrame {
	frame := model.OutboundFrame{
		Raw:   outboundText,
		Offer: detectOffer(outboundText),
	}

	for _, tmpl := range audienceTemplates {
		m := tmpl.re.FindStringSubmatch(outboundText)
		if m == nil {
			continue
		}
		if tmpl.withProvider {
			frame.Provider = cleanCapture(m[1])
			frame.Audience = cleanCapture(m[2])
		} else {
			frame.Audience = cleanCapture(m[1])
		}
		break
	}

	for _, re := range painTemplates {
		if m := re.FindStringSubmatch(outboundText); m != nil {
			frame.Pain = cleanCapture(m[1])
			break
		}
	}

	if frame.HasProvider() {
		frame.Score += model.ScoreProvider
	}
	if frame.HasAudience() {
		frame.Score += model.ScoreAudience
	}
	if frame.HasPain() {
		frame.Score += model.ScorePain
	}

	return frame
}

// detectOffer keys the offer type off fixed phrase families. Intro wins over
// call when both appear because routing an intro is the product's default
// ask.
func detectOffer(text string) model.OfferType {
	switch {
	case offerIntroRe.MatchString(text):
		return model.OfferIntro
	case offerCallRe.MatchString(text):
		return model.OfferCall
	case offerInfoRe.MatchString(text):
		return model.OfferInfo
	default:
		return model.OfferUnknown
	}
}

// cleanCapture trims whitespace and stray trailing punctuation from a regex
// capture.
func cleanCapture(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,;:-")
}
