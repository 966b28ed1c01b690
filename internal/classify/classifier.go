// Package classify assigns a conversational stage to an inbound reply using
// fixed pattern families plus the negation detector.
package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/introflow/replybrain/internal/model"
	"github.com/introflow/replybrain/internal/negation"
)

// compiledFamily holds one family's alternatives compiled to regexes.
type compiledFamily struct {
	stage    model.Stage
	signal   string
	patterns []*regexp.Regexp
}

func (f compiledFamily) matches(text string) bool {
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Classifier evaluates inbound replies against compiled pattern families.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	hardStops  []compiledFamily
	candidates map[model.Stage]compiledFamily
	okTrap     *regexp.Regexp
}

// New compiles the given families into a Classifier. Families must cover all
// four hard-stop stages and all seven precedence stages; missing or
// uncompilable entries are construction errors, never runtime ones.
func New(families []Family) (*Classifier, error) {
	c := &Classifier{
		candidates: make(map[model.Stage]compiledFamily, len(model.Precedence)),
		okTrap:     regexp.MustCompile(okTrapPattern),
	}

	byStage := make(map[model.Stage]compiledFamily, len(families))
	for _, f := range families {
		cf := compiledFamily{stage: f.Stage, signal: f.Signal}
		for _, p := range f.Patterns {
			if !strings.HasPrefix(p, "(?i)") {
				p = "(?i)" + p
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("failed to compile %s pattern: %w", f.Stage, err)
			}
			cf.patterns = append(cf.patterns, re)
		}
		byStage[f.Stage] = cf
	}

	for _, stage := range model.HardStopOrder {
		cf, ok := byStage[stage]
		if !ok {
			return nil, fmt.Errorf("missing pattern family for hard-stop stage %s", stage)
		}
		c.hardStops = append(c.hardStops, cf)
	}
	for _, stage := range model.Precedence {
		cf, ok := byStage[stage]
		if !ok {
			return nil, fmt.Errorf("missing pattern family for stage %s", stage)
		}
		c.candidates[stage] = cf
	}

	return c, nil
}

// NewDefault compiles the built-in families. The built-in tables are fixed
// data, so a compile failure here is a programming error.
func NewDefault() *Classifier {
	c, err := New(DefaultFamilies())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify assigns a primary stage and any secondary stages to an inbound
// reply. It never fails: unmatched input classifies as UNKNOWN.
func (c *Classifier) Classify(inbound string) model.ClassificationResult {
	text := normalize(inbound)

	// Hard-stops first, in fixed order. A match ends classification with no
	// secondary stages.
	for _, hs := range c.hardStops {
		if hs.matches(text) {
			return model.ClassificationResult{
				Primary: hs.stage,
				Signals: []string{hs.signal},
			}
		}
	}

	// Negated positive intent. A strong disclaimer alongside it is a refusal
	// in its own right.
	negated := negation.HasNegatedIntent(text, positiveIntentPhrases)
	if negated && containsAny(text, strongDisclaimers) {
		return model.ClassificationResult{
			Primary:          model.StageNegative,
			Signals:          []string{"negated_interest"},
			NegationDetected: true,
		}
	}

	// The OK trap: "not ok"/"not sure" reads as refusal unless confusion
	// wording explains it ("not sure what you mean").
	confusion := c.candidates[model.StageConfusion]
	if c.okTrap.MatchString(text) && !confusion.matches(text) {
		return model.ClassificationResult{
			Primary:          model.StageNegative,
			Signals:          []string{"negated_ok"},
			NegationDetected: negated,
		}
	}

	// Collect matching candidates, lowest precedence rank first. INTEREST
	// only counts when its wording was not negated.
	var matched []model.Stage
	for stage, cf := range c.candidates {
		if stage == model.StageInterest && negated {
			continue
		}
		if cf.matches(text) {
			matched = append(matched, stage)
		}
	}

	if len(matched) == 0 {
		return model.ClassificationResult{
			Primary:          model.StageUnknown,
			Signals:          []string{"no_match"},
			NegationDetected: negated,
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PrecedenceRank() < matched[j].PrecedenceRank()
	})
	signals := make([]string, len(matched))
	for i, stage := range matched {
		signals[i] = c.candidates[stage].signal
	}

	return model.ClassificationResult{
		Primary:          matched[0],
		Secondary:        matched[1:],
		Signals:          signals,
		NegationDetected: negated,
	}
}

// Families returns the classifier's families as inspectable data, hard-stops
// first in check order, then candidates in precedence order.
func (c *Classifier) Families() []Family {
	out := make([]Family, 0, len(c.hardStops)+len(c.candidates))
	for _, cf := range c.hardStops {
		out = append(out, decompile(cf))
	}
	for _, stage := range model.Precedence {
		out = append(out, decompile(c.candidates[stage]))
	}
	return out
}

func decompile(cf compiledFamily) Family {
	f := Family{Stage: cf.stage, Signal: cf.signal}
	for _, re := range cf.patterns {
		f.Patterns = append(f.Patterns, strings.TrimPrefix(re.String(), "(?i)"))
	}
	return f
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// normalize lowercases, trims, and folds typographic apostrophes so the
// pattern tables only need ASCII wording.
func normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(text, "’", "'")))
}
