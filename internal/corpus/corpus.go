// Package corpus manages the labeled reply corpus used to regression-test
// classification accuracy: loading labeled replies from YAML, persisting them
// in SQLite, and evaluating the engine against them.
package corpus

import (
	"fmt"
	"os"
	"time"

	"github.com/introflow/replybrain/internal/common"
	"github.com/introflow/replybrain/internal/model"
	"gopkg.in/yaml.v3"
)

// LabeledReply is one real-world reply with its hand-labeled stage.
type LabeledReply struct {
	CreatedAt time.Time   `yaml:"-"`
	Text      string      `yaml:"text"`
	Stage     model.Stage `yaml:"stage"`
	Note      string      `yaml:"note,omitempty"`
	ID        int64       `yaml:"-"`
}

// corpusFile is the on-disk YAML shape: a replies list of text/stage pairs.
type corpusFile struct {
	Replies []LabeledReply `yaml:"replies"`
}

// LoadFile reads labeled replies from a YAML file. Replies with empty text or
// an unknown stage label are rejected up front.
func LoadFile(path string) ([]LabeledReply, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, common.NewUserError("corpus file is not valid YAML", err)
	}
	if len(file.Replies) == 0 {
		return nil, common.ErrEmptyCorpus
	}

	seen := make(map[string]int, len(file.Replies))
	for i, r := range file.Replies {
		if r.Text == "" {
			return nil, common.NewUserError(fmt.Sprintf("corpus entry %d has empty text", i+1), nil)
		}
		if !r.Stage.Valid() {
			return nil, common.NewUserError(
				fmt.Sprintf("corpus entry %d has unknown stage %q", i+1, r.Stage), nil)
		}
		// Duplicate texts in one file usually mean conflicting labels; the
		// store would silently keep only the first.
		if prev, ok := seen[r.Text]; ok {
			return nil, common.NewUserError(
				fmt.Sprintf("corpus entry %d duplicates entry %d (%q)", i+1, prev, r.Text),
				common.ErrDuplicateEntry)
		}
		seen[r.Text] = i + 1
	}

	return file.Replies, nil
}
