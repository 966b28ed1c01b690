package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/introflow/replybrain/internal/common"
	"gopkg.in/yaml.v3"
)

// overridesFile is the on-disk shape of a pattern overrides file:
//
//	families:
//	  scheduling:
//	    - "loop in my assistant"
//	  negative:
//	    - "circle back never"
//
// Keys are lowercase stage names; values are extra regex alternatives
// appended to the built-in family.
type overridesFile struct {
	Families map[string][]string `yaml:"families"`
}

// LoadOverrides reads a YAML overrides file and returns the default families
// with the file's extra patterns appended. Unknown family names and invalid
// regexes are rejected up front so a bad file can never reach the classifier.
func LoadOverrides(path string) ([]Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern overrides: %w", err)
	}

	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, common.NewUserError("pattern overrides file is not valid YAML", err)
	}
	if len(file.Families) == 0 {
		return nil, common.NewUserError(
			"pattern overrides file has no families", common.ErrMissingConfig)
	}

	families := DefaultFamilies()
	byName := make(map[string]int, len(families))
	for i, f := range families {
		byName[strings.ToLower(string(f.Stage))] = i
	}

	for name, patterns := range file.Families {
		idx, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, common.NewUserError(
				fmt.Sprintf("pattern overrides name unknown family %q", name), nil)
		}
		for _, p := range patterns {
			if _, err := regexp.Compile("(?i)" + p); err != nil {
				return nil, common.NewUserError(
					fmt.Sprintf("invalid pattern %q for family %q", p, name), err)
			}
		}
		families[idx].Patterns = append(families[idx].Patterns, patterns...)
	}

	return families, nil
}
