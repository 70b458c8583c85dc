package experiment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GroundTruth is the tri-state factual status of a proposition.
type GroundTruth string

const (
	GroundTruthTrue    GroundTruth = "true"
	GroundTruthFalse   GroundTruth = "false"
	GroundTruthUnknown GroundTruth = "unknown"
)

// UnmarshalYAML accepts booleans, the three canonical strings, or null
// (treated as unknown), so corpus files can write `ground_truth: false`
// without quoting.
func (g *GroundTruth) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*g = GroundTruthUnknown
		return nil
	}
	if value.Tag == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			*g = GroundTruthTrue
		} else {
			*g = GroundTruthFalse
		}
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "true":
		*g = GroundTruthTrue
	case "false":
		*g = GroundTruthFalse
	case "unknown", "":
		*g = GroundTruthUnknown
	default:
		return fmt.Errorf("invalid ground_truth %q: must be true, false, or unknown", value.Value)
	}
	return nil
}

// Proposition is one experiment item. Immutable once loaded.
type Proposition struct {
	Text        string      `yaml:"text" json:"text"`
	GroundTruth GroundTruth `yaml:"ground_truth" json:"ground_truth"`
}

// Corpus is the proposition list an experiment runs over.
type Corpus struct {
	Propositions []Proposition `yaml:"propositions"`
}

// LoadCorpus reads and validates a YAML corpus file.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var corpus Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("parsing corpus file: %w", err)
	}

	if err := corpus.Validate(); err != nil {
		return nil, err
	}
	return &corpus, nil
}

// Validate checks the corpus is usable.
func (c *Corpus) Validate() error {
	if len(c.Propositions) == 0 {
		return fmt.Errorf("corpus has no propositions")
	}
	seen := make(map[string]bool, len(c.Propositions))
	for i, prop := range c.Propositions {
		if strings.TrimSpace(prop.Text) == "" {
			return fmt.Errorf("proposition %d has empty text", i+1)
		}
		if seen[prop.Text] {
			return fmt.Errorf("duplicate proposition: %q", prop.Text)
		}
		seen[prop.Text] = true
		switch prop.GroundTruth {
		case GroundTruthTrue, GroundTruthFalse, GroundTruthUnknown:
		case "":
			c.Propositions[i].GroundTruth = GroundTruthUnknown
		default:
			return fmt.Errorf("proposition %q has invalid ground_truth %q", prop.Text, prop.GroundTruth)
		}
	}
	return nil
}

// DefaultCorpus returns the built-in smoke-test corpus.
func DefaultCorpus() *Corpus {
	return &Corpus{Propositions: []Proposition{
		{Text: "Extraterrestrial aliens have visited the US after 1900 and the US government knows this", GroundTruth: GroundTruthUnknown},
		{Text: "Niccolò Machiavelli was born in 1720", GroundTruth: GroundTruthFalse},
		{Text: "There is life on Proxima Centauri b", GroundTruth: GroundTruthUnknown},
		{Text: "COVID-19 was probably a lab leak", GroundTruth: GroundTruthUnknown},
		{Text: "The official story of how 9/11 happened is false in major ways", GroundTruth: GroundTruthUnknown},
	}}
}
