package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snowsecure/fieldwise/internal/agreement"
	"github.com/snowsecure/fieldwise/internal/fieldval"
)

// Corpus defines a test corpus of intake documents.
type Corpus struct {
	// Name uniquely identifies this corpus; used as the golden file name.
	Name string `yaml:"name"`

	// Description explains what this corpus exercises.
	Description string `yaml:"description"`

	// Documents are the intake documents in snapshot order.
	Documents []DocumentSpec `yaml:"documents"`

	// Expect holds the exclusion tallies the aggregator must report.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// DocumentSpec describes one document in a corpus.
type DocumentSpec struct {
	ID        string         `yaml:"id"`
	Status    string         `yaml:"status"`
	Category  string         `yaml:"category"`
	Override  *OverrideSpec  `yaml:"override,omitempty"`
	Extracted map[string]any `yaml:"extracted,omitempty"`
	Edited    map[string]any `yaml:"edited,omitempty"`
}

// OverrideSpec describes a reviewer-assigned document type.
type OverrideSpec struct {
	ID       string `yaml:"id"`
	IsCustom bool   `yaml:"is_custom,omitempty"`
}

// ExpectClause holds expected aggregate tallies.
type ExpectClause struct {
	Reviewed     int `yaml:"reviewed"`
	Reclassified int `yaml:"reclassified"`
}

// Load reads a corpus from a YAML file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var corpus Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	if corpus.Name == "" {
		return nil, fmt.Errorf("corpus name is required")
	}
	for i, doc := range corpus.Documents {
		if doc.ID == "" {
			return nil, fmt.Errorf("document %d: id is required", i)
		}
	}

	return &corpus, nil
}

// AgreementDocuments converts the corpus into the engine's document model,
// mapping YAML values through the fieldval tagged representation.
func (c *Corpus) AgreementDocuments() []*agreement.Document {
	docs := make([]*agreement.Document, 0, len(c.Documents))
	for _, spec := range c.Documents {
		doc := &agreement.Document{
			ID:             spec.ID,
			Status:         spec.Status,
			Classification: agreement.Classification{Category: spec.Category},
			ExtractedData:  toFieldMap(spec.Extracted),
			EditedFields:   toFieldMap(spec.Edited),
		}
		if spec.Override != nil {
			doc.CategoryOverride = &agreement.CategoryOverride{
				ID:       spec.Override.ID,
				IsCustom: spec.Override.IsCustom,
			}
		}
		docs = append(docs, doc)
	}
	return docs
}

func toFieldMap(m map[string]any) agreement.FieldMap {
	if m == nil {
		return nil
	}
	fields := make(agreement.FieldMap, len(m))
	for k, v := range m {
		fields[k] = fieldval.FromAny(v)
	}
	return fields
}
