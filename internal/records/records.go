// ABOUTME: Drug-mechanism and drug-drug interaction passages for the RAG index
// ABOUTME: Provides the bundled dataset and loaders for JSON/YAML record files
package records

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one passage to embed plus the metadata stored beside its vector.
// Metadata has no fixed schema: mechanism facts and DDI facts carry different keys.
type Record struct {
	Text     string            `json:"text" yaml:"text"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

var bundled = []Record{
	{
		Text:     "Warfarin, a vitamin K antagonist, is primarily metabolized by CYP2C9. Genetic variations in CYP2C9 can significantly alter warfarin metabolism, requiring individualized dosing.",
		Metadata: map[string]string{"drug_a": "Warfarin", "mechanism_type": "Metabolism", "enzyme": "CYP2C9"},
	},
	{
		Text:     "Fluconazole is a potent inhibitor of cytochrome P450 2C9 (CYP2C9) and 2C19 (CYP2C19) enzymes. This inhibition can lead to increased plasma concentrations of co-administered drugs metabolized by these enzymes.",
		Metadata: map[string]string{"drug_a": "Fluconazole", "mechanism_type": "Enzyme Inhibition", "enzyme": "CYP2C9"},
	},
	{
		Text:     "The co-administration of fluconazole with warfarin can result in significant increases in warfarin's anticoagulant effect, leading to an elevated risk of bleeding. Close monitoring of International Normalized Ratio (INR) is crucial.",
		Metadata: map[string]string{"drug_a": "Warfarin", "drug_b": "Fluconazole", "interaction_type": "DDI", "clinical_implication": "Increased Bleeding Risk"},
	},
	{
		Text:     "Ondansetron is known to prolong the QT interval in a dose-dependent manner. This effect can be additive when co-administered with other drugs that also prolong the QT interval.",
		Metadata: map[string]string{"drug_a": "Ondansetron", "mechanism_type": "QT Prolongation", "target_pathway": "Cardiac Ion Channels"},
	},
	{
		Text:     "Dofetilide is an antiarrhythmic drug with a narrow therapeutic index that primarily prolongs the QT interval. Concomitant use with other QT-prolonging agents can lead to life-threatening ventricular arrhythmias, including Torsades de Pointes.",
		Metadata: map[string]string{"drug_a": "Dofetilide", "mechanism_type": "QT Prolongation", "target_pathway": "Cardiac Ion Channels"},
	},
	{
		Text:     "The concurrent use of Ondansetron and Dofetilide is generally contraindicated due to the additive risk of severe QT interval prolongation and the potential for Torsades de Pointes, a life-threatening ventricular arrhythmia.",
		Metadata: map[string]string{"drug_a": "Ondansetron", "drug_b": "Dofetilide", "interaction_type": "DDI", "clinical_implication": "Risk of Torsades de Pointes"},
	},
}

// Default returns a copy of the bundled records in authoring order
func Default() []Record {
	out := make([]Record, len(bundled))
	for i, r := range bundled {
		out[i] = Record{Text: r.Text, Metadata: maps.Clone(r.Metadata)}
	}
	return out
}

// Load reads a list of records from a .json, .yaml or .yml file
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	var recs []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &recs)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &recs)
	default:
		return nil, fmt.Errorf("unsupported records file extension %q (want .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing records file %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("records file %s contains no records", path)
	}
	return recs, nil
}
