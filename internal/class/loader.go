package class

import (
	"fmt"
	"os"
	"sort"

	"github.com/lawnchairsociety/heroforge/internal/stats"
	"gopkg.in/yaml.v3"
)

// ClassDefinitionYAML represents a class definition in the YAML file
type ClassDefinitionYAML struct {
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	HitDie         stats.Die `yaml:"hit_die"`
	Nonheroic      bool      `yaml:"nonheroic"`
	BABProgression []float64 `yaml:"bab_progression"`
	BABMode        string    `yaml:"bab_mode"`
	Defenses       Defenses  `yaml:"defenses"`
}

// ClassesConfig represents the structure of the classes.yaml file
type ClassesConfig struct {
	Classes map[string]ClassDefinitionYAML `yaml:"classes"`
}

// LoadClassesFromYAML loads class definitions from a YAML file
func LoadClassesFromYAML(filename string) (*ClassesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read classes file: %w", err)
	}
	return ParseClassesYAML(data)
}

// ParseClassesYAML parses class definitions from YAML bytes
func ParseClassesYAML(data []byte) (*ClassesConfig, error) {
	var config ClassesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse classes YAML: %w", err)
	}
	return &config, nil
}

// CreateDefinition converts a YAML definition into a Definition
func CreateDefinition(rawID string, def ClassDefinitionYAML) (*Definition, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	mode := BABMode(def.BABMode)
	if mode == "" {
		mode = BABPerLevel
	}

	name := def.Name
	if name == "" {
		name = string(id)
	}

	d := &Definition{
		ID:             id,
		Name:           name,
		Description:    def.Description,
		HitDie:         def.HitDie.Sides(),
		Nonheroic:      def.Nonheroic,
		BABProgression: append([]float64(nil), def.BABProgression...),
		BABMode:        mode,
		Defenses:       def.Defenses,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Definitions converts every class in the config, sorted by id
func (c *ClassesConfig) Definitions() ([]*Definition, error) {
	ids := make([]string, 0, len(c.Classes))
	for id := range c.Classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	defs := make([]*Definition, 0, len(ids))
	seen := make(map[ID]bool, len(ids))
	for _, rawID := range ids {
		d, err := CreateDefinition(rawID, c.Classes[rawID])
		if err != nil {
			return nil, err
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate class id %s", d.ID)
		}
		seen[d.ID] = true
		defs = append(defs, d)
	}
	return defs, nil
}
