// Package species defines character species and the body type each one has.
package species

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a species, e.g. "human" or "astromech-droid"
type ID string

// BodyType distinguishes biological characters from mechanical ones
type BodyType string

const (
	Biological BodyType = "biological"
	Mechanical BodyType = "mechanical"
)

// ParseBodyType parses a body type, case-insensitive. Empty means biological.
func ParseBodyType(s string) (BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "biological", "organic":
		return Biological, nil
	case "mechanical", "droid":
		return Mechanical, nil
	default:
		return "", fmt.Errorf("unknown body type: %s", s)
	}
}

// SpeciesDefinition represents a species definition from the YAML file
type SpeciesDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BodyType    string `yaml:"body_type"`
}

// SpeciesConfig represents the structure of the species.yaml file
type SpeciesConfig struct {
	Species map[string]*SpeciesDefinition `yaml:"species"`
}

// Definition contains the resolved definition for a species
type Definition struct {
	ID          ID
	Name        string
	Description string
	BodyType    BodyType
}

// IsMechanical reports whether the species has a mechanical body
func (d *Definition) IsMechanical() bool {
	return d.BodyType == Mechanical
}

// Registry holds loaded species definitions
type Registry struct {
	species map[ID]*Definition
}

// NewRegistry creates an empty species registry
func NewRegistry() *Registry {
	return &Registry{species: make(map[ID]*Definition)}
}

// LoadSpeciesFromYAML loads species definitions from a YAML file
func LoadSpeciesFromYAML(filename string) (*SpeciesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read species file: %w", err)
	}

	var config SpeciesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse species YAML: %w", err)
	}
	return &config, nil
}

// LoadFromYAML loads species from a YAML file into the registry
func (r *Registry) LoadFromYAML(filename string) error {
	config, err := LoadSpeciesFromYAML(filename)
	if err != nil {
		return err
	}
	return r.LoadConfig(config)
}

// LoadConfig adds every species in the config to the registry
func (r *Registry) LoadConfig(config *SpeciesConfig) error {
	for rawID, def := range config.Species {
		if def == nil {
			return fmt.Errorf("species %s has no definition", rawID)
		}
		id := ID(strings.ToLower(strings.TrimSpace(rawID)))
		if id == "" {
			return fmt.Errorf("species with empty id")
		}
		bodyType, err := ParseBodyType(def.BodyType)
		if err != nil {
			return fmt.Errorf("species %s: %w", id, err)
		}
		name := def.Name
		if name == "" {
			name = string(id)
		}
		r.species[id] = &Definition{
			ID:          id,
			Name:        name,
			Description: def.Description,
			BodyType:    bodyType,
		}
	}
	return nil
}

// Get returns the definition for a species, case-insensitive
func (r *Registry) Get(id string) (*Definition, bool) {
	def, ok := r.species[ID(strings.ToLower(strings.TrimSpace(id)))]
	return def, ok
}

// IsMechanical reports whether the named species is mechanical.
// Unknown species are an error rather than silently biological.
func (r *Registry) IsMechanical(id string) (bool, error) {
	def, ok := r.Get(id)
	if !ok {
		return false, fmt.Errorf("unknown species: %s", id)
	}
	return def.IsMechanical(), nil
}

// Count returns the number of loaded species
func (r *Registry) Count() int {
	return len(r.species)
}
