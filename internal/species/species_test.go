package species

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseBodyType(t *testing.T) {
	tests := []struct {
		input    string
		expected BodyType
		hasError bool
	}{
		{"", Biological, false},
		{"biological", Biological, false},
		{"Organic", Biological, false},
		{"mechanical", Mechanical, false},
		{"DROID", Mechanical, false},
		{"crystalline", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBodyType(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseBodyType(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBodyType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseBodyType(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "species.yaml")

	content := `species:
  human:
    name: Human
  astromech:
    name: Astromech Droid
    body_type: mechanical
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFromYAML(path); err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}

	mech, err := r.IsMechanical("Astromech")
	if err != nil {
		t.Fatalf("IsMechanical failed: %v", err)
	}
	if !mech {
		t.Error("astromech should be mechanical")
	}

	mech, err = r.IsMechanical("human")
	if err != nil {
		t.Fatalf("IsMechanical failed: %v", err)
	}
	if mech {
		t.Error("human should be biological")
	}
}

func TestIsMechanicalUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.IsMechanical("wookiee"); err == nil {
		t.Error("expected error for unknown species")
	}
}

func TestLoadConfigRejectsBadBodyType(t *testing.T) {
	r := NewRegistry()
	err := r.LoadConfig(&SpeciesConfig{Species: map[string]*SpeciesDefinition{
		"golem": {Name: "Golem", BodyType: "stone"},
	}})
	if err == nil {
		t.Error("expected error for unknown body type")
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadConfig(&SpeciesConfig{Species: map[string]*SpeciesDefinition{
		"Protocol": {Name: "Protocol Droid", BodyType: "mechanical"},
	}}); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	def, ok := r.Get(" PROTOCOL ")
	if !ok {
		t.Fatal("registered species not found")
	}
	if !def.IsMechanical() {
		t.Error("expected mechanical")
	}
}
