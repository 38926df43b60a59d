package sweep

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// File is the on-disk form of a scenario list.
//
// YAML:
//
//	scenarios:
//	  - name: solo
//	    player_count: 1
//	    normal_max: 3
//	    endgame_max: 4
//
// CUE:
//
//	scenarios: [{player_count: 1, normal_max: 3, endgame_max: 4}]
type File struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// LoadScenarios reads a scenario file. The format is chosen by extension:
// .yaml/.yml or .cue. The result is validated before it is returned.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenarios []Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		scenarios, err = ParseYAML(data)
	case ".cue":
		scenarios, err = ParseCUE(path, data)
	default:
		return nil, &ConfigError{Index: -1, Field: "scenarios", Message: fmt.Sprintf("unsupported scenario file extension %q (want .yaml, .yml or .cue)", ext)}
	}
	if err != nil {
		return nil, err
	}

	if err := ValidateScenarios(scenarios); err != nil {
		return nil, fmt.Errorf("invalid scenario file %s: %w", path, err)
	}
	return scenarios, nil
}

// ParseYAML decodes a YAML scenario file, rejecting unknown fields.
func ParseYAML(data []byte) ([]Scenario, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject typos like "normal-max"
	if err := decoder.Decode(&f); err != nil {
		return nil, &ConfigError{Index: -1, Field: "scenarios", Message: "failed to parse YAML", Err: err}
	}
	return f.Scenarios, nil
}

// ParseCUE evaluates a CUE scenario file against the embedded schema.
// The schema enforces the same bounds as Scenario.Validate.
func ParseCUE(filename string, data []byte) ([]Scenario, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling scenario schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, &ConfigError{Index: -1, Field: "scenarios", Message: "failed to compile CUE", Err: err}
	}

	unified := schema.LookupPath(cue.ParsePath("#File")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &ConfigError{Index: -1, Field: "scenarios", Message: "scenario file does not match schema", Err: err}
	}

	var f File
	if err := unified.Decode(&f); err != nil {
		return nil, &ConfigError{Index: -1, Field: "scenarios", Message: "failed to decode CUE", Err: err}
	}
	return f.Scenarios, nil
}
