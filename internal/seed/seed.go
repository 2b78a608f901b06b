// Package seed provides the demo catalogue: the initial events and the member
// company directory, embedded as YAML.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

// Data is the decoded seed file.
type Data struct {
	Events    []model.Event   `yaml:"events"`
	Companies []model.Company `yaml:"companies"`
}

// Load decodes the embedded seed file.
func Load() (*Data, error) {
	return Parse(seedYAML)
}

// Parse decodes seed data from raw YAML.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	for i := range d.Events {
		if d.Events[i].ID == "" {
			return nil, fmt.Errorf("seed event %d: missing id", i)
		}
		if d.Events[i].Gallery == nil {
			d.Events[i].Gallery = []string{}
		}
		if d.Events[i].Documents == nil {
			d.Events[i].Documents = []model.Document{}
		}
	}
	return &d, nil
}

// MustLoad is Load for start-up paths where bad embedded data is a build bug.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}
