package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/shape"
)

// CapacityEntry is the number of shapes of one kind kept on stage.
type CapacityEntry struct {
	Kind     string `yaml:"kind"`
	Capacity int    `yaml:"capacity"`
	Ceiling  int    `yaml:"ceiling"` // 0 = unbounded growth
}

type capacityFile struct {
	Capacities []CapacityEntry `yaml:"capacities"`
}

// CapacityTable holds per-kind pool sizes in file order.
type CapacityTable struct {
	configs []pool.Config
}

func (t *CapacityTable) Configs() []pool.Config { return t.configs }

// Count returns the number of kinds configured.
func (t *CapacityTable) Count() int { return len(t.configs) }

// Total is the number of shapes on stage when every pool is drained.
func (t *CapacityTable) Total() int {
	n := 0
	for _, c := range t.configs {
		n += c.Capacity
	}
	return n
}

// LoadCapacityTable loads per-kind pool sizes from a YAML file.
func LoadCapacityTable(path string) (*CapacityTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capacities: %w", err)
	}
	return ParseCapacityTable(raw)
}

// ParseCapacityTable parses capacities YAML. Unknown kinds and negative sizes
// are rejected; a kind listed twice keeps its first entry.
func ParseCapacityTable(raw []byte) (*CapacityTable, error) {
	var f capacityFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse capacities: %w", err)
	}
	t := &CapacityTable{configs: make([]pool.Config, 0, len(f.Capacities))}
	seen := make(map[shape.Kind]bool, len(f.Capacities))
	for _, entry := range f.Capacities {
		kind, err := shape.ParseKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse capacities: %w", err)
		}
		if entry.Capacity < 0 || entry.Ceiling < 0 {
			return nil, fmt.Errorf("parse capacities: %s: negative size", entry.Kind)
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		t.configs = append(t.configs, pool.Config{
			Kind:     kind,
			Capacity: entry.Capacity,
			Ceiling:  entry.Ceiling,
		})
	}
	return t, nil
}
