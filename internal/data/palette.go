package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shapepush/arena/internal/shape"
)

type paletteEntry struct {
	Name string `yaml:"name"`
	RGB  [3]int `yaml:"rgb"`
}

type paletteFile struct {
	Palette []paletteEntry `yaml:"palette"`
}

// LoadPalette loads the ordered brush list. Repeated entries are kept; they
// weight the draw.
func LoadPalette(path string) ([]shape.Tint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return ParsePalette(raw)
}

func ParsePalette(raw []byte) ([]shape.Tint, error) {
	var f paletteFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	if len(f.Palette) == 0 {
		return nil, fmt.Errorf("parse palette: empty")
	}
	out := make([]shape.Tint, 0, len(f.Palette))
	for _, p := range f.Palette {
		for _, c := range p.RGB {
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("parse palette: %s: channel %d out of range", p.Name, c)
			}
		}
		out = append(out, shape.Tint{
			Name: p.Name,
			R:    uint8(p.RGB[0]),
			G:    uint8(p.RGB[1]),
			B:    uint8(p.RGB[2]),
		})
	}
	return out, nil
}
