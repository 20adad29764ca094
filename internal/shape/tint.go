package shape

// Tint is an opaque RGB color applied to a shape's material.
type Tint struct {
	Name    string
	R, G, B uint8
}

var (
	Red     = Tint{"red", 255, 0, 0}
	Yellow  = Tint{"yellow", 255, 235, 4}
	Green   = Tint{"green", 0, 255, 0}
	Cyan    = Tint{"cyan", 0, 255, 255}
	Magenta = Tint{"magenta", 255, 0, 255}
	Blue    = Tint{"blue", 0, 0, 255}
	Grey    = Tint{"grey", 128, 128, 128}
	Black   = Tint{"black", 0, 0, 0}
)

// DefaultPalette is the brush set shapes are painted from. Grey appears twice
// on purpose; draws are uniform over entries, not over distinct colors.
func DefaultPalette() []Tint {
	return []Tint{Red, Yellow, Green, Cyan, Magenta, Blue, Grey, Grey, Black}
}
