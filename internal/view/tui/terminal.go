// Package tui renders the arena top-down in a terminal with tcell.
package tui

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/shape"
	"github.com/shapepush/arena/internal/view"
)

var glyphs = map[shape.Kind]rune{
	shape.Sphere:   'o',
	shape.Capsule:  '0',
	shape.Cylinder: '@',
	shape.Cube:     '#',
	shape.Plane:    '=',
	shape.Quad:     '%',
}

const (
	playerGlyph = 'A'
	wallGlyph   = '.'
)

// Terminal draws scenes onto a tcell screen and turns key presses into
// commands. Render is called from the game loop; input is read on its own
// goroutine.
type Terminal struct {
	screen    tcell.Screen
	cellWorld float64
	hud       *message.Printer

	mu   sync.Mutex
	dir  geom.Vec3
	cmds chan Command
}

// Command is a discrete user request.
type Command uint8

const (
	CmdQuit Command = iota
)

// New initializes screen. cellWorld is the world width of one column;
// rows cover twice that to keep the aspect roughly square.
func New(screen tcell.Screen, cellWorld float64) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	if cellWorld <= 0 {
		cellWorld = 0.25
	}
	screen.HideCursor()
	return &Terminal{
		screen:    screen,
		cellWorld: cellWorld,
		hud:       message.NewPrinter(language.English),
		cmds:      make(chan Command, 4),
	}, nil
}

// Open creates the default terminal screen.
func Open(cellWorld float64) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, cellWorld)
}

// Commands delivers quit requests.
func (t *Terminal) Commands() <-chan Command { return t.cmds }

// Direction is the current movement input.
func (t *Terminal) Direction() geom.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dir
}

// Listen reads input until the screen is finalized.
func (t *Terminal) Listen() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.handle(ev)
	}
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			select {
			case t.cmds <- CmdQuit:
			default:
			}
			return
		}
		if dir, ok := keyDirection(ev); ok {
			t.mu.Lock()
			t.dir = dir
			t.mu.Unlock()
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// keyDirection maps WASD and arrows to +z forward, +x right. Space stops.
func keyDirection(ev *tcell.EventKey) (geom.Vec3, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return geom.V(0, 0, 1), true
	case tcell.KeyDown:
		return geom.V(0, 0, -1), true
	case tcell.KeyLeft:
		return geom.V(-1, 0, 0), true
	case tcell.KeyRight:
		return geom.V(1, 0, 0), true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return geom.V(0, 0, 1), true
		case 's', 'S':
			return geom.V(0, 0, -1), true
		case 'a', 'A':
			return geom.V(-1, 0, 0), true
		case 'd', 'D':
			return geom.V(1, 0, 0), true
		case ' ':
			return geom.Zero, true
		}
	}
	return geom.Zero, false
}

// Render draws s centered on screen with a one-line HUD on top.
func (t *Terminal) Render(s view.Scene) {
	t.screen.Clear()
	w, h := t.screen.Size()
	cx, cy := w/2, (h+1)/2

	half := s.Bounds.HalfExtents()
	cols := int(math.Round(half.X / t.cellWorld))
	rows := int(math.Round(half.Z / (2 * t.cellWorld)))
	wall := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := -cols - 1; x <= cols+1; x++ {
		t.screen.SetContent(cx+x, cy-rows-1, wallGlyph, nil, wall)
		t.screen.SetContent(cx+x, cy+rows+1, wallGlyph, nil, wall)
	}
	for z := -rows; z <= rows; z++ {
		t.screen.SetContent(cx-cols-1, cy+z, wallGlyph, nil, wall)
		t.screen.SetContent(cx+cols+1, cy+z, wallGlyph, nil, wall)
	}

	for _, sp := range s.Sprites {
		x, y := t.cell(sp.Position, cx, cy)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(sp.Tint.R), int32(sp.Tint.G), int32(sp.Tint.B)))
		if sp.Warning {
			style = style.Reverse(true)
		}
		if sp.Fading {
			style = style.Dim(true)
		}
		t.screen.SetContent(x, y, glyphs[sp.Kind], nil, style)
	}

	px, py := t.cell(s.Player, cx, cy)
	pstyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if s.Braked {
		pstyle = pstyle.Foreground(tcell.ColorRed)
	}
	t.screen.SetContent(px, py, playerGlyph, nil, pstyle)

	t.text(0, 0, HUD(t.hud, s), tcell.StyleDefault)
	t.screen.Show()
}

// HUD is the status line text.
func HUD(p *message.Printer, s view.Scene) string {
	return p.Sprintf("Level:%d Total:%d", s.Level, s.Total)
}

func (t *Terminal) cell(p geom.Vec3, cx, cy int) (int, int) {
	x := cx + int(math.Round(p.X/t.cellWorld))
	y := cy - int(math.Round(p.Z/(2*t.cellWorld)))
	return x, y
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
