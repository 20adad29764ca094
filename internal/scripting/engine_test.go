package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/scoring"
	"github.com/shapepush/arena/internal/shape"
)

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

// The shipped script must agree with the built-in rule.
func TestShippedScriptMatchesStreak(t *testing.T) {
	e := newEngine(t, filepath.Join("..", "..", "scripts"))
	if !e.Has("collect_value") {
		t.Fatalf("collect_value not loaded")
	}
	cases := []scoring.CollectContext{
		{Kind: shape.Cube, Mass: 1.5, Level: 1, First: true},
		{Kind: shape.Cube, Mass: 2, Level: 2, LastKind: shape.Sphere, LastValue: 30},
		{Kind: shape.Cube, Mass: 2, Level: 2, LastKind: shape.Cube, LastValue: -30},
		{Kind: shape.Quad, Mass: 0.5, Level: 3, LastKind: shape.Quad, LastValue: 10},
	}
	for _, c := range cases {
		got, err := e.CollectValue(c)
		if err != nil {
			t.Fatalf("CollectValue(%+v): %v", c, err)
		}
		want, _ := scoring.Streak{}.CollectValue(c)
		if got != want {
			t.Fatalf("CollectValue(%+v)=%f want %f", c, got, want)
		}
	}
}

func TestMissingFunction(t *testing.T) {
	e := newEngine(t, filepath.Join(t.TempDir(), "none"))
	_, err := e.CollectValue(scoring.CollectContext{First: true})
	if !errors.Is(err, ErrNoFunction) {
		t.Fatalf("expected ErrNoFunction, got %v", err)
	}
}

func TestBadReturnType(t *testing.T) {
	e := newEngine(t, t.TempDir())
	if err := e.LoadString(`function collect_value(ctx) return "lots" end`); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := e.CollectValue(scoring.CollectContext{First: true}); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestScriptErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	src := "function collect_value(ctx) error('nope') end\n"
	if err := os.WriteFile(filepath.Join(dir, "rules.lua"), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	e := newEngine(t, dir)
	if _, err := e.CollectValue(scoring.CollectContext{First: true}); err == nil {
		t.Fatalf("expected lua error")
	}
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatalf("expected load error")
	}
}
