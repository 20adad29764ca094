package arena

import (
	"testing"

	"github.com/shapepush/arena/internal/geom"
)

func TestMeasureScalesExtents(t *testing.T) {
	b := Measure(geom.V(5, 0.05, 5), geom.V(2, 1, 3))
	if !b.HalfExtents().ApproxEqual(geom.V(10, 0.05, 15), 1e-9) {
		t.Fatalf("got %+v", b.HalfExtents())
	}
}

func TestClampReportsAxes(t *testing.T) {
	b := Measure(geom.V(1, 1, 1), geom.One)
	p, hitX, hitZ := b.Clamp(geom.V(3, 0, -0.5))
	if !hitX || hitZ || p.X != 1 || p.Z != -0.5 {
		t.Fatalf("got %+v hitX=%v hitZ=%v", p, hitX, hitZ)
	}
	if !b.Contains(p) {
		t.Fatalf("clamped point must be inside")
	}
}

func TestShrinkByLevel(t *testing.T) {
	b := Measure(geom.V(8, 0, 4), geom.One).Shrink(2)
	if b.HalfX() != 4 || b.HalfZ() != 2 {
		t.Fatalf("got %+v", b.HalfExtents())
	}
}
