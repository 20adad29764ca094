package audio

import (
	"math"
	"testing"
	"time"
)

func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatalf("tone never ended")
	return nil
}

func TestToneLength(t *testing.T) {
	s := NewTone(440, 100*time.Millisecond, WaveSine, sampleRate)
	got := drain(t, s)
	if want := sampleRate.N(100 * time.Millisecond); len(got) != want {
		t.Fatalf("got %d samples want %d", len(got), want)
	}
}

func TestToneFadesOut(t *testing.T) {
	s := NewTone(140, 50*time.Millisecond, WaveSquare, sampleRate)
	got := drain(t, s)
	if math.Abs(got[0][0]) != 1 {
		t.Fatalf("square wave should start at full level, got %f", got[0][0])
	}
	last := got[len(got)-1][0]
	if math.Abs(last) > 0.01 {
		t.Fatalf("tone should fade to silence, last=%f", last)
	}
}

func TestUninitializedBeeperIsSilent(t *testing.T) {
	b := NewBeeper(0.5)
	b.Credits()
	b.Damage()
	b.Close()
}
