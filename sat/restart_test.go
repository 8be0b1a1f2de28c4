package sat

import "testing"

func TestLubySequence(t *testing.T) {
	// The standard base-2 Luby sequence, 0-indexed.
	want := []int64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for i, w := range want {
		if got := luby(int64(i)); got != w {
			t.Errorf("luby(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestLubyRestarterSchedule(t *testing.T) {
	r := NewLubyRestarter(1)
	r.Init()

	for i, w := range []int64{1, 1, 2, 1, 1, 2, 4} {
		for c := int64(0); c < w-1; c++ {
			r.NewConflict(0)
			if r.ShouldRestart() {
				t.Fatalf("restart #%d fired early after %d conflicts (budget %d)", i, c+1, w)
			}
		}
		r.NewConflict(0)
		if !r.ShouldRestart() {
			t.Fatalf("restart #%d did not fire after %d conflicts (budget %d)", i, w, w)
		}
		r.OnRestart()
	}
}

func TestGeometricRestarterGrows(t *testing.T) {
	r := NewGeometricRestarter(100, 1.5)
	r.Init()
	for i := int64(0); i < 100; i++ {
		r.NewConflict(0)
	}
	if !r.ShouldRestart() {
		t.Fatalf("expected restart after reaching the initial budget")
	}
	before := r.budget
	r.OnRestart()
	if r.budget <= before {
		t.Errorf("budget did not grow after OnRestart: before=%d after=%d", before, r.budget)
	}
}

func TestGlucoseRestarterTriggersOnRisingLBD(t *testing.T) {
	r := NewGlucoseRestarter(1.25, 10)
	r.Init()

	// Seed a low, stable LBD history so both EMAs converge near it.
	for i := 0; i < 200; i++ {
		r.NewConflict(2)
	}
	if r.ShouldRestart() {
		t.Fatalf("restart triggered on a flat LBD history")
	}

	// A burst of much higher LBD conflicts should push the fast average
	// above the slow one by more than the margin.
	for i := 0; i < 15; i++ {
		r.NewConflict(50)
	}
	if !r.ShouldRestart() {
		t.Fatalf("expected restart after a burst of high-LBD conflicts")
	}
}
