package sat

import "testing"

func TestLBoolOpposite(t *testing.T) {
	cases := []struct {
		in, want LBool
	}{
		{True, False},
		{False, True},
		{Unknown, Unknown},
	}
	for _, c := range cases {
		if got := c.in.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLift(t *testing.T) {
	if Lift(true) != True {
		t.Errorf("Lift(true) != True")
	}
	if Lift(false) != False {
		t.Errorf("Lift(false) != False")
	}
}
