package sat

import "testing"

func TestLiteralEncoding(t *testing.T) {
	for v := 0; v < 5; v++ {
		pos := PositiveLiteral(v)
		neg := NegativeLiteral(v)

		if got := pos.VarID(); got != v {
			t.Errorf("PositiveLiteral(%d).VarID() = %d, want %d", v, got, v)
		}
		if got := neg.VarID(); got != v {
			t.Errorf("NegativeLiteral(%d).VarID() = %d, want %d", v, got, v)
		}
		if !pos.IsPositive() {
			t.Errorf("PositiveLiteral(%d).IsPositive() = false, want true", v)
		}
		if neg.IsPositive() {
			t.Errorf("NegativeLiteral(%d).IsPositive() = true, want false", v)
		}
		if got := pos.Opposite(); got != neg {
			t.Errorf("PositiveLiteral(%d).Opposite() = %v, want %v", v, got, neg)
		}
		if got := neg.Opposite(); got != pos {
			t.Errorf("NegativeLiteral(%d).Opposite() = %v, want %v", v, got, pos)
		}
		if pos.Opposite().Opposite() != pos {
			t.Errorf("Opposite is not its own inverse for variable %d", v)
		}
	}
}
