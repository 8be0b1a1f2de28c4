package sat

import "testing"

func TestLitQueueFIFO(t *testing.T) {
	q := newLitQueue(2) // deliberately undersized to exercise grow()

	var want []Literal
	for i := 0; i < 10; i++ {
		l := PositiveLiteral(i)
		q.Push(l)
		want = append(want, l)
	}
	if q.Size() != len(want) {
		t.Fatalf("Size() = %d, want %d", q.Size(), len(want))
	}

	for i, w := range want {
		if q.IsEmpty() {
			t.Fatalf("queue emptied early at index %d", i)
		}
		if got := q.Pop(); got != w {
			t.Errorf("Pop() #%d = %v, want %v", i, got, w)
		}
	}
	if !q.IsEmpty() {
		t.Errorf("queue not empty after draining all pushes")
	}
}

func TestLitQueueClear(t *testing.T) {
	q := newLitQueue(4)
	q.Push(PositiveLiteral(1))
	q.Push(PositiveLiteral(2))
	q.Clear()
	if !q.IsEmpty() {
		t.Errorf("IsEmpty() = false after Clear()")
	}
}

func TestLitQueuePopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Pop on empty queue did not panic")
		}
	}()
	newLitQueue(1).Pop()
}
