package bucket

import (
	"testing"
)

func TestDecadeEnd(t *testing.T) {
	d9, _ := NewDecade(9)
	d4, _ := NewDecade(4)
	cases := []struct {
		d    Decade
		n    uint64
		want uint64
	}{
		{d9, 0, 1}, {d9, 1, 2}, {d9, 9, 10}, {d9, 10, 20}, {d9, 99, 100}, {d9, 100, 200},
		{d9, 123456, 200000},
		{d4, 100, 325}, {d4, 324, 325}, {d4, 325, 550}, {d4, 999, 1000},
	}
	for _, c := range cases {
		if got := c.d.End(c.n); got != c.want {
			t.Errorf("%s.End(%d): expected %d, got %d", c.d.Name(), c.n, c.want, got)
		}
	}
	if _, err := NewDecade(0); err == nil {
		t.Errorf("Expected error for zero steps")
	}
}

func TestPrimorialEnd(t *testing.T) {
	p, err := NewPrimorial(2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Period() != 15 {
		t.Fatalf("Expected period 15, got %d", p.Period())
	}
	for n, want := range map[uint64]uint64{0: 15, 14: 15, 15: 30, 44: 45} {
		if got := p.End(n); got != want {
			t.Errorf("End(%d): expected %d, got %d", n, want, got)
		}
	}
	for _, k := range []int{0, -1, 40} {
		if _, err := NewPrimorial(k); err == nil {
			t.Errorf("Expected error for k=%d", k)
		}
	}
}

// TestSplit 区间首尾相接且覆盖 [start, end)
func TestSplit(t *testing.T) {
	d9, _ := NewDecade(9)
	got := Split(d9, 5, 25)
	want := []Range{{5, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 10}, {10, 20}, {20, 25}}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Range %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if r := Split(d9, 7, 7); len(r) != 0 {
		t.Errorf("Expected no ranges for empty interval, got %v", r)
	}
}
