package utils

import "testing"

func TestBitmap(t *testing.T) {
	b := NewBitmap(130)
	b.Set(0, true)
	b.Set(64, true)
	b.Set(129, true)
	b.Set(200, true) // 越界忽略
	if !b.Get(0) || !b.Get(64) || !b.Get(129) || b.Get(1) || b.Get(200) {
		t.Errorf("Get/Set mismatch")
	}
	if b.FlagCount(true) != 3 || b.FlagCount(false) != 127 {
		t.Errorf("Expected 3 set bits, got %d", b.FlagCount(true))
	}
	b.Set(64, false)
	if b.Get(64) {
		t.Errorf("Expected bit 64 cleared")
	}
}

func TestBitmapFillNext(t *testing.T) {
	b := NewBitmap(70)
	b.Fill(true)
	if b.FlagCount(true) != 70 {
		t.Fatalf("Expected 70 set bits after Fill, got %d", b.FlagCount(true))
	}
	b.Fill(false)
	for _, bit := range []BitmapFlag{3, 63, 64, 69} {
		b.Set(bit, true)
	}
	var got []BitmapFlag
	for bit, ok := b.Next(0); ok; bit, ok = b.Next(bit + 1) {
		got = append(got, bit)
	}
	want := []BitmapFlag{3, 63, 64, 69}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
	if _, ok := b.Next(70); ok {
		t.Errorf("Next past the end must fail")
	}
}
