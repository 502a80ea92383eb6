package sieve

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mustTable(t *testing.T, limit uint64) *Table {
	t.Helper()
	table, err := New(limit)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", limit, err)
	}
	return table
}

// TestSieveCounts 已知 π(x) 值
func TestSieveCounts(t *testing.T) {
	cases := []struct {
		limit, pi uint64
	}{
		{2, 1}, {3, 2}, {10, 4}, {11, 5}, {100, 25}, {1000, 168}, {100000, 9592},
	}
	for _, c := range cases {
		if got := mustTable(t, c.limit).Count(); got != c.pi {
			t.Errorf("π(%d): expected %d, got %d", c.limit, c.pi, got)
		}
	}
}

func TestIsPrime(t *testing.T) {
	table := mustTable(t, 200)
	primes := map[uint64]bool{}
	for _, p := range []uint64{2, 3, 5, 7, 11, 13, 97, 101, 197, 199} {
		primes[p] = true
	}
	for _, x := range []uint64{0, 1, 2, 3, 4, 5, 7, 9, 11, 13, 15, 91, 97, 101, 197, 199, 201, 211} {
		if got := table.IsPrime(x); got != primes[x] {
			t.Errorf("IsPrime(%d): expected %v, got %v", x, primes[x], got)
		}
	}
	ps := table.Primes()
	if ps[0] != 2 || ps[len(ps)-1] != 199 || uint64(len(ps)) != table.Count() {
		t.Errorf("Unexpected prime list %v", ps)
	}
}

func TestNewOutOfRange(t *testing.T) {
	if _, err := New(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}

// TestCountPairs 与暴力计算比较
func TestCountPairs(t *testing.T) {
	table := mustTable(t, 5000)
	// 50: (47,53) (43,57x) ... 直接枚举
	brute := func(n, w uint64) uint64 {
		var c uint64
		for k := uint64(0); k <= w; k++ {
			if isPrimeSlow(n-k) && isPrimeSlow(n+k) {
				c++
			}
		}
		return c
	}
	for _, c := range [][2]uint64{{50, 48}, {100, 50}, {101, 0}, {1000, 300}, {2, 0}, {3, 1}, {2499, 2497}} {
		got, err := table.CountPairs(c[0], c[1])
		if err != nil {
			t.Fatalf("CountPairs(%d, %d) failed: %v", c[0], c[1], err)
		}
		if want := brute(c[0], c[1]); got != want {
			t.Errorf("CountPairs(%d, %d): expected %d, got %d", c[0], c[1], want, got)
		}
	}
	if n, _ := table.CountPairs(101, 0); n != 1 {
		t.Errorf("Expected (101, 101) to count once, got %d", n)
	}
	if _, err := table.CountPairs(100, 99); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for n-w < 2, got %v", err)
	}
	if _, err := table.CountPairs(4900, 200); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange above the limit, got %v", err)
	}
}

func isPrimeSlow(x uint64) bool {
	if x < 2 {
		return false
	}
	for d := uint64(2); d*d <= x; d++ {
		if x%d == 0 {
			return false
		}
	}
	return true
}

func TestOddDivisors(t *testing.T) {
	table := mustTable(t, 1<<20)
	cases := map[uint64][]uint64{
		1:       nil,
		64:      nil,
		105:     {3, 5, 7},
		2 * 997: {997},
		1 << 19: nil,
		1048573: {1048573}, // 素数
		9 * 49:  {3, 7},
	}
	for n, want := range cases {
		got, err := table.OddDivisors(n)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Errorf("OddDivisors(%d): expected %v, got %v", n, want, got)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("OddDivisors(%d): expected %v, got %v", n, want, got)
			}
		}
	}
	if _, err := table.OddDivisors(1<<20 + 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}

// TestFileRoundTrip 写出后经内存映射读回
func TestFileRoundTrip(t *testing.T) {
	table := mustTable(t, 30011)
	path := filepath.Join(t.TempDir(), "primes.bin")
	if err := table.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Limit() != table.Limit() || loaded.Count() != table.Count() {
		t.Fatalf("Expected limit %d count %d, got %d %d", table.Limit(), table.Count(), loaded.Limit(), loaded.Count())
	}
	for x := uint64(0); x <= table.Limit(); x++ {
		if loaded.IsPrime(x) != table.IsPrime(x) {
			t.Fatalf("IsPrime(%d) differs after reload", x)
		}
	}
}

func TestLoadCorrupt(t *testing.T) {
	table := mustTable(t, 100)
	var buf bytes.Buffer
	if _, err := table.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	good := buf.Bytes()

	badMagic := append([]byte("XXXXXXXX"), good[8:]...)
	truncated := good[:len(good)-3]
	unsorted := append([]byte(nil), good...)
	copy(unsorted[headerSize:], unsorted[headerSize+8:headerSize+16]) // 2 → 3, 与下一个重复

	dir := t.TempDir()
	for name, data := range map[string][]byte{"magic": badMagic, "truncated": truncated, "unsorted": unsorted, "short": good[:10]} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); !errors.Is(err, ErrBadTableFile) {
			t.Errorf("%s: expected ErrBadTableFile, got %v", name, err)
		}
	}
}
