package deficit

import (
	"goldbach/types"
	"math"
	"testing"
)

func symmetricConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = types.ResidueSymmetric
	cfg.Reduce = false
	return cfg
}

// TestEvaluateScenario n=100, w=50, 模式 2, 不约简, 结果落在 (0, 1]
func TestEvaluateScenario(t *testing.T) {
	e := New(symmetricConfig())
	v := e.Evaluate(100, 50)
	if !(v > 0 && v <= 1) {
		t.Fatalf("Expected value in (0, 1], got %g", v)
	}
	// 3 与 5 被提交: (1·3)² = 9 <= 50 < (3·5)² = 225
	st := e.State()
	if st.CommittedModulus != 3 || st.NextModulus != 15 {
		t.Errorf("Expected modulus 3 -> 15, got %d -> %d", st.CommittedModulus, st.NextModulus)
	}
	// 49 再 50 必须复现相同结果
	e2 := New(symmetricConfig())
	e2.Evaluate(100, 49)
	if got := e2.Evaluate(100, 50); got != v {
		t.Errorf("Expected %g after w=49, got %g", v, got)
	}
	if hits, misses := e2.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

// TestDeterminism 相同参数重复调用结果一致
func TestDeterminism(t *testing.T) {
	e := New(symmetricConfig())
	a := e.Evaluate(1000, 300)
	e.Evaluate(1002, 17)
	b := e.Evaluate(1000, 300)
	c := e.Evaluate(1000, 300)
	if a != b || b != c {
		t.Errorf("Expected identical values, got %g %g %g", a, b, c)
	}
}

// TestCacheTransparency w 逐一增加时缓存结果与完整重算一致, 覆盖模数平方边界
func TestCacheTransparency(t *testing.T) {
	configs := []Config{symmetricConfig(), DefaultConfig()}
	configs[1].Reduce = true
	configs[1].SkipThree = true
	configs[1].Scale = types.ScaleLinear
	configs = append(configs, Config{Mode: types.ResidueAsymmetric, Reduce: true, Exposure: 3, Boundary: types.BoundaryExclusive})

	for ci, cfg := range configs {
		for _, n := range []uint64{100, 210, 30030, 1<<20 + 7} {
			e := New(cfg)
			crossed := 0
			var last uint64
			for w := uint64(0); w <= 60000 && w < n; w++ {
				got := e.Evaluate(n, w)
				fresh := Compute(cfg, n, w)
				want := fresh.Value(cfg, w)
				if got != want {
					t.Fatalf("config %d n=%d w=%d: cached %g, fresh %g", ci, n, w, got, want)
				}
				if m := e.State().CommittedModulus; m != last {
					crossed++
					last = m
				}
			}
			if n > 1000 && crossed < 2 {
				t.Errorf("config %d n=%d: expected to cross modulus boundaries, crossed %d", ci, n, crossed)
			}
		}
	}
}

// TestBoundaryCrossing 在 M² 两侧比较缓存与完整计算
func TestBoundaryCrossing(t *testing.T) {
	cfg := symmetricConfig()
	e := New(cfg)
	// n=101: 3,5,7,11 均不整除, 模数 1,3,15,135
	for _, w := range []uint64{224, 225, 226, 224, 27224, 27225, 27226} {
		got := e.Evaluate(101, w)
		want := Compute(cfg, 101, w).Value(cfg, w)
		if got != want {
			t.Errorf("w=%d: cached %g, fresh %g", w, got, want)
		}
	}
	if b := Compute(cfg, 101, 224); b.Modulus != 3 {
		t.Errorf("Expected modulus 3 below 225, got %d", b.Modulus)
	}
	if b := Compute(cfg, 101, 225); b.Modulus != 15 {
		t.Errorf("Expected modulus 15 at 225, got %d", b.Modulus)
	}
	excl := cfg
	excl.Boundary = types.BoundaryExclusive
	if b := Compute(excl, 101, 225); b.Modulus != 3 {
		t.Errorf("Expected exclusive boundary to keep modulus 3, got %d", b.Modulus)
	}
}

// TestStateMachine 缓存状态在 n 改变时失效
func TestStateMachine(t *testing.T) {
	e := New(symmetricConfig())
	if e.State().Validity != Stale {
		t.Fatalf("Expected Stale before first evaluate")
	}
	e.Evaluate(500, 100)
	st := e.State()
	if st.Validity != Valid || st.Center != 500 {
		t.Fatalf("Expected Valid state for 500, got %v", st)
	}
	if !st.Covers(500, 100, types.BoundaryInclusive) {
		t.Errorf("State must cover the evaluated w")
	}
	if st.Covers(501, 100, types.BoundaryInclusive) {
		t.Errorf("State must not cover another center")
	}
	lo, hi, unbounded := st.Bounds()
	if unbounded || lo > 100 || hi <= 100 {
		t.Errorf("Unexpected bounds [%d, %d) unbounded=%v", lo, hi, unbounded)
	}
	e.Reset()
	if e.State().Validity != Stale {
		t.Errorf("Expected Stale after Reset")
	}
}

// TestReduction p 整除 n 时剩余类减少, 亏损比例变大
func TestReduction(t *testing.T) {
	plain := symmetricConfig()
	reduced := plain
	reduced.Reduce = true
	n, w := uint64(105), uint64(100)
	a := Compute(plain, n, w).Value(plain, w)
	b := Compute(reduced, n, w).Value(reduced, w)
	if !(b > a) {
		t.Errorf("Expected reduced deficit %g > plain %g", b, a)
	}
	// 模式 1 约简时整除 n 的素数完全排除, 不贡献项也不进入模数
	asym := Config{Mode: types.ResidueAsymmetric, Reduce: true}
	bd := Compute(asym, 3*5*7, 20000)
	if bd.Modulus != 10*12 || bd.Committed != 2 {
		t.Errorf("Expected modulus (11-1)(13-1)=120 from 2 primes, got %d from %d", bd.Modulus, bd.Committed)
	}
}

// TestSkipThree 跳过 3 的规则
func TestSkipThree(t *testing.T) {
	cfg := symmetricConfig()
	cfg.SkipThree = true
	if _, ok := cfg.residue(3, 100); ok {
		t.Errorf("Expected 3 to be skipped")
	}
	cfg.Reduce = true
	if r, ok := cfg.residue(3, 99); !ok || r != 1 {
		t.Errorf("Expected 3 kept with residue 1 when 3|n and reduction is on, got %d %v", r, ok)
	}
	if _, ok := cfg.residue(3, 100); ok {
		t.Errorf("Expected 3 skipped when 3 does not divide n")
	}
}

// TestSigned 上界读数取负
func TestSigned(t *testing.T) {
	e := New(symmetricConfig())
	v := e.Signed(1000, 90, false)
	if u := e.Signed(1000, 90, true); u != -v {
		t.Errorf("Expected %g, got %g", -v, u)
	}
}

// TestTailExposure 尾部外推数量受 Exposure 限制
func TestTailExposure(t *testing.T) {
	cfg := symmetricConfig()
	cfg.Exposure = 3
	// 3..17 提交: 22275² <= 2^30 < 378675²
	b := Compute(cfg, 1<<40, 1<<30)
	if b.Committed != 6 || b.Modulus != 22275 {
		t.Fatalf("Expected 6 committed primes with modulus 22275, got %d / %d", b.Committed, b.Modulus)
	}
	if b.TailTerms != 3 {
		t.Errorf("Expected 3 tail terms, got %d", b.TailTerms)
	}
	cfg.Exposure = 1000
	b = Compute(cfg, 1<<40, 1<<30)
	if b.TailTerms != 165 {
		t.Errorf("Expected the rest of the table (165 primes), got %d", b.TailTerms)
	}
	if b.TailFactor >= 0 {
		t.Errorf("Expected negative tail factor, got %g", b.TailFactor)
	}
	if v := b.Value(cfg, 1<<30); math.IsNaN(v) || v <= 0 || v > 1 {
		t.Errorf("Expected value in (0, 1], got %g", v)
	}
	// 大素数的尾项低于精度阈值
	if term := cfg.tailTerm(100000007, 2); math.Abs(term) >= types.PrecisionFloor {
		t.Errorf("Expected term below floor, got %g", term)
	}
}

// TestInvalidConfig 非法参数被修正
func TestInvalidConfig(t *testing.T) {
	e := New(Config{Mode: 7, Exposure: -3})
	if e.Config().Mode != types.ResidueSymmetric || e.Config().Exposure != 0 {
		t.Errorf("Expected normalized config, got %+v", e.Config())
	}
	if v := e.Evaluate(50, 0); v <= 0 || v > 1 {
		t.Errorf("Expected value in (0, 1] for w=0, got %g", v)
	}
}
