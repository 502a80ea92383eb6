package deficit

import (
	"goldbach/maths"
	"goldbach/types"
	"math"
)

// Validity 缓存状态标记
type Validity uint8

// 缓存状态常量定义
const (
	Stale Validity = iota // 需要完整重算
	Valid                 // 缓存在 w 区间内有效
)

func (v Validity) String() string {
	if v == Valid {
		return "Valid"
	}
	return "Stale"
}

// State 估计器缓存的最近一次分解结果
// 有效区间由 CommittedModulus 和 NextModulus 的平方界定
type State struct {
	Validity         Validity    // 状态标记
	Center           uint64      // 最近计算的 n
	CommittedModulus uint64      // 已提交素数的模数积
	NextModulus      uint64      // 下一个素数加入后的模数, 0 表示素数表耗尽
	LogSum           maths.Float // Σ log((p-r)/p)
	TailFactor       maths.Float // 尾部外推系数
}

// Bounds 有效区间的平方界, unbounded 为真时无上界
func (s State) Bounds() (lo, hi uint64, unbounded bool) {
	lo = maths.SquareSat(s.CommittedModulus)
	if s.NextModulus == 0 {
		return lo, math.MaxUint64, true
	}
	return lo, maths.SquareSat(s.NextModulus), false
}

// Covers 缓存是否可以直接复用
//
//	Inclusive: w ∈ [M², M'²)
//	Exclusive: w ∈ (M², M'²]
func (s State) Covers(n, w uint64, policy types.BoundaryPolicy) bool {
	if s.Validity != Valid || s.Center != n {
		return false
	}
	lo, hi, unbounded := s.Bounds()
	if policy == types.BoundaryExclusive {
		return w > lo && (unbounded || w <= hi)
	}
	return w >= lo && (unbounded || w < hi)
}
