// Package bucket 聚合区间边界。
package bucket

import (
	"fmt"
	"goldbach/maths"
	"math"
)

// Boundaries 聚合区间划分
type Boundaries interface {
	Name() string        // 划分名称
	End(n uint64) uint64 // 包含 n 的区间终点（不含）
}

// Decade 十进制区间 [10^k, 10^(k+1)) 等分为 Steps 份
type Decade struct {
	Steps uint64
}

// NewDecade 创建十进制划分
func NewDecade(steps uint64) (Decade, error) {
	if steps == 0 {
		return Decade{}, fmt.Errorf("十进制划分份数必须大于 0")
	}
	return Decade{Steps: steps}, nil
}

// Name 划分名称
func (d Decade) Name() string { return fmt.Sprintf("decade%d", d.Steps) }

// End 包含 n 的区间终点
func (d Decade) End(n uint64) uint64 {
	steps := max(d.Steps, 1)
	base := uint64(1)
	for base <= math.MaxUint64/10 && base*10 <= n {
		base *= 10
	}
	if base > math.MaxUint64/10 {
		return math.MaxUint64
	}
	width := 9 * base
	if n < base {
		return base
	}
	i := (n-base)*steps/width + 1
	return base + (i*width+steps-1)/steps
}

// Primorial 以奇素数阶乘 3·5·…·p_K 的倍数为边界
type Primorial struct {
	K      int
	period uint64
}

// NewPrimorial 创建奇素数阶乘划分
func NewPrimorial(k int) (Primorial, error) {
	period, ok := maths.OddPrimorial(k)
	if !ok || k < 1 {
		return Primorial{}, fmt.Errorf("奇素数阶乘阶数 %d 不合法", k)
	}
	return Primorial{K: k, period: period}, nil
}

// Name 划分名称
func (p Primorial) Name() string { return fmt.Sprintf("primorial%d", p.K) }

// Period 区间长度
func (p Primorial) Period() uint64 { return p.period }

// End 包含 n 的区间终点
func (p Primorial) End(n uint64) uint64 {
	next, ok := maths.MulChecked(n/p.period+1, p.period)
	if !ok {
		return math.MaxUint64
	}
	return next
}

// Range 聚合区间
type Range struct {
	Start, End uint64
}

// Split 将 [start, end) 按划分切成区间
func Split(b Boundaries, start, end uint64) []Range {
	var ranges []Range
	for lo := start; lo < end; {
		hi := min(b.End(lo), end)
		if hi <= lo {
			hi = end
		}
		ranges = append(ranges, Range{Start: lo, End: hi})
		lo = hi
	}
	return ranges
}
