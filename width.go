package goldbach

import (
	"fmt"
	"goldbach/maths"
	"math"
)

// WidthKind 区间半宽策略
type WidthKind uint8

// 半宽策略常量定义
const (
	WidthPower      WidthKind = iota // floor(n^θ)
	WidthLogSquared                  // ceil(α·log²n)
)

var widthName = map[WidthKind]string{WidthPower: "power", WidthLogSquared: "logsq"}

func (k WidthKind) String() string { return widthName[k] }

// ParseWidthKind 通过名称获取半宽策略
func ParseWidthKind(name string) (WidthKind, error) {
	for k, v := range widthName {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知半宽策略: %q", name)
}

// WidthPolicy 半宽函数 w = W(n)
type WidthPolicy struct {
	Kind  WidthKind
	Theta float64 // 幂次指数
	Alpha float64 // 对数平方系数
}

func (p WidthPolicy) String() string {
	if p.Kind == WidthLogSquared {
		return fmt.Sprintf("logsq(%g)", p.Alpha)
	}
	return fmt.Sprintf("power(%g)", p.Theta)
}

// Width 中心 n 的区间半宽, 不超过 n-2
func Width(policy WidthPolicy, n uint64) uint64 {
	if n < 2 {
		return 0
	}
	var w float64
	switch policy.Kind {
	case WidthLogSquared:
		w = math.Ceil(policy.Alpha * maths.LogSquared(n))
	default:
		w = math.Floor(math.Pow(float64(n), policy.Theta))
	}
	if !(w > 0) {
		return 0
	}
	if w >= float64(n-2) {
		return n - 2
	}
	return uint64(w)
}

// Func 固定策略的半宽函数
func (p WidthPolicy) Func() func(n uint64) uint64 {
	return func(n uint64) uint64 { return Width(p, n) }
}
