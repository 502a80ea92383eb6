package maths

import "math"

// Float 扩展精度浮点类型
// Go 没有可移植的 long double, 统一使用 float64
type Float = float64

// Epsilon 浮点比较阈值
const Epsilon = 1e-12

// Number 是一个约束，允许任何浮点类型
type Number interface {
	~float32 | ~float64
}

// NearlyEqual 相对误差比较
func NearlyEqual[T Number](a, b T, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(float64(a - b))
	scale := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if scale < 1 {
		return diff <= tol
	}
	return diff <= tol*scale
}
