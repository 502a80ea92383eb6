package maths

import (
	"math"
	"math/bits"
)

// MulChecked 无溢出乘法
func MulChecked(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// MulSat 饱和乘法, 溢出时返回 math.MaxUint64
func MulSat(a, b uint64) uint64 {
	if v, ok := MulChecked(a, b); ok {
		return v
	}
	return math.MaxUint64
}

// SquareSat 饱和平方
func SquareSat(a uint64) uint64 { return MulSat(a, a) }

// CeilDiv 向上取整除法
func CeilDiv(a, b uint64) uint64 {
	if a == 0 {
		return 0
	}
	return 1 + (a-1)/b
}
