package maths

import "math"

// TwinPrimeConstant 孪生素数常数 C2
const TwinPrimeConstant = 0.66016181584686957392

// SingularFactor Hardy–Littlewood 局部因子 2·C2·Π (p-1)/(p-2)
// divisors 为 n 的互异奇素因子
func SingularFactor(divisors []uint64) Float {
	s := 2 * TwinPrimeConstant
	for _, p := range divisors {
		if p < 3 {
			continue
		}
		s *= Float(p-1) / Float(p-2)
	}
	return s
}

// LogSquared log²(n)
func LogSquared(n uint64) Float {
	l := math.Log(Float(n))
	return l * l
}
