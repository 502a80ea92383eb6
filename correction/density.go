package correction

import (
	"goldbach/maths"
	"math"
)

// Exact 精确修正函数
// Key 用于判断两次初始化是否使用同一个修正函数
type Exact interface {
	Key() string
	Eval(position, span uint64) maths.Float
}

// WidthFunc 中心 n 对应的区间半宽
type WidthFunc func(n uint64) uint64

// Density 对数密度修正
//
//	c(n, w) = log²n / (w+1) · Σ_{k=0..w} 1 / (log(n-k)·log(n+k))
//
// 计算代价与 w 成正比, 在 n 上光滑
type Density struct{}

// Key 修正函数标识
func (Density) Key() string { return "density" }

// Eval 计算精确修正, w 超过 n-2 时截断
func (Density) Eval(n, w uint64) maths.Float {
	if n < 3 {
		return 1
	}
	if w > n-2 {
		w = n - 2
	}
	fn := maths.Float(n)
	var sum maths.Float
	for k := uint64(0); k <= w; k++ {
		fk := maths.Float(k)
		sum += 1 / (math.Log(fn-fk) * math.Log(fn+fk))
	}
	return maths.LogSquared(n) * sum / maths.Float(w+1)
}

// ExactFunc 函数适配
type ExactFunc struct {
	Name string
	Fn   func(position, span uint64) maths.Float
}

func (f ExactFunc) Key() string                            { return f.Name }
func (f ExactFunc) Eval(position, span uint64) maths.Float { return f.Fn(position, span) }
