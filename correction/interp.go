// Package correction 通过稀疏采样与线性插值摊销昂贵的精确修正函数。
//
// 每个子区间只做一次前向预扫描, 在 O(√√len) 间隔的位置调用精确函数,
// 之后的查询全部由插值给出。
package correction

import (
	"goldbach/maths"
	"goldbach/types"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Sample 采样点
type Sample struct {
	Position uint64      // 位置
	Value    maths.Float // 精确修正值
}

// SampleInterval 由子区间长度得到采样间隔 ceil(1+sqrt(sqrt(len))), 限制在 [1, 31]
func SampleInterval(length uint64) uint64 {
	if length <= 1 {
		return types.MinSampleInterval
	}
	s := uint64(math.Ceil(1 + math.Sqrt(math.Sqrt(float64(length)))))
	return min(max(s, types.MinSampleInterval), types.MaxSampleInterval)
}

// Interpolator 修正值插值缓存
// 预扫描必须在查询前完成, 查询不能跨越子区间
type Interpolator struct {
	exact    Exact
	width    WidthFunc
	key      string // 当前子区间使用的修正函数标识
	start    uint64 // 子区间起点
	end      uint64 // 子区间终点（不含）
	interval uint64 // 采样间隔
	inited   bool
	scanned  bool
	samples  []Sample
	curve    interp.PiecewiseLinear
	fitted   bool
	calls    uint64 // 精确函数调用次数
}

// NewInterpolator 创建插值器
func NewInterpolator(exact Exact, width WidthFunc) *Interpolator {
	return &Interpolator{exact: exact, width: width}
}

// Init 设置子区间 [start, end)
// 相同区间与相同修正函数重复初始化时不做任何操作并返回 false
func (ip *Interpolator) Init(start, end uint64) bool {
	if end < start {
		end = start
	}
	key := ip.exact.Key()
	if ip.inited && ip.start == start && ip.end == end && ip.key == key {
		return false
	}
	ip.key, ip.start, ip.end = key, start, end
	ip.interval = SampleInterval(end - start)
	ip.inited, ip.scanned, ip.fitted = true, false, false
	ip.samples = ip.samples[:0]
	return true
}

// Prescan 单次前向扫描采样
// 采样位置为 start + i·s (i < ceil(len/s)-1) 以及最后一个位置 end-1
func (ip *Interpolator) Prescan() {
	if !ip.inited || ip.scanned {
		return
	}
	ip.scanned = true
	length := ip.end - ip.start
	if length == 0 {
		return
	}
	count := maths.CeilDiv(length, ip.interval)
	for i := uint64(0); i+1 < count; i++ {
		ip.sample(ip.start + i*ip.interval)
	}
	ip.sample(ip.end - 1)
	if len(ip.samples) < 2 {
		return
	}
	xs := make([]float64, len(ip.samples))
	ys := make([]float64, len(ip.samples))
	for i, s := range ip.samples {
		xs[i], ys[i] = float64(s.Position), s.Value
	}
	// 位置超过 2^53 时可能出现重复横坐标, 拟合失败则退回精确计算
	ip.fitted = ip.curve.Fit(xs, ys) == nil
}

func (ip *Interpolator) sample(position uint64) {
	ip.samples = append(ip.samples, Sample{Position: position, Value: ip.eval(position, ip.width(position))})
}

func (ip *Interpolator) eval(position, span uint64) maths.Float {
	ip.calls++
	return ip.exact.Eval(position, span)
}

// Query 插值查询
// 采样区间外取边界值, 尚无采样时直接调用精确函数
func (ip *Interpolator) Query(position, span uint64) maths.Float {
	switch {
	case len(ip.samples) == 0:
		return ip.eval(position, span)
	case len(ip.samples) == 1:
		return ip.samples[0].Value
	case !ip.fitted:
		return ip.eval(position, span)
	}
	return ip.curve.Predict(float64(position))
}

// Exact 直接计算精确值
func (ip *Interpolator) Exact(position, span uint64) maths.Float {
	return ip.eval(position, span)
}

// Contains 位置是否属于当前子区间
func (ip *Interpolator) Contains(position uint64) bool {
	return ip.inited && position >= ip.start && position < ip.end
}

// Range 当前子区间
func (ip *Interpolator) Range() (start, end uint64) { return ip.start, ip.end }

// Interval 当前采样间隔
func (ip *Interpolator) Interval() uint64 { return ip.interval }

// Samples 采样点副本
func (ip *Interpolator) Samples() []Sample { return append([]Sample(nil), ip.samples...) }

// Calls 精确函数累计调用次数
func (ip *Interpolator) Calls() uint64 { return ip.calls }
