package extrema

import (
	"errors"
	"fmt"
	"goldbach/maths"
	"math"
)

// ErrNonPositiveNormalizer 归一化分母非正
var ErrNonPositiveNormalizer = errors.New("归一化分母非正")

// Stat 窗口统计量
type Stat uint8

// 统计量常量定义
const (
	StatPairs      Stat = iota // 实测素数对数量
	StatPredicted              // 预测素数对数量
	StatRatio                  // 实测/预测
	StatDeficiency             // 1 - 实测/预测
	StatEnvelope               // 亏损包络 (w+1)·D
	statCount
)

var statName = [statCount]string{"pairs", "predicted", "ratio", "deficiency", "envelope"}

func (s Stat) String() string {
	if s < statCount {
		return statName[s]
	}
	return "unknown"
}

// Stats 全部统计量
func Stats() []Stat {
	return []Stat{StatPairs, StatPredicted, StatRatio, StatDeficiency, StatEnvelope}
}

// Point 单个中心的输入
type Point struct {
	N          uint64      // 中心
	Span       uint64      // 区间半宽
	Observed   uint64      // 实测素数对
	Base       maths.Float // 未修正的预测 HL(n)·(w+1)/log²n
	Correction maths.Float // 插值修正系数
	Envelope   maths.Float // 亏损包络
}

// Averages 窗口平均值
type Averages struct {
	Observed   maths.Float
	Predicted  maths.Float
	Ratio      maths.Float
	Deficiency maths.Float
	Envelope   maths.Float
}

// Of 按统计量取平均值
func (a Averages) Of(s Stat) maths.Float {
	switch s {
	case StatPairs:
		return a.Observed
	case StatPredicted:
		return a.Predicted
	case StatRatio:
		return a.Ratio
	case StatDeficiency:
		return a.Deficiency
	case StatEnvelope:
		return a.Envelope
	}
	return math.NaN()
}

// Window 单个聚合区间的统计
type Window struct {
	start, end uint64
	count      uint64
	sums       [statCount]maths.Float
	min, max   [statCount]Values
}

// NewWindow 创建区间 [start, end) 的统计窗口
func NewWindow(start, end uint64) *Window {
	return &Window{start: start, end: end}
}

// Reset 切换到新的区间
func (w *Window) Reset(start, end uint64) {
	*w = Window{start: start, end: end}
}

// Range 当前区间
func (w *Window) Range() (start, end uint64) { return w.start, w.end }

// Count 已记录数量
func (w *Window) Count() uint64 { return w.count }

// Add 记录一个中心
// 预测值非正时返回 ErrNonPositiveNormalizer, 不做任何记录
func (w *Window) Add(p Point) error {
	predicted := p.Base * p.Correction
	if !(p.Correction > 0) || !(predicted > 0) || math.IsInf(predicted, 0) {
		return fmt.Errorf("n=%d 预测值 %g: %w", p.N, predicted, ErrNonPositiveNormalizer)
	}
	observed := maths.Float(p.Observed)
	ratio := observed / predicted
	inv := 1 / p.Correction
	values := [statCount]struct {
		v, baseline, factor maths.Float
	}{
		StatPairs:      {observed, 0, 1},
		StatPredicted:  {predicted, 0, p.Correction},
		StatRatio:      {ratio, 0, inv},
		StatDeficiency: {1 - ratio, 1, inv},
		StatEnvelope:   {p.Envelope, 0, 1},
	}
	for s, x := range values {
		w.min[s].RecordMinimum(x.v, x.baseline, p.N, p.Span, x.factor)
		w.max[s].RecordMaximum(x.v, x.baseline, p.N, p.Span, x.factor)
		w.sums[s] += x.v
	}
	w.count++
	return nil
}

// CalcAverage 当前窗口平均值
func (w *Window) CalcAverage() Averages {
	if w.count == 0 {
		return Averages{}
	}
	n := maths.Float(w.count)
	return Averages{
		Observed:   w.sums[StatPairs] / n,
		Predicted:  w.sums[StatPredicted] / n,
		Ratio:      w.sums[StatRatio] / n,
		Deficiency: w.sums[StatDeficiency] / n,
		Envelope:   w.sums[StatEnvelope] / n,
	}
}

// Finalize 用精确修正回溯缩放极值, 输出摘要并重置窗口
func (w *Window) Finalize(exact func(position, span uint64) maths.Float) (Summary, error) {
	sum := Summary{Start: w.start, End: w.end, Count: w.count, Average: w.CalcAverage()}
	if w.count > 0 && exact != nil {
		var bad error
		direct := func(position, span uint64) maths.Float {
			c := exact(position, span)
			if !(c > 0) && bad == nil {
				bad = fmt.Errorf("n=%d 精确修正 %g: %w", position, c, ErrNonPositiveNormalizer)
			}
			return c
		}
		inverse := func(position, span uint64) maths.Float { return 1 / direct(position, span) }
		for _, s := range []Stat{StatPredicted, StatRatio, StatDeficiency} {
			f := inverse
			if s == StatPredicted {
				f = direct
			}
			w.min[s].ApplyCorrection(f)
			w.max[s].ApplyCorrection(f)
		}
		if bad != nil {
			return Summary{}, bad
		}
	}
	sum.min, sum.max = w.min, w.max
	w.Reset(w.end, w.end)
	return sum, nil
}

// Summary 区间摘要, 全部字段为独立副本
type Summary struct {
	Start   uint64   // 区间起点
	End     uint64   // 区间终点（不含）
	Count   uint64   // 中心数量
	Average Averages // 平均值
	min     [statCount]Values
	max     [statCount]Values
}

// Min 统计量的最小值
func (s Summary) Min(stat Stat) Values { return s.min[stat] }

// Max 统计量的最大值
func (s Summary) Max(stat Stat) Values { return s.max[stat] }
