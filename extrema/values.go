// Package extrema 窗口内极值的增量跟踪与回溯修正。
package extrema

import (
	"goldbach/maths"
	"goldbach/types"
)

// State 极值跟踪状态
type State uint8

// 跟踪状态常量定义
const (
	Empty     State = iota // 尚无记录
	Tracking               // 已有记录
	Finalized              // 已修正, 等待输出与重置
)

func (s State) String() string {
	switch s {
	case Tracking:
		return "Tracking"
	case Finalized:
		return "Finalized"
	}
	return "Empty"
}

// Kind 极值方向
type Kind uint8

// 极值方向常量定义
const (
	Minimum Kind = iota
	Maximum
)

// better a 是否严格优于 b
func (k Kind) better(a, b maths.Float) bool {
	if k == Maximum {
		return a > b
	}
	return a < b
}

// Record 一次极值记录
type Record struct {
	Value    maths.Float // 记录值
	Baseline maths.Float // 缩放基线
	Position uint64      // 中心位置
	Span     uint64      // 区间半宽
	Factor   maths.Float // 记录时生效的修正系数
}

// rescale 用新系数替换旧系数
//
//	value = baseline + (value - baseline) / oldFactor · newFactor
func (r *Record) rescale(factor maths.Float) {
	if r.Factor != 0 {
		r.Value = r.Baseline + (r.Value-r.Baseline)/r.Factor*factor
	}
	r.Factor = factor
}

// Values 单个统计量的极值
// First 仅在严格改进时更新, Last 在不劣于当前值时更新
type Values struct {
	Current maths.Float // 最近一次记录值
	First   Record      // 最早达到极值的记录
	Last    Record      // 最近达到极值的记录
	kind    Kind
	state   State
}

// State 当前状态
func (v Values) State() State { return v.state }

// Kind 极值方向
func (v Values) Kind() Kind { return v.kind }

// Reset 重置为空
func (v *Values) Reset() { *v = Values{} }

// RecordMinimum 记录最小值候选
func (v *Values) RecordMinimum(value, baseline maths.Float, position, span uint64, factor maths.Float) {
	v.record(Minimum, Record{Value: value, Baseline: baseline, Position: position, Span: span, Factor: factor})
}

// RecordMaximum 记录最大值候选
func (v *Values) RecordMaximum(value, baseline maths.Float, position, span uint64, factor maths.Float) {
	v.record(Maximum, Record{Value: value, Baseline: baseline, Position: position, Span: span, Factor: factor})
}

func (v *Values) record(kind Kind, rec Record) {
	v.Current = rec.Value
	if v.state != Tracking {
		// 首次记录两个槽位同时初始化
		v.kind, v.state = kind, Tracking
		v.First, v.Last = rec, rec
		return
	}
	if kind.better(rec.Value, v.First.Value) {
		v.First = rec
	}
	if !kind.better(v.Last.Value, rec.Value) {
		v.Last = rec
	}
}

// ApplyCorrection 按记录位置的新修正系数回溯缩放两个槽位
// 缩放后两个槽位的相对顺序可能颠倒, 取严格更优者合并
func (v *Values) ApplyCorrection(newFactorAt func(position, span uint64) maths.Float) {
	if v.state == Empty {
		return
	}
	v.First.rescale(newFactorAt(v.First.Position, v.First.Span))
	v.Last.rescale(newFactorAt(v.Last.Position, v.Last.Span))
	switch {
	case v.kind.better(v.Last.Value, v.First.Value):
		v.First = v.Last
	case v.kind.better(v.First.Value, v.Last.Value):
		v.Last = v.First
	}
	v.state = Finalized
}

// Pick 按并列约定取记录
func (v Values) Pick(tie types.TieBreak) Record {
	if tie == types.TieLast {
		return v.Last
	}
	return v.First
}
