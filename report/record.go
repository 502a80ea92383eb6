package report

import (
	"encoding/json"
	"goldbach/extrema"
	"goldbach/maths"
	"goldbach/types"
	"io"

	"gonum.org/v1/gonum/stat"
)

// Record 内存中保存全部区间摘要
type Record struct {
	Meta Meta           `json:"meta"`
	Rows []Row          `json:"rows"`
	Tie  types.TieBreak `json:"-"`
}

// Overall 全部区间的汇总
type Overall struct {
	Buckets   int         `json:"buckets"`
	Count     uint64      `json:"count"`
	RatioMean maths.Float `json:"ratio_mean"` // 区间平均比值的均值（按中心数加权）
	RatioStd  maths.Float `json:"ratio_std"`
	RatioMin  maths.Float `json:"ratio_min"`
	RatioMax  maths.Float `json:"ratio_max"`
}

// Begin 扫描开始
func (r *Record) Begin(meta Meta) error {
	r.Meta, r.Rows = meta, r.Rows[:0]
	return nil
}

// Row 记录摘要
func (r *Record) Row(s extrema.Summary) error {
	r.Rows = append(r.Rows, NewRow(s, r.Tie))
	return nil
}

// End 扫描结束
func (r *Record) End() error { return nil }

// Series 各区间某统计量的平均值
func (r *Record) Series(s extrema.Stat) []maths.Float {
	name := s.String()
	values := make([]maths.Float, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row.Average[name]
	}
	return values
}

// Overall 汇总比值
func (r *Record) Overall() Overall {
	o := Overall{Buckets: len(r.Rows)}
	name := extrema.StatRatio.String()
	var x, weights []maths.Float
	for _, row := range r.Rows {
		o.Count += row.Count
		if row.Count == 0 {
			continue
		}
		if len(x) == 0 {
			o.RatioMin, o.RatioMax = row.Min[name].Value, row.Max[name].Value
		}
		x = append(x, row.Average[name])
		weights = append(weights, maths.Float(row.Count))
		o.RatioMin = min(o.RatioMin, row.Min[name].Value)
		o.RatioMax = max(o.RatioMax, row.Max[name].Value)
	}
	switch len(x) {
	case 0:
	case 1:
		o.RatioMean = x[0]
	default:
		o.RatioMean, o.RatioStd = stat.MeanStdDev(x, weights)
	}
	return o
}

// Render 格式和输出内容
func (r *Record) Render(w io.Writer) error {
	return json.NewEncoder(w).Encode(struct {
		*Record
		Overall Overall `json:"overall"`
	}{r, r.Overall()})
}
