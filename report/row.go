package report

import (
	"goldbach/extrema"
	"goldbach/maths"
	"goldbach/types"
	"strconv"
)

// Extreme 按并列约定选出的极值
type Extreme struct {
	Value    maths.Float `json:"value"`
	Position uint64      `json:"position"`
	Span     uint64      `json:"span"`
}

// Row 展平后的区间摘要
type Row struct {
	Start   uint64                 `json:"start"`
	End     uint64                 `json:"end"`
	Count   uint64                 `json:"count"`
	Average map[string]maths.Float `json:"average"`
	Min     map[string]Extreme     `json:"min"`
	Max     map[string]Extreme     `json:"max"`
}

// NewRow 展平摘要, tie 决定取最早或最近的极值
func NewRow(s extrema.Summary, tie types.TieBreak) Row {
	row := Row{
		Start:   s.Start,
		End:     s.End,
		Count:   s.Count,
		Average: make(map[string]maths.Float),
		Min:     make(map[string]Extreme),
		Max:     make(map[string]Extreme),
	}
	for _, stat := range extrema.Stats() {
		name := stat.String()
		row.Average[name] = s.Average.Of(stat)
		if s.Count == 0 {
			continue
		}
		mn, mx := s.Min(stat).Pick(tie), s.Max(stat).Pick(tie)
		row.Min[name] = Extreme{Value: mn.Value, Position: mn.Position, Span: mn.Span}
		row.Max[name] = Extreme{Value: mx.Value, Position: mx.Position, Span: mx.Span}
	}
	return row
}

// Header 表头
func Header() []string {
	header := []string{"start", "end", "count"}
	for _, stat := range extrema.Stats() {
		name := stat.String()
		header = append(header, "avg_"+name, "min_"+name, "min_"+name+"_at", "max_"+name, "max_"+name+"_at")
	}
	return header
}

// Fields 与 Header 对应的字段
func (r Row) Fields() []string {
	fields := []string{
		strconv.FormatUint(r.Start, 10),
		strconv.FormatUint(r.End, 10),
		strconv.FormatUint(r.Count, 10),
	}
	for _, stat := range extrema.Stats() {
		name := stat.String()
		mn, okMin := r.Min[name]
		mx, okMax := r.Max[name]
		fields = append(fields,
			formatFloat(r.Average[name]),
			formatExtreme(mn.Value, okMin), formatPosition(mn.Position, okMin),
			formatExtreme(mx.Value, okMax), formatPosition(mx.Position, okMax),
		)
	}
	return fields
}

func formatFloat(v maths.Float) string { return strconv.FormatFloat(v, 'g', 12, 64) }

func formatExtreme(v maths.Float, ok bool) string {
	if !ok {
		return ""
	}
	return formatFloat(v)
}

func formatPosition(p uint64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatUint(p, 10)
}
