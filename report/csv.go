package report

import (
	"encoding/csv"
	"goldbach/extrema"
	"goldbach/types"
	"io"
)

// CSV 每个区间一行的 CSV 输出
type CSV struct {
	w   *csv.Writer
	tie types.TieBreak
}

// NewCSV 创建 CSV 输出
func NewCSV(w io.Writer, tie types.TieBreak) *CSV {
	return &CSV{w: csv.NewWriter(w), tie: tie}
}

// Begin 写表头
func (c *CSV) Begin(Meta) error { return c.w.Write(Header()) }

// Row 写一行
func (c *CSV) Row(s extrema.Summary) error { return c.w.Write(NewRow(s, c.tie).Fields()) }

// End 刷新缓冲
func (c *CSV) End() error {
	c.w.Flush()
	return c.w.Error()
}

// Tee 同时输出到多个 Sink
type Tee []Sink

// Begin 扫描开始
func (t Tee) Begin(meta Meta) error {
	for _, s := range t {
		if err := s.Begin(meta); err != nil {
			return err
		}
	}
	return nil
}

// Row 每个区间一行
func (t Tee) Row(summary extrema.Summary) error {
	for _, s := range t {
		if err := s.Row(summary); err != nil {
			return err
		}
	}
	return nil
}

// End 全部 Sink 都会结束, 返回第一个错误
func (t Tee) End() error {
	var first error
	for _, s := range t {
		if err := s.End(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
