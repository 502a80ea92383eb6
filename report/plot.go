package report

import (
	"fmt"
	"goldbach/extrema"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot 比值曲线 PNG
type Plot struct {
	Record
	Width, Height vg.Length // 图像尺寸, 为零时取 8×4 英寸
}

// points 统计量的平均、最小、最大曲线
func (p *Plot) points(stat extrema.Stat) (avg, lo, hi plotter.XYs) {
	name := stat.String()
	for _, row := range p.Rows {
		mn, okMin := row.Min[name]
		mx, okMax := row.Max[name]
		if !okMin || !okMax {
			continue
		}
		x := float64(row.Start)
		avg = append(avg, plotter.XY{X: x, Y: row.Average[name]})
		lo = append(lo, plotter.XY{X: x, Y: mn.Value})
		hi = append(hi, plotter.XY{X: x, Y: mx.Value})
	}
	return avg, lo, hi
}

// WriteTo 输出 PNG
func (p *Plot) WriteTo(w io.Writer) (int64, error) {
	avg, lo, hi := p.points(extrema.StatRatio)
	if len(avg) == 0 {
		return 0, fmt.Errorf("没有可绘制的区间")
	}
	img := plot.New()
	img.Title.Text = fmt.Sprintf("%s observed/predicted", p.Meta.Name)
	img.X.Label.Text = "n"
	img.Y.Label.Text = "ratio"
	img.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(img, "avg", avg, "min", lo, "max", hi); err != nil {
		return 0, err
	}
	width, height := p.Width, p.Height
	if width == 0 || height == 0 {
		width, height = 8*vg.Inch, 4*vg.Inch
	}
	wt, err := img.WriterTo(width, height, "png")
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}
