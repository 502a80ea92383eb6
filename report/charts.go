package report

import (
	"fmt"
	"goldbach/extrema"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 区间曲线绘制
type Charts struct {
	Record
}

// newLine 统一样式的折线图
func newLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	return line
}

// addStat 为统计量添加平均、最小、最大三条曲线
func (c *Charts) addStat(line *charts.Line, stat extrema.Stat) {
	name := stat.String()
	avg := make([]opts.LineData, len(c.Rows))
	lo := make([]opts.LineData, len(c.Rows))
	hi := make([]opts.LineData, len(c.Rows))
	for i, row := range c.Rows {
		avg[i] = opts.LineData{Value: row.Average[name]}
		// 空区间留空
		if mn, ok := row.Min[name]; ok {
			lo[i] = opts.LineData{Value: mn.Value, Name: fmt.Sprintf("n=%d", mn.Position)}
		} else {
			lo[i] = opts.LineData{Value: "-"}
		}
		if mx, ok := row.Max[name]; ok {
			hi[i] = opts.LineData{Value: mx.Value, Name: fmt.Sprintf("n=%d", mx.Position)}
		} else {
			hi[i] = opts.LineData{Value: "-"}
		}
	}
	line.AddSeries("平均"+name, avg).
		AddSeries("最小"+name, lo).
		AddSeries("最大"+name, hi)
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	x := make([]string, len(c.Rows))
	for i, row := range c.Rows {
		x[i] = fmt.Sprintf("%d", row.Start)
	}
	ratio := newLine("比值曲线", "实测/预测素数对比值随区间变化曲线")
	ratio.SetXAxis(x)
	c.addStat(ratio, extrema.StatRatio)

	envelope := newLine("包络曲线", "亏损包络与实测素数对数量")
	envelope.SetXAxis(x)
	c.addStat(envelope, extrema.StatEnvelope)
	c.addStat(envelope, extrema.StatPairs)

	deficiency := newLine("亏缺曲线", "1 - 实测/预测")
	deficiency.SetXAxis(x)
	c.addStat(deficiency, extrema.StatDeficiency)

	// 构建界面
	page := components.NewPage()
	page.AddCharts(
		ratio,
		envelope,
		deficiency,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
