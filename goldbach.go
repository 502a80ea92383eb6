// Package goldbach 短区间 Goldbach 型素数对的亏损包络扫描。
//
// 对每个中心 n, 以亏损估计给出区间 [n-w, n+w] 的包络, 以插值修正的
// Hardy–Littlewood 预测与实测素数对数量比较, 并按聚合区间输出极值摘要。
package goldbach

import (
	"context"
	"errors"
	"fmt"
	"goldbach/bucket"
	"goldbach/correction"
	"goldbach/deficit"
	"goldbach/extrema"
	"goldbach/maths"
	"goldbach/report"
	"goldbach/sieve"
	"goldbach/types"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrBadRange 扫描区间不合法
var ErrBadRange = errors.New("扫描区间不合法")

// Options 单次扫描参数
type Options struct {
	Name    string           // 分析名称
	Width   WidthPolicy      // 半宽策略
	Deficit deficit.Config   // 亏损估计参数
	Exact   correction.Exact // 精确修正函数, 为空时使用 correction.Density
}

// Stats 扫描计数
type Stats struct {
	Centers       uint64 // 已处理中心数量
	Buckets       uint64 // 已输出区间数量
	DeficitHits   uint64 // 亏损缓存命中
	DeficitMisses uint64 // 亏损重新计算
	ExactCalls    uint64 // 精确修正调用次数
}

// Analysis 一组有状态的估计器, 同一时间只能运行一次扫描
type Analysis struct {
	opt     Options
	table   *sieve.Table
	buckets bucket.Boundaries
	sink    report.Sink
	log     logrus.FieldLogger

	deficit *deficit.Estimator
	interp  *correction.Interpolator
	window  *extrema.Window
	stats   Stats
}

// NewAnalysis 创建扫描
func NewAnalysis(opt Options, table *sieve.Table, b bucket.Boundaries, sink report.Sink, log logrus.FieldLogger) (*Analysis, error) {
	if table == nil || b == nil || sink == nil {
		return nil, fmt.Errorf("扫描 %q 缺少素数表、区间划分或输出", opt.Name)
	}
	if !opt.Deficit.Mode.Valid() {
		return nil, fmt.Errorf("剩余类模式 %d 不合法", opt.Deficit.Mode)
	}
	if opt.Deficit.Exposure < 0 {
		return nil, fmt.Errorf("尾部外推数量 %d 不合法", opt.Deficit.Exposure)
	}
	if opt.Exact == nil {
		opt.Exact = correction.Density{}
	}
	if opt.Name == "" {
		opt.Name = b.Name()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analysis{
		opt:     opt,
		table:   table,
		buckets: b,
		sink:    sink,
		log:     log.WithField("analysis", opt.Name),
		deficit: deficit.New(opt.Deficit),
		interp:  correction.NewInterpolator(opt.Exact, opt.Width.Func()),
		window:  extrema.NewWindow(0, 0),
	}, nil
}

// Name 分析名称
func (a *Analysis) Name() string { return a.opt.Name }

// Stats 最近一次扫描的计数
func (a *Analysis) Stats() Stats { return a.stats }

// Check 检查 [start, end) 是否可以扫描
func (a *Analysis) Check(start, end uint64) error {
	if start < types.MinCenter || end <= start {
		return fmt.Errorf("[%d, %d): %w", start, end, ErrBadRange)
	}
	last := end - 1
	if need := last + Width(a.opt.Width, last); need > a.table.Limit() {
		return fmt.Errorf("n=%d 需要素数表上限 %d, 实际 %d: %w", last, need, a.table.Limit(), sieve.ErrOutOfRange)
	}
	return nil
}

// Run 扫描 [start, end), 每个聚合区间输出一行摘要
// 上下文在区间之间检查, 出现错误时立即中止
func (a *Analysis) Run(ctx context.Context, start, end uint64) error {
	if err := a.Check(start, end); err != nil {
		return err
	}
	a.deficit.Reset()
	a.stats = Stats{}
	meta := report.Meta{
		RunID:   uuid.NewString(),
		Name:    a.opt.Name,
		Buckets: a.buckets.Name(),
		Width:   a.opt.Width.String(),
		Deficit: describe(a.opt.Deficit),
		Start:   start,
		End:     end,
		Created: time.Now(),
	}
	log := a.log.WithField("run", meta.RunID)
	log.WithFields(logrus.Fields{"start": start, "end": end, "buckets": meta.Buckets, "width": meta.Width}).Info("开始扫描")
	if err := a.sink.Begin(meta); err != nil {
		return fmt.Errorf("输出开始: %w", err)
	}
	begin := time.Now()
	for _, r := range bucket.Split(a.buckets, start, end) {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary, err := a.bucket(r)
		if err != nil {
			return err
		}
		if err := a.sink.Row(summary); err != nil {
			return fmt.Errorf("输出区间 [%d, %d): %w", r.Start, r.End, err)
		}
		a.stats.Buckets++
		log.WithFields(logrus.Fields{
			"start":      r.Start,
			"end":        r.End,
			"ratio":      summary.Average.Ratio,
			"envelope":   summary.Average.Envelope,
			"ratioMin":   summary.Min(extrema.StatRatio).First.Value,
			"exactCalls": a.interp.Calls(),
		}).Debug("区间完成")
	}
	if err := a.sink.End(); err != nil {
		return fmt.Errorf("输出结束: %w", err)
	}
	a.stats.DeficitHits, a.stats.DeficitMisses = a.deficit.Stats()
	log.WithFields(logrus.Fields{
		"centers":  a.stats.Centers,
		"buckets":  a.stats.Buckets,
		"hits":     a.stats.DeficitHits,
		"misses":   a.stats.DeficitMisses,
		"exact":    a.stats.ExactCalls,
		"duration": time.Since(begin).Round(time.Millisecond),
	}).Info("扫描完成")
	return nil
}

// bucket 处理单个聚合区间
func (a *Analysis) bucket(r bucket.Range) (extrema.Summary, error) {
	calls := a.interp.Calls()
	a.interp.Init(r.Start, r.End)
	a.interp.Prescan()
	a.window.Reset(r.Start, r.End)
	for n := r.Start; n < r.End; n++ {
		p, err := a.point(n)
		if err != nil {
			return extrema.Summary{}, err
		}
		if err := a.window.Add(p); err != nil {
			return extrema.Summary{}, err
		}
		a.stats.Centers++
	}
	summary, err := a.window.Finalize(a.interp.Exact)
	a.stats.ExactCalls += a.interp.Calls() - calls
	return summary, err
}

// point 单个中心的包络、预测与实测
func (a *Analysis) point(n uint64) (extrema.Point, error) {
	w := Width(a.opt.Width, n)
	divisors, err := a.table.OddDivisors(n)
	if err != nil {
		return extrema.Point{}, err
	}
	observed, err := a.table.CountPairs(n, w)
	if err != nil {
		return extrema.Point{}, err
	}
	span := maths.Float(w + 1)
	return extrema.Point{
		N:          n,
		Span:       w,
		Observed:   observed,
		Base:       maths.SingularFactor(divisors) * span / maths.LogSquared(n),
		Correction: a.interp.Query(n, w),
		Envelope:   span * a.deficit.Evaluate(n, w),
	}, nil
}

func describe(cfg deficit.Config) string {
	return fmt.Sprintf("mode=%d reduce=%t skip3=%t exposure=%d scale=%s boundary=%s",
		cfg.Mode, cfg.Reduce, cfg.SkipThree, cfg.Exposure, cfg.Scale, cfg.Boundary)
}

// RunAll 并发运行相互独立的扫描, 任一失败时取消其余扫描
func RunAll(ctx context.Context, analyses []*Analysis, start, end uint64) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range analyses {
		a := a
		g.Go(func() error {
			if err := a.Run(ctx, start, end); err != nil {
				return fmt.Errorf("扫描 %s: %w", a.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
