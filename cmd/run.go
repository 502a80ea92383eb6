package main

import (
	"context"
	"fmt"
	"goldbach"
	"goldbach/config"
	"goldbach/report"
	"goldbach/sieve"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "按配置运行全部区间划分的扫描",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		log := setupLogger(cfg.Log)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return run(ctx, cfg, log)
	},
}

func init() {
	runCmd.Flags().Uint64("start", 0, "扫描起点 (覆盖配置)")
	runCmd.Flags().Uint64("end", 0, "扫描终点, 不含 (覆盖配置)")
	runCmd.Flags().String("sieve-file", "", "素数表文件 (覆盖配置)")
	runCmd.Flags().String("output-dir", "", "输出目录 (覆盖配置)")
	bind := map[string]string{
		"range.start":      "start",
		"range.end":        "end",
		"sieve.file":       "sieve-file",
		"output.directory": "output-dir",
	}
	for key, flag := range bind {
		v.BindPFlag(key, runCmd.Flags().Lookup(flag))
	}
}

// sieveLimit 扫描所需的素数表上限
func sieveLimit(cfg *config.Config, policy goldbach.WidthPolicy) uint64 {
	if cfg.Sieve.Limit > 0 {
		return cfg.Sieve.Limit
	}
	last := cfg.Range.End - 1
	return max(last+goldbach.Width(policy, last), 2)
}

// loadTable 加载或生成素数表
func loadTable(cfg *config.Config, policy goldbach.WidthPolicy, log logrus.FieldLogger) (*sieve.Table, error) {
	begin := time.Now()
	if cfg.Sieve.File != "" {
		table, err := sieve.LoadFile(cfg.Sieve.File)
		if err != nil {
			return nil, fmt.Errorf("加载素数表 %s: %w", cfg.Sieve.File, err)
		}
		log.WithFields(logrus.Fields{"file": cfg.Sieve.File, "limit": table.Limit(), "duration": time.Since(begin)}).Info("素数表已加载")
		return table, nil
	}
	table, err := sieve.New(sieveLimit(cfg, policy))
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"limit": table.Limit(), "duration": time.Since(begin)}).Info("素数表已生成")
	return table, nil
}

// output 单个扫描的输出集合
type output struct {
	name    string
	dir     string
	sink    report.Sink
	charts  *report.Charts // JSON、HTML、PNG 共用的内存记录
	closers []func() error
}

// newOutput 按配置组装输出
func newOutput(cfg *config.Config, name string) (*output, error) {
	out := &output{name: name, dir: cfg.Output.Directory}
	if err := os.MkdirAll(out.dir, 0o755); err != nil {
		return nil, err
	}
	tie := cfg.Tie()
	var tee report.Tee
	if cfg.Output.CSV {
		file, err := os.Create(out.path("csv"))
		if err != nil {
			return nil, err
		}
		out.closers = append(out.closers, file.Close)
		tee = append(tee, report.NewCSV(file, tie))
	}
	if cfg.Output.Stdout {
		tee = append(tee, report.NewCSV(os.Stdout, tie))
	}
	if cfg.Output.SQLite != "" {
		db, err := report.OpenSQLite(cfg.Output.SQLite, tie)
		if err != nil {
			out.Close()
			return nil, err
		}
		out.closers = append(out.closers, db.Close)
		tee = append(tee, db)
	}
	if cfg.Output.JSON || cfg.Output.Charts || cfg.Output.Plot {
		out.charts = &report.Charts{Record: report.Record{Tie: tie}}
		tee = append(tee, out.charts)
	}
	out.sink = tee
	return out, nil
}

func (o *output) path(ext string) string {
	return filepath.Join(o.dir, fmt.Sprintf("%s.%s", o.name, ext))
}

// finish 写出需要完整记录的文件
func (o *output) finish(cfg *config.Config) error {
	if o.charts == nil {
		return nil
	}
	write := func(ext string, render func(f *os.File) error) error {
		file, err := os.Create(o.path(ext))
		if err != nil {
			return err
		}
		if err := render(file); err != nil {
			file.Close()
			return fmt.Errorf("写出 %s: %w", o.path(ext), err)
		}
		return file.Close()
	}
	if cfg.Output.JSON {
		if err := write("json", func(f *os.File) error { return o.charts.Record.Render(f) }); err != nil {
			return err
		}
	}
	if cfg.Output.Charts {
		if err := write("html", func(f *os.File) error { return o.charts.Render(f) }); err != nil {
			return err
		}
	}
	if cfg.Output.Plot {
		plot := &report.Plot{Record: o.charts.Record}
		if err := write("png", func(f *os.File) error { _, err := plot.WriteTo(f); return err }); err != nil {
			return err
		}
	}
	return nil
}

// Close 关闭文件与数据库
func (o *output) Close() error {
	var first error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	o.closers = nil
	return first
}

// run 为每个区间划分建立独立扫描并并发运行
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	policy, err := cfg.WidthPolicy()
	if err != nil {
		return err
	}
	deficitCfg, err := cfg.DeficitConfig()
	if err != nil {
		return err
	}
	boundaries, err := cfg.Boundaries()
	if err != nil {
		return err
	}
	table, err := loadTable(cfg, policy, log)
	if err != nil {
		return err
	}
	var (
		analyses []*goldbach.Analysis
		outputs  []*output
	)
	defer func() {
		for _, o := range outputs {
			o.Close()
		}
	}()
	for _, b := range boundaries {
		name := fmt.Sprintf("%s-%s", cfg.Output.Prefix, b.Name())
		out, err := newOutput(cfg, name)
		if err != nil {
			return err
		}
		outputs = append(outputs, out)
		a, err := goldbach.NewAnalysis(goldbach.Options{Name: name, Width: policy, Deficit: deficitCfg}, table, b, out.sink, log)
		if err != nil {
			return err
		}
		if err := a.Check(cfg.Range.Start, cfg.Range.End); err != nil {
			return err
		}
		analyses = append(analyses, a)
	}
	if err := goldbach.RunAll(ctx, analyses, cfg.Range.Start, cfg.Range.End); err != nil {
		return err
	}
	for _, o := range outputs {
		if err := o.finish(cfg); err != nil {
			return err
		}
		if err := o.Close(); err != nil {
			return err
		}
	}
	return nil
}
