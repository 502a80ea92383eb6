// Package config 扫描配置。
//
// 配置来自 YAML 文件, 环境变量 GOLDBACH_* 与命令行参数依次覆盖。
package config

import (
	"errors"
	"fmt"
	"goldbach"
	"goldbach/bucket"
	"goldbach/deficit"
	"goldbach/types"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "GOLDBACH"

// ErrInvalid 配置不合法
var ErrInvalid = errors.New("配置不合法")

// Config 完整配置
type Config struct {
	Range   RangeConfig    `mapstructure:"range" yaml:"range"`
	Width   WidthConfig    `mapstructure:"width" yaml:"width"`
	Deficit DeficitConfig  `mapstructure:"deficit" yaml:"deficit"`
	Buckets []BucketConfig `mapstructure:"buckets" yaml:"buckets"`
	Sieve   SieveConfig    `mapstructure:"sieve" yaml:"sieve"`
	Output  OutputConfig   `mapstructure:"output" yaml:"output"`
	Log     LogConfig      `mapstructure:"log" yaml:"log"`
}

// RangeConfig 扫描区间 [start, end)
type RangeConfig struct {
	Start uint64 `mapstructure:"start" yaml:"start"`
	End   uint64 `mapstructure:"end" yaml:"end"`
}

// WidthConfig 半宽策略
type WidthConfig struct {
	Kind  string  `mapstructure:"kind" yaml:"kind"` // power 或 logsq
	Theta float64 `mapstructure:"theta" yaml:"theta"`
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`
}

// DeficitConfig 亏损估计参数
type DeficitConfig struct {
	Mode      int    `mapstructure:"mode" yaml:"mode"`
	Reduce    bool   `mapstructure:"reduce" yaml:"reduce"`
	SkipThree bool   `mapstructure:"skip_three" yaml:"skip_three"`
	Exposure  int    `mapstructure:"exposure" yaml:"exposure"`
	Scale     string `mapstructure:"scale" yaml:"scale"`       // sqrt 或 linear
	Boundary  string `mapstructure:"boundary" yaml:"boundary"` // inclusive 或 exclusive
}

// BucketConfig 单个区间划分, 每个划分对应一次独立扫描
type BucketConfig struct {
	Kind  string `mapstructure:"kind" yaml:"kind"` // decade 或 primorial
	Steps uint64 `mapstructure:"steps" yaml:"steps,omitempty"`
	K     int    `mapstructure:"k" yaml:"k,omitempty"`
}

// SieveConfig 素数表
type SieveConfig struct {
	Limit uint64 `mapstructure:"limit" yaml:"limit"` // 为 0 时按扫描区间自动确定
	File  string `mapstructure:"file" yaml:"file"`   // 非空时从文件加载
}

// OutputConfig 输出
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	Tie       string `mapstructure:"tie" yaml:"tie"` // first 或 last
	CSV       bool   `mapstructure:"csv" yaml:"csv"`
	JSON      bool   `mapstructure:"json" yaml:"json"`
	SQLite    string `mapstructure:"sqlite" yaml:"sqlite"` // 数据库路径, 为空时不写入
	Charts    bool   `mapstructure:"charts" yaml:"charts"`
	Plot      bool   `mapstructure:"plot" yaml:"plot"`
	Stdout    bool   `mapstructure:"stdout" yaml:"stdout"`
}

// LogConfig 日志
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("range.start", 1000)
	v.SetDefault("range.end", 100000)

	v.SetDefault("width.kind", "power")
	v.SetDefault("width.theta", types.DefaultWidthTheta)
	v.SetDefault("width.alpha", types.DefaultWidthAlpha)

	v.SetDefault("deficit.mode", types.DefaultResidueMode)
	v.SetDefault("deficit.reduce", false)
	v.SetDefault("deficit.skip_three", false)
	v.SetDefault("deficit.exposure", types.DefaultExposure)
	v.SetDefault("deficit.scale", types.ScaleSqrt.String())
	v.SetDefault("deficit.boundary", types.BoundaryInclusive.String())

	v.SetDefault("buckets", []map[string]any{
		{"kind": "decade", "steps": types.DefaultDecadeSteps},
		{"kind": "primorial", "k": types.DefaultPrimorialK},
	})

	v.SetDefault("sieve.limit", 0)
	v.SetDefault("sieve.file", "")

	v.SetDefault("output.directory", ".")
	v.SetDefault("output.prefix", types.DefaultOutputPrefix)
	v.SetDefault("output.tie", types.TieFirst.String())
	v.SetDefault("output.csv", true)
	v.SetDefault("output.json", false)
	v.SetDefault("output.sqlite", "")
	v.SetDefault("output.charts", false)
	v.SetDefault("output.plot", false)
	v.SetDefault("output.stdout", false)

	v.SetDefault("log.level", types.DefaultLogLevel)
}

// New 创建带默认值与环境变量绑定的 viper 实例
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load 读取配置, path 为空时仅使用默认值与环境变量
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置 %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 默认配置
func Default() *Config {
	cfg, err := Load(New(), "")
	if err != nil {
		panic(err)
	}
	return cfg
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Validate 检查配置
func (c *Config) Validate() error {
	if c.Range.Start < types.MinCenter {
		return invalid("起点 %d 小于 %d", c.Range.Start, types.MinCenter)
	}
	if c.Range.End <= c.Range.Start {
		return invalid("终点 %d 不大于起点 %d", c.Range.End, c.Range.Start)
	}
	if _, err := c.WidthPolicy(); err != nil {
		return err
	}
	if _, err := c.DeficitConfig(); err != nil {
		return err
	}
	if len(c.Buckets) == 0 {
		return invalid("至少需要一个区间划分")
	}
	if _, err := c.Boundaries(); err != nil {
		return err
	}
	if _, err := types.ParseTieBreak(c.Output.Tie); err != nil {
		return invalid("%v", err)
	}
	if c.Sieve.Limit > 0 && c.Sieve.File != "" {
		return invalid("sieve.limit 与 sieve.file 只能设置一个")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("未知日志级别 %q", c.Log.Level)
	}
	return nil
}

// WidthPolicy 半宽策略
func (c *Config) WidthPolicy() (goldbach.WidthPolicy, error) {
	kind, err := goldbach.ParseWidthKind(c.Width.Kind)
	if err != nil {
		return goldbach.WidthPolicy{}, invalid("%v", err)
	}
	policy := goldbach.WidthPolicy{Kind: kind, Theta: c.Width.Theta, Alpha: c.Width.Alpha}
	switch {
	case kind == goldbach.WidthPower && !(c.Width.Theta > 0 && c.Width.Theta < 1):
		return policy, invalid("幂次指数 %g 不在 (0, 1) 内", c.Width.Theta)
	case kind == goldbach.WidthLogSquared && !(c.Width.Alpha > 0):
		return policy, invalid("对数平方系数 %g 必须为正", c.Width.Alpha)
	}
	return policy, nil
}

// DeficitConfig 亏损估计参数
func (c *Config) DeficitConfig() (deficit.Config, error) {
	mode := types.ResidueMode(c.Deficit.Mode)
	if c.Deficit.Mode != int(types.ResidueAsymmetric) && c.Deficit.Mode != int(types.ResidueSymmetric) {
		return deficit.Config{}, invalid("剩余类模式 %d 不是 1 或 2", c.Deficit.Mode)
	}
	if c.Deficit.Exposure < 0 {
		return deficit.Config{}, invalid("尾部外推数量 %d 为负", c.Deficit.Exposure)
	}
	scale, err := types.ParseWidthScale(c.Deficit.Scale)
	if err != nil {
		return deficit.Config{}, invalid("%v", err)
	}
	boundary, err := types.ParseBoundaryPolicy(c.Deficit.Boundary)
	if err != nil {
		return deficit.Config{}, invalid("%v", err)
	}
	return deficit.Config{
		Reduce:    c.Deficit.Reduce,
		Mode:      mode,
		SkipThree: c.Deficit.SkipThree,
		Exposure:  c.Deficit.Exposure,
		Scale:     scale,
		Boundary:  boundary,
	}, nil
}

// Boundaries 全部区间划分
func (c *Config) Boundaries() ([]bucket.Boundaries, error) {
	list := make([]bucket.Boundaries, 0, len(c.Buckets))
	for i, b := range c.Buckets {
		var (
			boundaries bucket.Boundaries
			err        error
		)
		switch b.Kind {
		case "decade":
			boundaries, err = bucket.NewDecade(b.Steps)
		case "primorial":
			boundaries, err = bucket.NewPrimorial(b.K)
		default:
			err = fmt.Errorf("未知区间划分 %q", b.Kind)
		}
		if err != nil {
			return nil, invalid("buckets[%d]: %v", i, err)
		}
		list = append(list, boundaries)
	}
	return list, nil
}

// Tie 并列约定
func (c *Config) Tie() types.TieBreak {
	tie, _ := types.ParseTieBreak(c.Output.Tie)
	return tie
}

// Save 以 YAML 格式写出配置
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("编码配置: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
