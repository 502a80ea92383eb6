package config

import (
	"errors"
	"goldbach"
	"goldbach/types"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Range.Start != 1000 || cfg.Range.End != 100000 {
		t.Errorf("Unexpected default range %+v", cfg.Range)
	}
	if len(cfg.Buckets) != 2 || cfg.Buckets[0].Kind != "decade" || cfg.Buckets[0].Steps != 9 || cfg.Buckets[1].K != 4 {
		t.Errorf("Unexpected default buckets %+v", cfg.Buckets)
	}
	d, err := cfg.DeficitConfig()
	if err != nil {
		t.Fatal(err)
	}
	if d.Mode != types.ResidueSymmetric || d.Exposure != types.DefaultExposure || d.Scale != types.ScaleSqrt {
		t.Errorf("Unexpected deficit config %+v", d)
	}
	w, err := cfg.WidthPolicy()
	if err != nil || w.Kind != goldbach.WidthPower || w.Theta != 0.5 {
		t.Errorf("Unexpected width policy %+v %v", w, err)
	}
	b, err := cfg.Boundaries()
	if err != nil || len(b) != 2 || b[0].Name() != "decade9" || b[1].Name() != "primorial4" {
		t.Errorf("Unexpected boundaries %v %v", b, err)
	}
	if cfg.Tie() != types.TieFirst {
		t.Errorf("Expected first tie-break by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goldbach.yaml")
	data := `
range:
  start: 5000
  end: 6000
width:
  kind: logsq
  alpha: 2.5
deficit:
  mode: 1
  reduce: true
  boundary: exclusive
buckets:
  - kind: primorial
    k: 2
output:
  tie: last
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Range.Start != 5000 || cfg.Range.End != 6000 {
		t.Errorf("Unexpected range %+v", cfg.Range)
	}
	if w, _ := cfg.WidthPolicy(); w.Kind != goldbach.WidthLogSquared || w.Alpha != 2.5 {
		t.Errorf("Unexpected width %+v", w)
	}
	d, _ := cfg.DeficitConfig()
	if d.Mode != types.ResidueAsymmetric || !d.Reduce || d.Boundary != types.BoundaryExclusive || d.Exposure != types.DefaultExposure {
		t.Errorf("Unexpected deficit %+v", d)
	}
	if len(cfg.Buckets) != 1 || cfg.Buckets[0].K != 2 {
		t.Errorf("Expected file buckets to replace defaults, got %+v", cfg.Buckets)
	}
	if cfg.Tie() != types.TieLast || cfg.Log.Level != "debug" {
		t.Errorf("Unexpected output/log %+v %+v", cfg.Output, cfg.Log)
	}
	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GOLDBACH_RANGE_END", "5000")
	t.Setenv("GOLDBACH_DEFICIT_SKIP_THREE", "true")
	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Range.End != 5000 || !cfg.Deficit.SkipThree {
		t.Errorf("Expected environment overrides, got %+v %+v", cfg.Range, cfg.Deficit)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"start":     func(c *Config) { c.Range.Start = 2 },
		"end":       func(c *Config) { c.Range.End = c.Range.Start },
		"mode":      func(c *Config) { c.Deficit.Mode = 3 },
		"exposure":  func(c *Config) { c.Deficit.Exposure = -1 },
		"scale":     func(c *Config) { c.Deficit.Scale = "cubic" },
		"boundary":  func(c *Config) { c.Deficit.Boundary = "open" },
		"width":     func(c *Config) { c.Width.Kind = "cubic" },
		"theta":     func(c *Config) { c.Width.Theta = 1.5 },
		"alpha":     func(c *Config) { c.Width.Kind, c.Width.Alpha = "logsq", 0 },
		"bucket":    func(c *Config) { c.Buckets = []BucketConfig{{Kind: "weekly"}} },
		"steps":     func(c *Config) { c.Buckets = []BucketConfig{{Kind: "decade"}} },
		"k":         func(c *Config) { c.Buckets = []BucketConfig{{Kind: "primorial", K: 0}} },
		"nobuckets": func(c *Config) { c.Buckets = nil },
		"tie":       func(c *Config) { c.Output.Tie = "middle" },
		"sieve":     func(c *Config) { c.Sieve.Limit, c.Sieve.File = 100, "primes.bin" },
		"log":       func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
}

// TestSaveLoad 写出后重新读取得到相同配置
func TestSaveLoad(t *testing.T) {
	cfg := Default()
	cfg.Range.End = 123456
	cfg.Output.SQLite = "runs.db"
	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(New(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}
