// Package deficit 基于小素数剩余类对齐的乘性亏损估计。
//
// 对中心 n 和半宽 w, 估计区间 [n-w, n+w] 中未被小素数剩余类排除的比例,
// 结果以 exp(Σ log(term)) 的形式给出以避免中间值溢出。
// 这是未经证明的一阶启发式, 调用方需要自行配合保守界使用。
package deficit

import (
	"goldbach/maths"
	"goldbach/types"
	"math"
)

// Config 估计器参数
type Config struct {
	Reduce    bool                 // p 整除 n 时剩余类数量减一
	Mode      types.ResidueMode    // 剩余类模式 1 或 2
	SkipThree bool                 // 除非 Reduce 且 3|n, 否则跳过 p=3
	Exposure  int                  // 尾部外推素数上限
	Scale     types.WidthScale     // 宽度约定
	Boundary  types.BoundaryPolicy // 模数边界策略
}

// DefaultConfig 默认参数
func DefaultConfig() Config {
	return Config{
		Mode:     types.ResidueMode(types.DefaultResidueMode),
		Exposure: types.DefaultExposure,
		Scale:    types.ScaleSqrt,
		Boundary: types.BoundaryInclusive,
	}
}

// normalize 修正非法参数, 估计器本身不返回错误
func (cfg Config) normalize() Config {
	if !cfg.Mode.Valid() {
		cfg.Mode = types.ResidueSymmetric
	}
	if cfg.Exposure < 0 {
		cfg.Exposure = 0
	}
	return cfg
}

// residue 素数 p 在中心 n 下的排除剩余类数量, ok 为假表示跳过或已耗尽
func (cfg Config) residue(p, n uint64) (r uint64, ok bool) {
	divides := n%p == 0
	if p == 3 && cfg.SkipThree && !(cfg.Reduce && divides) {
		return 0, false
	}
	r = uint64(cfg.Mode)
	if cfg.Reduce && divides {
		r--
	}
	return r, r > 0
}

// admits 模数平方是否落在窗口支撑内
func (cfg Config) admits(square, w uint64) bool {
	if cfg.Boundary == types.BoundaryExclusive {
		return square < w
	}
	return square <= w
}

// scale 尾部缩放系数
func (cfg Config) scale(modulus, w uint64) maths.Float {
	m := maths.Float(modulus)
	if cfg.Scale == types.ScaleLinear {
		return maths.Float(w) / (m * m)
	}
	return math.Sqrt(maths.Float(w)) / m
}

// tailTerm 单个尾部素数的贡献
func (cfg Config) tailTerm(q, r uint64) maths.Float {
	fq := maths.Float(q)
	term := math.Log1p(-maths.Float(r) / fq)
	if cfg.Scale == types.ScaleLinear {
		return term / fq
	}
	return term / (fq * fq)
}

// value 由分解结果计算最终亏损比例
func (cfg Config) value(logSum, tail maths.Float, modulus, w uint64) maths.Float {
	return math.Exp(logSum + math.Max(cfg.scale(modulus, w), 1)*tail)
}

// Breakdown 一次完整计算的分解
type Breakdown struct {
	Committed  int         // 提交素数数量
	Modulus    uint64      // 提交模数 Π(p-r)
	Next       uint64      // 下一模数, 0 表示素数表耗尽
	LogSum     maths.Float // Σ log((p-r)/p)
	TailFactor maths.Float // Σ 尾项
	TailTerms  int         // 尾项数量
}

// Compute 不使用缓存的完整计算
func Compute(cfg Config, n, w uint64) Breakdown {
	cfg = cfg.normalize()
	b := Breakdown{Modulus: 1}
	count, i := maths.SmallPrimeCount(), 0
	// 提交阶段
	for ; i < count; i++ {
		p := maths.SmallPrime(i)
		r, ok := cfg.residue(p, n)
		if !ok {
			continue
		}
		next := maths.MulSat(b.Modulus, p-r)
		if !cfg.admits(maths.SquareSat(next), w) {
			b.Next = next
			break
		}
		b.Modulus = next
		b.LogSum += math.Log(maths.Float(p-r)) - maths.SmallPrimeLog(i)
		b.Committed++
	}
	// 尾部外推阶段
	for used := 0; i < count && used < cfg.Exposure; i++ {
		p := maths.SmallPrime(i)
		r, ok := cfg.residue(p, n)
		if !ok {
			continue
		}
		used++
		term := cfg.tailTerm(p, r)
		if math.Abs(term) < types.PrecisionFloor {
			break
		}
		b.TailFactor += term
		b.TailTerms++
	}
	return b
}

// Value 分解结果在宽度 w 下的亏损比例
func (b Breakdown) Value(cfg Config, w uint64) maths.Float {
	return cfg.normalize().value(b.LogSum, b.TailFactor, b.Modulus, w)
}

// Estimator 带缓存的亏损估计器
// 缓存仅在单调递增的单次扫描下有效, 不可在多个扫描间共享
type Estimator struct {
	cfg    Config
	state  State
	hits   uint64 // 缓存命中
	misses uint64 // 完整重算
}

// New 创建估计器
func New(cfg Config) *Estimator {
	return &Estimator{cfg: cfg.normalize()}
}

// Config 返回生效参数
func (e *Estimator) Config() Config { return e.cfg }

// State 返回缓存状态
func (e *Estimator) State() State { return e.state }

// Stats 缓存命中与重算次数
func (e *Estimator) Stats() (hits, misses uint64) { return e.hits, e.misses }

// Reset 清空缓存
func (e *Estimator) Reset() {
	e.state = State{}
	e.hits, e.misses = 0, 0
}

// Evaluate 返回非负亏损比例
// 仅当 n 改变或 w 超出有效区间时重算, 否则复用 LogSum 并按新 w 缩放尾项
func (e *Estimator) Evaluate(n, w uint64) maths.Float {
	if e.state.Covers(n, w, e.cfg.Boundary) {
		e.hits++
	} else {
		b := Compute(e.cfg, n, w)
		e.state = State{
			Validity:         Valid,
			Center:           n,
			CommittedModulus: b.Modulus,
			NextModulus:      b.Next,
			LogSum:           b.LogSum,
			TailFactor:       b.TailFactor,
		}
		e.misses++
	}
	return e.cfg.value(e.state.LogSum, e.state.TailFactor, e.state.CommittedModulus, w)
}

// Signed 带符号读数, upper 为真时返回负值用于上界
func (e *Estimator) Signed(n, w uint64, upper bool) maths.Float {
	v := e.Evaluate(n, w)
	if upper {
		return -v
	}
	return v
}
