package types

// 数值常量定义
const (
	PrecisionFloor    = 1e-14 // 尾项截断精度
	MaxSampleInterval = 31    // 最大采样间隔
	MinSampleInterval = 1     // 最小采样间隔
	MinCenter         = 4     // 最小中心值
)

// 默认参数常量定义
var (
	DefaultExposure     = 8       // 尾部外推素数数量
	DefaultResidueMode  = 2       // 默认对称排除
	DefaultWidthTheta   = 0.5     // 幂次宽度指数
	DefaultWidthAlpha   = 1.0     // 对数平方宽度系数
	DefaultDecadeSteps  = 9       // 每十进制区间拆分数
	DefaultPrimorialK   = 4       // 3*5*7*11
	DefaultSieveLimit   = 1 << 24 // 默认筛表上限
	DefaultLogLevel     = "info"  // 默认日志级别
	DefaultOutputPrefix = "gb"    // 输出文件前缀
)
