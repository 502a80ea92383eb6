package types

import "fmt"

// ResidueMode 每个素数排除的剩余类数量
type ResidueMode uint8

// 剩余类模式常量定义
const (
	ResidueAsymmetric ResidueMode = 1 // 单侧排除 n-k
	ResidueSymmetric  ResidueMode = 2 // 双侧排除 n-k 与 n+k
)

// Valid 是否为合法模式
func (m ResidueMode) Valid() bool { return m == ResidueAsymmetric || m == ResidueSymmetric }

// WidthScale 尾部外推的区间宽度约定
type WidthScale uint8

// 宽度约定常量定义
const (
	ScaleSqrt   WidthScale = iota // sqrt(w)/M 缩放, 尾项按 1/q²
	ScaleLinear                   // w/M² 缩放, 尾项按 1/q
)

// BoundaryPolicy 模数平方与宽度比较时的边界处理
type BoundaryPolicy uint8

// 边界策略常量定义
const (
	BoundaryInclusive BoundaryPolicy = iota // M² <= w 时提交, 有效区间 [M², M'²)
	BoundaryExclusive                       // M² < w 时提交, 有效区间 (M², M'²]
)

// TieBreak 极值并列时的输出约定
type TieBreak uint8

// 并列约定常量定义
const (
	TieFirst TieBreak = iota // 首次达到极值的位置
	TieLast                  // 最后一次达到极值的位置
)

var scaleName = map[WidthScale]string{ScaleSqrt: "sqrt", ScaleLinear: "linear"}
var boundaryName = map[BoundaryPolicy]string{BoundaryInclusive: "inclusive", BoundaryExclusive: "exclusive"}
var tieName = map[TieBreak]string{TieFirst: "first", TieLast: "last"}

func (s WidthScale) String() string     { return scaleName[s] }
func (b BoundaryPolicy) String() string { return boundaryName[b] }
func (t TieBreak) String() string       { return tieName[t] }

// ParseWidthScale 通过名称获取宽度约定
func ParseWidthScale(name string) (WidthScale, error) {
	for k, v := range scaleName {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知宽度约定: %q", name)
}

// ParseBoundaryPolicy 通过名称获取边界策略
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	for k, v := range boundaryName {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知边界策略: %q", name)
}

// ParseTieBreak 通过名称获取并列约定
func ParseTieBreak(name string) (TieBreak, error) {
	for k, v := range tieName {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知并列约定: %q", name)
}
