// Package report 区间摘要输出。
package report

import (
	"goldbach/extrema"
	"time"
)

// Meta 一次扫描的描述
type Meta struct {
	RunID   string    // 运行标识
	Name    string    // 分析名称
	Buckets string    // 区间划分
	Width   string    // 宽度策略
	Deficit string    // 亏损配置
	Start   uint64    // 扫描起点
	End     uint64    // 扫描终点（不含）
	Created time.Time // 开始时间
}

// Sink 摘要输出接口
type Sink interface {
	Begin(meta Meta) error             // 扫描开始
	Row(summary extrema.Summary) error // 每个区间一行
	End() error                        // 扫描结束
}
