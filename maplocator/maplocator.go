// Package maplocator 在已知的大地图上定位玩家:
// 用小地图截图做带权重蒙版的模板匹配，追踪态失败时退回
// 分类器引导的多尺度全图搜索，并用中心箭头估计朝向。
package maplocator

import (
	"time"

	"gocv.io/x/gocv"
)

// MapLocator 定位器的公开句柄，内部转发给引擎实例。
// 单个实例不支持并发 locate，调用方需自行串行。
type MapLocator struct {
	eng *engine
}

// NewMapLocator 创建未初始化的定位器。
func NewMapLocator() *MapLocator {
	return &MapLocator{eng: newEngine()}
}

// Initialize 加载大地图与分类器。幂等，重复调用直接返回成功。
func (l *MapLocator) Initialize(cfg Config) bool {
	return l.eng.initialize(cfg)
}

// IsInitialized 报告是否完成初始化。
func (l *MapLocator) IsInitialized() bool {
	return l.eng.initialized
}

// Locate 对一帧小地图做定位，并把耗时写入 LatencyMs。
func (l *MapLocator) Locate(minimap gocv.Mat, options LocateOptions) LocateResult {
	start := time.Now()
	res := l.eng.locate(minimap, options)
	if res.Position != nil {
		res.Position.LatencyMs = time.Since(start).Milliseconds()
	}
	return res
}

// ResetTrackingState 强制丢失追踪并清空当前区域。
func (l *MapLocator) ResetTrackingState() {
	l.eng.resetTrackingState()
}

// GetLastKnownPos 返回追踪器里最近一次的位置，没有则为 nil。
func (l *MapLocator) GetLastKnownPos() *MapPosition {
	return l.eng.getLastKnownPos()
}

// Close 等待在途异步分类任务并释放全部资源。
func (l *MapLocator) Close() {
	l.eng.shutdown()
}
