package maplocator

import (
	"image"
	"time"
)

// motionTracker 维护最近一次定位、EMA 平滑速度与丢失帧计数，
// 为追踪态提供速度预测的搜索窗口。
type motionTracker struct {
	cfg          TrackingConfig
	lastKnownPos *MapPosition
	lostCount    int
	velocityX    float64
	velocityY    float64
	lastTime     time.Time
}

func newMotionTracker(cfg TrackingConfig) *motionTracker {
	return &motionTracker{
		cfg:       cfg,
		lostCount: maxLostTrackingCount + 1,
	}
}

// update 记录一次确认的新位置并刷新速度估计。
// 16ms~maxDt 为正常帧间隔，超出范围说明速度不可信，跳过 EMA。
func (t *motionTracker) update(newPos MapPosition, now time.Time) {
	if t.lastKnownPos != nil && t.lostCount == 0 {
		dtSec := now.Sub(t.lastTime).Seconds()
		if dtSec >= 0.016 && dtSec < t.cfg.MaxDtForPrediction {
			rawVx := (newPos.X - t.lastKnownPos.X) / dtSec
			rawVy := (newPos.Y - t.lastKnownPos.Y) / dtSec
			alpha := t.cfg.VelocitySmoothingAlpha
			t.velocityX = t.velocityX*(1.0-alpha) + rawVx*alpha
			t.velocityY = t.velocityY*(1.0-alpha) + rawVy*alpha
		}
	}
	pos := newPos
	t.lastKnownPos = &pos
	t.lastTime = now
	t.lostCount = 0
}

// hold 画面模糊但不矛盾时保持旧位置，丢失计数加一。
func (t *motionTracker) hold(oldPos MapPosition, now time.Time) {
	pos := oldPos
	t.lastKnownPos = &pos
	t.lastTime = now
	t.lostCount++
}

func (t *motionTracker) markLost() {
	t.lostCount++
}

// forceLost 区域切换或显式重置时使用，彻底丢弃位置。
func (t *motionTracker) forceLost() {
	t.lostCount = maxLostTrackingCount + 100
	t.lastKnownPos = nil
}

func (t *motionTracker) isTracking(maxAllowedLost int) bool {
	return t.lastKnownPos != nil && t.lostCount <= maxAllowedLost
}

func (t *motionTracker) getLastPos() *MapPosition {
	if t.lastKnownPos == nil {
		return nil
	}
	pos := *t.lastKnownPos
	return &pos
}

func (t *motionTracker) getLostCount() int { return t.lostCount }

func (t *motionTracker) getLastTime() time.Time { return t.lastTime }

func (t *motionTracker) predictedX(now time.Time) float64 {
	if t.lastKnownPos == nil {
		return 0
	}
	dtSec := now.Sub(t.lastTime).Seconds()
	if dtSec > t.cfg.MaxDtForPrediction {
		return t.lastKnownPos.X
	}
	return t.lastKnownPos.X + t.velocityX*dtSec
}

func (t *motionTracker) predictedY(now time.Time) float64 {
	if t.lastKnownPos == nil {
		return 0
	}
	dtSec := now.Sub(t.lastTime).Seconds()
	if dtSec > t.cfg.MaxDtForPrediction {
		return t.lastKnownPos.Y
	}
	return t.lastKnownPos.Y + t.velocityY*dtSec
}

// predictNextSearchRect 以速度预测点为中心的正方形搜索窗口。
func (t *motionTracker) predictNextSearchRect(trackScale float64, templCols, templRows int, now time.Time) image.Rectangle {
	predX := t.predictedX(now)
	predY := t.predictedY(now)
	pad := int(mobileSearchRadius + float64(max(templCols, templRows))*trackScale/2.0)
	return image.Rect(int(predX)-pad, int(predY)-pad, int(predX)+pad, int(predY)+pad)
}

func (t *motionTracker) clearVelocity() {
	t.velocityX = 0
	t.velocityY = 0
}
