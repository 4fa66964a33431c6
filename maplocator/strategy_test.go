package maplocator

import (
	"image"
	"testing"
)

func newTestStrategy(zoneID string, mode matchMode) matchStrategy {
	return newMatchStrategy(zoneID, DefaultTrackingConfig(), DefaultMatchConfig(),
		baseImageConfig(), tierImageConfig(), mode)
}

func TestStrategySelectionByZoneID(t *testing.T) {
	if newTestStrategy("Region2_Base", matchModeAuto).needsChamferCompensation() {
		t.Error("plain Base zone must use the standard strategy")
	}
	if newTestStrategy("Region1_L3_2", matchModeAuto).needsChamferCompensation() {
		t.Error("tier zone must use the standard strategy")
	}
	if !newTestStrategy("OMVBase_Main", matchModeAuto).needsChamferCompensation() {
		t.Error("OMVBase zone must use the path-heatmap strategy")
	}
	if !newTestStrategy("Region2_Base", matchModeForcePathHeatmap).needsChamferCompensation() {
		t.Error("ForcePathHeatmap must override zone selection")
	}
	if newTestStrategy("OMVBase_Main", matchModeForceStandard).needsChamferCompensation() {
		t.Error("ForceStandard must override zone selection")
	}
}

// trackRect 以搜索窗口 (0,0,320,320)、模板 100x100 为基准。
var trackRect = image.Rect(0, 0, 320, 320)

func runStandardValidate(res MatchResultRaw, lastPos *MapPosition, dtSec float64) trackingValidation {
	s := newTestStrategy("Region2_Base", matchModeAuto)
	return s.validateTracking(res, dtSec, lastPos, trackRect, 100, 100)
}

func TestStandardValidateTrackingAccepts(t *testing.T) {
	res := MatchResultRaw{Score: 0.9, Loc: image.Pt(110, 110), PSR: 8, Delta: 0.1}
	last := &MapPosition{X: 160, Y: 160}
	v := runStandardValidate(res, last, 0.5)
	if !v.isValid {
		t.Fatalf("clean high score must validate: %+v", v)
	}
	if v.absX != 160 || v.absY != 160 {
		t.Errorf("abs position = (%v, %v), want (160, 160)", v.absX, v.absY)
	}
}

func TestStandardValidateTrackingEdgeSnap(t *testing.T) {
	res := MatchResultRaw{Score: 0.95, Loc: image.Pt(0, 50), PSR: 9, Delta: 0.2}
	v := runStandardValidate(res, nil, 0.5)
	if !v.isEdgeSnapped || v.isValid {
		t.Errorf("peak on the window edge must be rejected as edge snapped: %+v", v)
	}

	res.Loc = image.Pt(219, 50) // maxX - edgeSnapMargin
	v = runStandardValidate(res, nil, 0.5)
	if !v.isEdgeSnapped {
		t.Errorf("far-edge peak must snap too: %+v", v)
	}
}

func TestStandardValidateTrackingTeleport(t *testing.T) {
	res := MatchResultRaw{Score: 0.95, Loc: image.Pt(110, 110), PSR: 9, Delta: 0.2}
	// 上一帧在 500px 之外，dt=0.1s: 速度 5000px/s
	last := &MapPosition{X: 660, Y: 160}
	v := runStandardValidate(res, last, 0.1)
	if !v.isTeleported || v.isValid {
		t.Errorf("implied speed above the cap must mark teleported: %+v", v)
	}
}

func TestStandardValidateTrackingScreenBlocked(t *testing.T) {
	res := MatchResultRaw{Score: 0.3, Loc: image.Pt(110, 110), PSR: 9, Delta: 0.2}
	v := runStandardValidate(res, nil, 0.5)
	if !v.isScreenBlocked || v.isValid {
		t.Errorf("score below blocked threshold must mark screen blocked: %+v", v)
	}
}

func TestStandardValidateTrackingAmbiguity(t *testing.T) {
	// 中分但旁瓣太近: 模糊，拒绝但不算遮挡
	res := MatchResultRaw{Score: 0.6, Loc: image.Pt(110, 110), PSR: 3.0, Delta: 0.01}
	v := runStandardValidate(res, nil, 0.5)
	if v.isValid {
		t.Error("ambiguous mid score must not validate")
	}
	if v.isScreenBlocked || v.isEdgeSnapped || v.isTeleported {
		t.Errorf("ambiguity alone must leave other bits clear: %+v", v)
	}

	// 高分豁免歧义判定
	res = MatchResultRaw{Score: 0.85, Loc: image.Pt(110, 110), PSR: 3.0, Delta: 0.01}
	if v := runStandardValidate(res, nil, 0.5); !v.isValid {
		t.Error("score >= 0.80 must bypass the ambiguity gate")
	}
}

func TestStandardValidateGlobalSearch(t *testing.T) {
	s := newTestStrategy("Region2_Base", matchModeAuto)
	if _, ok := s.validateGlobalSearch(MatchResultRaw{Score: 0.5}); ok {
		t.Error("score below pass threshold must fail global validation")
	}
	score, ok := s.validateGlobalSearch(MatchResultRaw{Score: 0.7})
	if !ok || score != 0.7 {
		t.Errorf("score above pass threshold must pass, got (%v, %v)", score, ok)
	}
}

func runHeatmapValidate(res MatchResultRaw) trackingValidation {
	s := newTestStrategy("OMVBase_Main", matchModeAuto)
	return s.validateTracking(res, 0.5, nil, trackRect, 100, 100)
}

func TestPathHeatmapValidateTracking(t *testing.T) {
	center := image.Pt(110, 110)

	cases := []struct {
		name        string
		res         MatchResultRaw
		valid       bool
		blocked     bool
	}{
		{"high score", MatchResultRaw{Score: 0.86, Loc: center}, true, false},
		{"mid rule A", MatchResultRaw{Score: 0.43, Delta: 0.05, PSR: 4.0, Loc: center}, true, false},
		{"mid rule B", MatchResultRaw{Score: 0.41, Delta: 0.06, PSR: 3.9, Loc: center}, true, false},
		{"holdable", MatchResultRaw{Score: 0.36, Delta: 0.01, PSR: 4.5, Loc: center}, false, false},
		{"blocked", MatchResultRaw{Score: 0.2, Delta: 0.01, PSR: 1.0, Loc: center}, false, true},
		{"low psr", MatchResultRaw{Score: 0.5, Delta: 0.05, PSR: 3.0, Loc: center}, false, true},
		{"low delta holdable", MatchResultRaw{Score: 0.5, Delta: 0.03, PSR: 4.2, Loc: center}, false, false},
	}

	for _, c := range cases {
		v := runHeatmapValidate(c.res)
		if v.isValid != c.valid {
			t.Errorf("%s: isValid = %v, want %v", c.name, v.isValid, c.valid)
		}
		if v.isScreenBlocked != c.blocked {
			t.Errorf("%s: isScreenBlocked = %v, want %v", c.name, v.isScreenBlocked, c.blocked)
		}
	}
}

func TestPathHeatmapValidateGlobalSearch(t *testing.T) {
	s := newTestStrategy("OMVBase_Main", matchModeAuto)
	if _, ok := s.validateGlobalSearch(MatchResultRaw{Score: 0.41, Delta: 0.01, PSR: 2.0}); ok {
		t.Error("weak heatmap result must fail global validation")
	}
	if _, ok := s.validateGlobalSearch(MatchResultRaw{Score: 0.43, Delta: 0.05, PSR: 4.2}); !ok {
		t.Error("mid heatmap result with strong sidelobe stats must pass")
	}
	if _, ok := s.validateGlobalSearch(MatchResultRaw{Score: 0.9}); !ok {
		t.Error("high heatmap score must pass unconditionally")
	}
}

func TestStandardTemplateFeatureShapes(t *testing.T) {
	minimap := synthHaystack(MinimapROIWidth, MinimapROIHeight, 31)
	defer minimap.Close()

	s := newTestStrategy("Region2_Base", matchModeAuto)
	feat := s.extractTemplateFeature(minimap)
	defer feat.close()

	if feat.image.Channels() != 3 {
		t.Errorf("template feature image channels = %d, want 3", feat.image.Channels())
	}
	if feat.mask.Rows() != feat.image.Rows() || feat.mask.Cols() != feat.image.Cols() {
		t.Error("mask must share the template's spatial dimensions")
	}
	if feat.templRaw.Channels() != 3 {
		t.Errorf("templRaw channels = %d, want 3", feat.templRaw.Channels())
	}
}

func TestPathHeatmapFeatureIsSingleChannel(t *testing.T) {
	minimap := synthHaystack(MinimapROIWidth, MinimapROIHeight, 32)
	defer minimap.Close()

	s := newTestStrategy("OMVBase_Main", matchModeAuto)
	feat := s.extractTemplateFeature(minimap)
	defer feat.close()

	if feat.image.Channels() != 1 {
		t.Errorf("heatmap feature channels = %d, want 1", feat.image.Channels())
	}
	if feat.mask.Rows() != feat.image.Rows() || feat.mask.Cols() != feat.image.Cols() {
		t.Error("mask must share the heatmap's spatial dimensions")
	}
}
