package maplocator

import (
	"image"
	"math"
	"strings"

	"gocv.io/x/gocv"
)

// matchFeature 一次匹配所需的全部输入。
type matchFeature struct {
	image    gocv.Mat // 最终参与匹配的图 (标准策略为 BGR，CoreMatch 内转灰度；或单通道路面热力图)
	mask     gocv.Mat // 对应的权重蒙版
	templRaw gocv.Mat // 未预处理原图 (BGR)，Chamfer 补偿从它提取边缘
}

func (f *matchFeature) close() {
	if !f.image.Empty() {
		f.image.Close()
	}
	if !f.mask.Empty() {
		f.mask.Close()
	}
	if !f.templRaw.Empty() {
		f.templRaw.Close()
	}
}

// trackingValidation 追踪态验证结论。
type trackingValidation struct {
	isValid        bool
	isEdgeSnapped  bool
	isTeleported   bool
	isScreenBlocked bool
	absX, absY     float64
}

// matchStrategy 匹配策略: 标准灰度 NCC 或路面热力图。
type matchStrategy interface {
	extractTemplateFeature(minimap gocv.Mat) matchFeature
	extractSearchFeature(mapRoi gocv.Mat) matchFeature
	validateTracking(res MatchResultRaw, dtSec float64, lastPos *MapPosition, searchRect image.Rectangle, templCols, templRows int) trackingValidation
	validateGlobalSearch(res MatchResultRaw) (float64, bool)
	needsChamferCompensation() bool
}

type matchMode int

const (
	matchModeAuto matchMode = iota
	matchModeForceStandard
	matchModeForcePathHeatmap
)

// newMatchStrategy 按区域 id 选择策略。
// 含 OMVBase 的区域纹理被路网主导，走热力图；其余走标准策略。
// mode 可强制指定，供双模交叉验证使用。
func newMatchStrategy(zoneID string, trackingCfg TrackingConfig, matchCfg MatchConfig,
	baseCfg, tierCfg ImageProcessingConfig, mode matchMode) matchStrategy {

	isBase := strings.Contains(zoneID, "Base")
	usePathHeatmap := strings.Contains(zoneID, "OMVBase")

	switch mode {
	case matchModeForcePathHeatmap:
		usePathHeatmap = true
	case matchModeForceStandard:
		usePathHeatmap = false
	}

	if usePathHeatmap {
		return &pathHeatmapStrategy{isBase: isBase, trackingCfg: trackingCfg, matchCfg: matchCfg, baseCfg: baseCfg, tierCfg: tierCfg}
	}
	return &standardStrategy{isBase: isBase, trackingCfg: trackingCfg, matchCfg: matchCfg, baseCfg: baseCfg, tierCfg: tierCfg}
}

// validateMotion 两种策略共用的边缘吸附与传送判定。
func validateMotion(cfg TrackingConfig, res MatchResultRaw, dtSec float64, lastPos *MapPosition,
	searchRect image.Rectangle, templCols, templRows int) trackingValidation {

	var v trackingValidation

	maxX := searchRect.Dx() - templCols
	maxY := searchRect.Dy() - templRows
	hitEdgeX := res.Loc.X <= cfg.EdgeSnapMargin || res.Loc.X >= maxX-cfg.EdgeSnapMargin
	hitEdgeY := res.Loc.Y <= cfg.EdgeSnapMargin || res.Loc.Y >= maxY-cfg.EdgeSnapMargin
	v.isEdgeSnapped = hitEdgeX || hitEdgeY

	v.absX = float64(searchRect.Min.X) + float64(res.Loc.X) + float64(templCols)/2.0
	v.absY = float64(searchRect.Min.Y) + float64(res.Loc.Y) + float64(templRows)/2.0

	if lastPos != nil {
		dx := v.absX - lastPos.X
		dy := v.absY - lastPos.Y
		dt := dtSec
		if dt < 0.001 {
			dt = 0.001
		}
		v.isTeleported = math.Hypot(dx, dy)/dt > cfg.MaxNormalSpeed
	}

	return v
}

// ---------------- Standard ----------------

type standardStrategy struct {
	isBase      bool
	trackingCfg TrackingConfig
	matchCfg    MatchConfig
	baseCfg     ImageProcessingConfig
	tierCfg     ImageProcessingConfig
}

func (s *standardStrategy) imgCfg() ImageProcessingConfig {
	if s.isBase {
		return s.baseCfg
	}
	return s.tierCfg
}

func (s *standardStrategy) buildMask(minimap gocv.Mat) gocv.Mat {
	cfg := s.imgCfg()
	if cfg.UseGradientWeight {
		return GenerateGradientWeightMask(minimap, cfg)
	}
	return GenerateMinimapMask(minimap, cfg, true, true)
}

func (s *standardStrategy) extractTemplateFeature(minimap gocv.Mat) matchFeature {
	var feat matchFeature
	if minimap.Channels() != 4 {
		feat.templRaw = minimap.Clone()
		feat.image = minimap.Clone()
		feat.mask = s.buildMask(minimap)
		return feat
	}

	feat.templRaw = gocv.NewMat()
	gocv.CvtColor(minimap, &feat.templRaw, gocv.ColorBGRAToBGR)

	chans := gocv.Split(minimap)
	alpha := chans[3]

	// 取有效区域并腐蚀一圈，防止圆形边界半透明像素泄漏
	validMask := gocv.NewMat()
	gocv.Threshold(alpha, &validMask, 219, 255, gocv.ThresholdBinary)
	erodeKernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(3, 3))
	gocv.Erode(validMask, &validMask, erodeKernel)
	erodeKernel.Close()

	templGray := gocv.NewMat()
	gocv.CvtColor(feat.templRaw, &templGray, gocv.ColorBGRToGray)

	// 透明区填充有效区均值，保持互相关稳定
	meanV := templGray.MeanWithMask(validMask).Val1
	templGray.Close()

	inv := gocv.NewMat()
	gocv.BitwiseNot(validMask, &inv)
	fill := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(meanV, 0, 0, 0),
		minimap.Rows(), minimap.Cols(), gocv.MatTypeCV8UC1)

	bgr := make([]gocv.Mat, 3)
	for i := 0; i < 3; i++ {
		bgr[i] = chans[i].Clone()
		fill.CopyToWithMask(&bgr[i], inv)
	}
	feat.image = gocv.NewMat()
	gocv.Merge(bgr, &feat.image)

	for i := range bgr {
		bgr[i].Close()
	}
	fill.Close()
	inv.Close()

	feat.mask = s.buildMask(minimap)
	if feat.mask.Type() == gocv.MatTypeCV8UC1 {
		gocv.BitwiseAnd(feat.mask, validMask, &feat.mask)
	} else {
		// 梯度加权蒙版是浮点，按 0/1 乘法合并有效区
		validF := gocv.NewMat()
		validMask.ConvertToWithParams(&validF, gocv.MatTypeCV32F, 1.0/255.0, 0)
		gocv.Multiply(feat.mask, validF, &feat.mask)
		validF.Close()
	}

	validMask.Close()
	for _, c := range chans {
		c.Close()
	}
	return feat
}

func (s *standardStrategy) extractSearchFeature(mapRoi gocv.Mat) matchFeature {
	var feat matchFeature
	feat.image = gocv.NewMat()
	if mapRoi.Channels() == 4 {
		gocv.CvtColor(mapRoi, &feat.image, gocv.ColorBGRAToBGR)
	} else {
		mapRoi.CopyTo(&feat.image)
	}
	return feat
}

func (s *standardStrategy) validateTracking(res MatchResultRaw, dtSec float64, lastPos *MapPosition,
	searchRect image.Rectangle, templCols, templRows int) trackingValidation {

	v := validateMotion(s.trackingCfg, res, dtSec, lastPos, searchRect, templCols, templRows)

	lowScore := res.Score < 0.80
	ambiguous := lowScore && (res.PSR < 6.0 || res.Delta < 0.02)
	v.isScreenBlocked = res.Score < s.trackingCfg.ScreenBlockedThreshold

	v.isValid = !v.isEdgeSnapped && !v.isTeleported && !v.isScreenBlocked && !ambiguous
	return v
}

func (s *standardStrategy) validateGlobalSearch(res MatchResultRaw) (float64, bool) {
	if res.Score < s.matchCfg.PassThreshold {
		return 0, false
	}
	return res.Score, true
}

func (s *standardStrategy) needsChamferCompensation() bool { return false }

// ---------------- PathHeatmap ----------------

type pathHeatmapStrategy struct {
	isBase      bool
	trackingCfg TrackingConfig
	matchCfg    MatchConfig
	baseCfg     ImageProcessingConfig
	tierCfg     ImageProcessingConfig
}

func (s *pathHeatmapStrategy) extractTemplateFeature(minimap gocv.Mat) matchFeature {
	var feat matchFeature
	feat.templRaw = gocv.NewMat()
	if minimap.Channels() == 4 {
		gocv.CvtColor(minimap, &feat.templRaw, gocv.ColorBGRAToBGR)
	} else {
		minimap.CopyTo(&feat.templRaw)
	}

	feat.image = extractPathHeatmapFeature(minimap)

	cfg := s.baseCfg
	if !s.isBase {
		cfg = s.tierCfg
	}
	cfg.MinimapDarkMaskThreshold = -1 // 禁用暗部剔除
	cfg.UseHsvWhiteMask = false       // 保证路面像素不被白名单剔除

	feat.mask = GenerateMinimapMask(feat.templRaw, cfg, true, true)
	return feat
}

func (s *pathHeatmapStrategy) extractSearchFeature(mapRoi gocv.Mat) matchFeature {
	var feat matchFeature
	feat.image = extractPathHeatmapFeature(mapRoi)
	return feat
}

// pathHeatmapAccept 追踪与全局共用的三段式放行规则。
func pathHeatmapAccept(res MatchResultRaw) bool {
	return res.Score >= 0.85 ||
		(res.Score >= 0.42 && res.Delta >= 0.04 && res.PSR >= 3.8) ||
		(res.Score >= 0.40 && res.Delta >= 0.05 && res.PSR >= 3.8)
}

func (s *pathHeatmapStrategy) validateTracking(res MatchResultRaw, dtSec float64, lastPos *MapPosition,
	searchRect image.Rectangle, templCols, templRows int) trackingValidation {

	v := validateMotion(s.trackingCfg, res, dtSec, lastPos, searchRect, templCols, templRows)

	accept := pathHeatmapAccept(res)
	hold := res.Score >= 0.35 && res.PSR >= 4.0

	ambiguous := !accept
	v.isScreenBlocked = !accept && !hold

	v.isValid = !v.isEdgeSnapped && !v.isTeleported && !v.isScreenBlocked && !ambiguous
	return v
}

func (s *pathHeatmapStrategy) validateGlobalSearch(res MatchResultRaw) (float64, bool) {
	if !pathHeatmapAccept(res) {
		return 0, false
	}
	return res.Score, true
}

func (s *pathHeatmapStrategy) needsChamferCompensation() bool { return true }
