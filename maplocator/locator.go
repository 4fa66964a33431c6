package maplocator

import (
	"image"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// asyncYoloInterval 异步分类器的提交间隔。
const asyncYoloInterval = 3 * time.Second

// engine 定位引擎。单次 locate 在调用方线程上跑完，
// 唯一的后台并发是在途的异步分类任务。
type engine struct {
	initialized bool
	cfg         Config

	zones         map[string]gocv.Mat
	currentZoneID string

	tracker    *motionTracker
	classifier zonePredictor

	taskMu            sync.Mutex
	asyncYoloTask     chan string // 容量 1，goroutine 写入后退出; nil 表示无在途任务
	lastYoloCheckTime time.Time

	trackingCfg TrackingConfig
	matchCfg    MatchConfig
	baseImgCfg  ImageProcessingConfig
	tierImgCfg  ImageProcessingConfig
}

func newEngine() *engine {
	return &engine{
		trackingCfg: DefaultTrackingConfig(),
		matchCfg:    DefaultMatchConfig(),
		baseImgCfg:  baseImageConfig(),
		tierImgCfg:  tierImageConfig(),
	}
}

func (e *engine) initialize(cfg Config) bool {
	if e.initialized {
		return true
	}
	e.cfg = cfg

	e.tracker = newMotionTracker(e.trackingCfg)
	e.zones = loadAvailableZones(cfg.MapResourceDir)

	if cfg.ModelPath != "" {
		e.classifier = newZoneClassifier(cfg.ModelPath, e.matchCfg.YoloConfThreshold)
	}

	e.initialized = true
	return true
}

// shutdown 等待在途异步任务结束并释放资源。
func (e *engine) shutdown() {
	e.taskMu.Lock()
	task := e.asyncYoloTask
	e.asyncYoloTask = nil
	e.taskMu.Unlock()
	if task != nil {
		<-task
	}
	if e.classifier != nil {
		e.classifier.close()
	}
	for _, m := range e.zones {
		m.Close()
	}
	e.zones = nil
	e.initialized = false
}

func (e *engine) resetTrackingState() {
	if e.tracker != nil {
		e.tracker.forceLost()
	}
	e.currentZoneID = ""
}

func (e *engine) getLastKnownPos() *MapPosition {
	if e.tracker == nil {
		return nil
	}
	return e.tracker.getLastPos()
}

// maxAllowedLost 路网热力图区域的追踪更黏，容忍更长的丢失窗口。
func maxAllowedLost(zoneID string, options LocateOptions) int {
	if containsOMVBase(zoneID) {
		return 10
	}
	return options.MaxLostFrames
}

func containsOMVBase(zoneID string) bool {
	return strings.Contains(zoneID, "OMVBase")
}

// carveSearchRoi 从大地图里抠出搜索窗口，出界部分补全透明零值。
func carveSearchRoi(zoneMap gocv.Mat, searchRect image.Rectangle) gocv.Mat {
	padded := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		searchRect.Dy(), searchRect.Dx(), zoneMap.Type())

	mapBounds := image.Rect(0, 0, zoneMap.Cols(), zoneMap.Rows())
	valid := searchRect.Intersect(mapBounds)
	if !valid.Empty() {
		src := zoneMap.Region(valid)
		dst := padded.Region(valid.Sub(searchRect.Min))
		src.CopyTo(&dst)
		dst.Close()
		src.Close()
	}
	return padded
}

// resizeFeature 按比例缩放模板与蒙版。比例 1.0 时直接克隆。
func resizeFeature(img, mask gocv.Mat, scale float64) (gocv.Mat, gocv.Mat) {
	if math.Abs(scale-1.0) <= 0.001 {
		return img.Clone(), mask.Clone()
	}
	scaledImg := gocv.NewMat()
	scaledMask := gocv.NewMat()
	gocv.Resize(img, &scaledImg, image.Point{}, scale, scale, gocv.InterpolationLinear)
	gocv.Resize(mask, &scaledMask, image.Point{}, scale, scale, gocv.InterpolationNearestNeighbor)
	return scaledImg, scaledMask
}

// trackingAttempt 追踪尝试的结论与中间量，供引擎决定 hold / 全局回退。
type trackingAttempt struct {
	pos            *MapPosition
	rawPos         MapPosition
	hasRaw         bool
	screenBlocked  bool
}

// tryTracking 在预测窗口内做一次受限匹配。
// 验证失败但仅仅是模糊 (无边缘吸附/传送/遮挡) 时 hold 住旧位置。
func (e *engine) tryTracking(tmplFeat *matchFeature, strategy matchStrategy, now time.Time, options LocateOptions) trackingAttempt {
	var att trackingAttempt
	if strategy == nil {
		return att
	}

	lostCap := maxAllowedLost(e.currentZoneID, options)
	if e.currentZoneID == "" || !e.tracker.isTracking(lostCap) {
		return att
	}

	zoneMap, ok := e.zones[e.currentZoneID]
	if !ok {
		return att
	}

	dtSec := now.Sub(e.tracker.getLastTime()).Seconds()

	trackScale := 1.0
	if last := e.tracker.getLastPos(); last != nil && last.Scale > 0 {
		trackScale = last.Scale
	}

	searchRect := e.tracker.predictNextSearchRect(trackScale, tmplFeat.image.Cols(), tmplFeat.image.Rows(), now)

	searchRoi := carveSearchRoi(zoneMap, searchRect)
	defer searchRoi.Close()

	searchFeat := strategy.extractSearchFeature(searchRoi)
	defer searchFeat.close()

	scaledTempl, scaledMask := resizeFeature(tmplFeat.image, tmplFeat.mask, trackScale)
	defer scaledTempl.Close()
	defer scaledMask.Close()

	trackResult, ok := CoreMatch(searchFeat.image, scaledTempl, scaledMask, e.matchCfg.BlurSize)
	if !ok {
		locLog.Info().Msg("tryTracking: CoreMatch returned no result")
		return att
	}

	locLog.Info().
		Float64("ncc", trackResult.Score).
		Float64("psr", trackResult.PSR).
		Float64("delta", trackResult.Delta).
		Float64("second", trackResult.SecondScore).
		Float64("scale", trackScale).
		Msg("tryTracking")

	validation := strategy.validateTracking(trackResult, dtSec, e.tracker.getLastPos(), searchRect,
		scaledTempl.Cols(), scaledTempl.Rows())

	att.rawPos = MapPosition{
		ZoneID: e.currentZoneID,
		X:      validation.absX,
		Y:      validation.absY,
		Score:  trackResult.Score,
		Scale:  trackScale,
	}
	att.hasRaw = true

	onlyAmbiguous := !validation.isScreenBlocked && !validation.isEdgeSnapped && !validation.isTeleported

	if !validation.isValid && strategy.needsChamferCompensation() {
		if e.chamferRescue(tmplFeat, scaledMask, searchRoi, trackResult.Loc, trackScale) {
			validation.isValid = true
			validation.isScreenBlocked = false
			onlyAmbiguous = false
			trackResult.Score = math.Max(trackResult.Score, 0.43)
			att.rawPos.Score = trackResult.Score
		}
	}

	att.screenBlocked = validation.isScreenBlocked

	if onlyAmbiguous && e.tracker.isTracking(lostCap) && !validation.isValid {
		hold := *e.tracker.getLastPos()
		hold.Score = trackResult.Score
		hold.Scale = trackScale
		e.tracker.hold(hold, now)
		locLog.Info().
			Float64("ncc", trackResult.Score).
			Float64("psr", trackResult.PSR).
			Float64("delta", trackResult.Delta).
			Msg("tracking ambiguous, holding last position")
		att.pos = &hold
		return att
	}

	if !validation.isValid {
		return att
	}

	pos := MapPosition{
		ZoneID: e.currentZoneID,
		X:      validation.absX,
		Y:      validation.absY,
		Score:  trackResult.Score,
		Scale:  trackScale,
	}
	e.tracker.update(pos, now)
	att.pos = &pos
	return att
}

// chamferRescue 路网热力图的补偿校验:
// 在匹配位置上比较模板边缘与地图边缘的 Chamfer 距离，
// 平均距离足够小则推翻低 NCC 的否决。
func (e *engine) chamferRescue(tmplFeat *matchFeature, scaledMask gocv.Mat, searchRoi gocv.Mat, loc image.Point, trackScale float64) bool {
	bgrTempl := gocv.NewMat()
	defer bgrTempl.Close()
	if math.Abs(trackScale-1.0) > 0.001 {
		gocv.Resize(tmplFeat.templRaw, &bgrTempl, image.Point{}, trackScale, trackScale, gocv.InterpolationLinear)
	} else {
		tmplFeat.templRaw.CopyTo(&bgrTempl)
	}

	templGray := grayOf(bgrTempl)
	defer templGray.Close()

	templEdge := gocv.NewMat()
	defer templEdge.Close()
	gocv.Canny(templGray, &templEdge, 100, 200)
	gocv.BitwiseAnd(templEdge, scaledMask, &templEdge)

	matchedRect := image.Rect(loc.X, loc.Y, loc.X+bgrTempl.Cols(), loc.Y+bgrTempl.Rows()).
		Intersect(image.Rect(0, 0, searchRoi.Cols(), searchRoi.Rows()))
	if matchedRect.Empty() {
		return false
	}

	patch := searchRoi.Region(matchedRect)
	patchGray := grayOf(patch)
	patch.Close()
	defer patchGray.Close()

	patchEdge := gocv.NewMat()
	defer patchEdge.Close()
	gocv.Canny(patchGray, &patchEdge, 100, 200)

	patchEdgeInv := gocv.NewMat()
	defer patchEdgeInv.Close()
	gocv.BitwiseNot(patchEdge, &patchEdgeInv)

	distTrans := gocv.NewMat()
	defer distTrans.Close()
	labels := gocv.NewMat()
	defer labels.Close()
	gocv.DistanceTransform(patchEdgeInv, &distTrans, &labels, gocv.DistL2, gocv.DistanceMask3, gocv.DistanceLabelCComp)

	edgeRegion := templEdge.Region(image.Rect(0, 0, matchedRect.Dx(), matchedRect.Dy()))
	defer edgeRegion.Close()

	meanDist := distTrans.MeanWithMask(edgeRegion).Val1
	locLog.Info().Float64("mean_dist", meanDist).Msg("chamfer compensation")

	return meanDist < 4.5
}

// coarseCandidate 粗搜候选。
type coarseCandidate struct {
	scale float64
	score float64
	loc   image.Point
}

// fineResult 精搜结论。
type fineResult struct {
	score     float64
	scale     float64
	res       MatchResultRaw
	validRect image.Rectangle
	templCols int
	templRows int
}

// tryGlobalSearch 多尺度粗精两级全图搜索。
func (e *engine) tryGlobalSearch(tmplFeat *matchFeature, strategy matchStrategy, targetZoneID string) (*MapPosition, MapPosition, bool) {
	var rawPos MapPosition
	if strategy == nil || targetZoneID == "" {
		locLog.Info().Msg("global search aborted: no target zone")
		return nil, rawPos, false
	}

	bigMap, ok := e.zones[targetZoneID]
	if !ok {
		locLog.Info().Str("zone", targetZoneID).Msg("global search aborted: predicted map not loaded")
		return nil, rawPos, false
	}

	coarseScale := e.matchCfg.CoarseScale

	smallMap := gocv.NewMat()
	defer smallMap.Close()
	gocv.Resize(bigMap, &smallMap, image.Point{}, coarseScale, coarseScale, gocv.InterpolationArea)

	coarseFeat := strategy.extractSearchFeature(smallMap)
	defer coarseFeat.close()

	mapToUse := grayOf(coarseFeat.image)
	defer mapToUse.Close()

	if e.matchCfg.BlurSize > 0 && !strategy.needsChamferCompensation() {
		gocv.GaussianBlur(mapToUse, &mapToUse, image.Pt(e.matchCfg.BlurSize, e.matchCfg.BlurSize), 0, 0, gocv.BorderDefault)
	}

	tmplGray := grayOf(tmplFeat.image)
	defer tmplGray.Close()

	const (
		topNPerScale = 3
		topK         = 8
		coarseMin    = 0.20
	)

	var cands []coarseCandidate
	for s := 0.90; s <= 1.101; s += 0.02 {
		currentScale := coarseScale * s

		smallTempl := gocv.NewMat()
		smallMask := gocv.NewMat()
		gocv.Resize(tmplGray, &smallTempl, image.Point{}, currentScale, currentScale, gocv.InterpolationLinear)
		gocv.Resize(tmplFeat.mask, &smallMask, image.Point{}, currentScale, currentScale, gocv.InterpolationNearestNeighbor)

		if gocv.CountNonZero(smallMask) < 5 {
			smallTempl.Close()
			smallMask.Close()
			continue
		}

		cands = append(cands, coarsePeaks(mapToUse, smallTempl, smallMask, s, topNPerScale, coarseMin)...)
		smallTempl.Close()
		smallMask.Close()
	}

	if len(cands) == 0 {
		return nil, rawPos, false
	}

	sort.Slice(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	if len(cands) > topK {
		cands = cands[:topK]
	}

	var best, fallback *fineResult
	searchRadius := e.matchCfg.FineSearchRadius
	mapBounds := image.Rect(0, 0, bigMap.Cols(), bigMap.Rows())

	for _, cand := range cands {
		coarseX := int(float64(cand.loc.X) / coarseScale)
		coarseY := int(float64(cand.loc.Y) / coarseScale)

		scaledTempl, scaledMask := resizeFeature(tmplFeat.image, tmplFeat.mask, cand.scale)

		fineRect := image.Rect(coarseX-searchRadius, coarseY-searchRadius,
			coarseX+scaledTempl.Cols()+searchRadius, coarseY+scaledTempl.Rows()+searchRadius)
		validRect := fineRect.Intersect(mapBounds)
		if validRect.Empty() {
			scaledTempl.Close()
			scaledMask.Close()
			continue
		}

		fineMap := bigMap.Region(validRect)
		fineFeat := strategy.extractSearchFeature(fineMap)
		fineMap.Close()

		res, ok := CoreMatch(fineFeat.image, scaledTempl, scaledMask, e.matchCfg.BlurSize)
		fineFeat.close()
		tCols, tRows := scaledTempl.Cols(), scaledTempl.Rows()
		scaledTempl.Close()
		scaledMask.Close()
		if !ok {
			continue
		}

		fr := &fineResult{score: res.Score, scale: cand.scale, res: res, validRect: validRect, templCols: tCols, templRows: tRows}

		if fallback == nil || res.Score > fallback.score {
			fallback = fr
		}

		// 歧义过滤: 旁瓣太近或增量太小的候选不可信
		if strategy.needsChamferCompensation() {
			ambiguous := res.PSR < 6.0 || res.Delta < 0.04
			if res.Score < 0.45 && ambiguous {
				continue
			}
		} else {
			lowScoreCut := 0.75
			if strings.Contains(targetZoneID, "Base") {
				lowScoreCut = 0.85
			}
			if res.Score < lowScoreCut && (res.PSR < 6.0 || res.Delta < 0.02) {
				continue
			}
		}

		if best == nil || res.Score > best.score {
			best = fr
		}
	}

	if best == nil {
		if fallback == nil {
			return nil, rawPos, false
		}
		// 所有候选都歧义时仍返回最高分，交由策略验证兜底
		best = fallback
		locLog.Info().Float64("score", fallback.score).Msg("global search: all candidates ambiguous, using fallback")
	}

	rawPos = MapPosition{
		ZoneID: targetZoneID,
		X:      float64(best.validRect.Min.X) + float64(best.res.Loc.X) + float64(best.templCols)/2.0,
		Y:      float64(best.validRect.Min.Y) + float64(best.res.Loc.Y) + float64(best.templRows)/2.0,
		Score:  best.score,
		Scale:  best.scale,
	}

	finalScore, accepted := strategy.validateGlobalSearch(best.res)
	if !accepted {
		locLog.Info().
			Float64("score", best.res.Score).
			Float64("delta", best.res.Delta).
			Float64("psr", best.res.PSR).
			Msg("global rejected: score too low")
		return nil, rawPos, true
	}

	pos := rawPos
	pos.Score = finalScore
	return &pos, rawPos, true
}

// coarsePeaks 在一张粗搜响应面上取 topN 个互不重叠的峰。
func coarsePeaks(mapToUse, smallTempl, smallMask gocv.Mat, s float64, topN int, minScore float64) []coarseCandidate {
	result := gocv.NewMat()
	defer result.Close()
	gocv.MatchTemplate(mapToUse, smallTempl, &result, gocv.TmCcoeffNormed, smallMask)
	if result.Empty() {
		return nil
	}

	data, err := result.DataPtrFloat32()
	if err != nil {
		return nil
	}
	rows, cols := result.Rows(), result.Cols()
	for i, v := range data {
		if !isFinite32(v) {
			data[i] = -1.0
		}
	}

	sr := max(4, min(smallTempl.Cols(), smallTempl.Rows())/2)

	var out []coarseCandidate
	for n := 0; n < topN; n++ {
		maxVal := float32(math.Inf(-1))
		maxIdx := -1
		for i, v := range data {
			if v > maxVal {
				maxVal = v
				maxIdx = i
			}
		}
		if maxIdx < 0 || float64(maxVal) < minScore {
			break
		}
		ml := image.Pt(maxIdx%cols, maxIdx/cols)
		out = append(out, coarseCandidate{scale: s, score: float64(maxVal), loc: ml})

		sup := image.Rect(ml.X-sr, ml.Y-sr, ml.X+sr+1, ml.Y+sr+1).Intersect(image.Rect(0, 0, cols, rows))
		for y := sup.Min.Y; y < sup.Max.Y; y++ {
			for x := sup.Min.X; x < sup.Max.X; x++ {
				data[y*cols+x] = -2.0
			}
		}
	}
	return out
}

// pollAsyncClassifier 消费已完成的异步分类结果并按节流间隔补发新任务。
// 同一时刻最多一个在途任务，任务持有小地图的克隆快照。
func (e *engine) pollAsyncClassifier(minimap gocv.Mat, now time.Time) {
	e.taskMu.Lock()
	defer e.taskMu.Unlock()

	if e.asyncYoloTask != nil {
		select {
		case predictedZone := <-e.asyncYoloTask:
			e.asyncYoloTask = nil
			if predictedZone != "" && e.currentZoneID != "" && predictedZone != e.currentZoneID {
				locLog.Info().
					Str("from", e.currentZoneID).
					Str("to", predictedZone).
					Msg("async classifier detected zone change")
				e.tracker.forceLost()
			}
		default:
			// 任务未完成，零等待返回
		}
	}

	if e.asyncYoloTask == nil && now.Sub(e.lastYoloCheckTime) >= asyncYoloInterval &&
		e.classifier != nil && e.classifier.isLoaded() {
		e.lastYoloCheckTime = now
		snapshot := minimap.Clone()
		task := make(chan string, 1)
		e.asyncYoloTask = task
		go func() {
			defer snapshot.Close()
			task <- e.classifier.predictZone(snapshot)
		}()
	}
}

// locate 单帧定位: 追踪优先，失败后双模交叉验证，再全局搜索。
func (e *engine) locate(minimap gocv.Mat, options LocateOptions) LocateResult {
	now := time.Now()
	result := LocateResult{Status: StatusTrackingLost}

	if !e.initialized {
		result.Status = StatusNotInitialized
		result.Message = "MapLocator not initialized."
		return result
	}

	e.matchCfg.PassThreshold = options.MinScoreThreshold
	e.matchCfg.YoloConfThreshold = options.YoloConfThreshold
	if e.classifier != nil {
		e.classifier.setConfThreshold(options.YoloConfThreshold)
	}

	trackingWasBlocked := false

	if !options.ForceGlobalSearch {
		e.pollAsyncClassifier(minimap, now)

		isNativePathHeatmap := containsOMVBase(e.currentZoneID)

		var strategy matchStrategy
		if e.currentZoneID != "" {
			strategy = newMatchStrategy(e.currentZoneID, e.trackingCfg, e.matchCfg, e.baseImgCfg, e.tierImgCfg, matchModeAuto)
		}

		if strategy != nil {
			trackingTmpl := strategy.extractTemplateFeature(minimap)
			att := e.tryTracking(&trackingTmpl, strategy, now, options)
			trackingTmpl.close()
			trackingWasBlocked = att.screenBlocked

			if att.pos != nil {
				att.pos.Angle = InferYellowArrowRotation(minimap)
				result.Position = att.pos
				result.Status = StatusSuccess
				result.Message = "Tracking Success"
				return result
			}

			if !isNativePathHeatmap && att.hasRaw && att.rawPos.Score > 0.1 {
				fallbackStrategy := newMatchStrategy(e.currentZoneID, e.trackingCfg, e.matchCfg, e.baseImgCfg, e.tierImgCfg, matchModeForcePathHeatmap)
				fallbackTmpl := fallbackStrategy.extractTemplateFeature(minimap)
				fbAtt := e.tryTracking(&fallbackTmpl, fallbackStrategy, now, options)
				fallbackTmpl.close()

				dist := math.Hypot(att.rawPos.X-fbAtt.rawPos.X, att.rawPos.Y-fbAtt.rawPos.Y)
				if fbAtt.hasRaw && fbAtt.rawPos.Score > 0.1 && dist <= 2.0 {
					locLog.Info().Float64("dist", dist).Msg("dual-mode tracking verified, coords matched")
					verified := att.rawPos
					verified.Score = math.Max(att.rawPos.Score, fbAtt.rawPos.Score)

					e.tracker.update(verified, now)
					verified.Angle = InferYellowArrowRotation(minimap)

					result.Position = &verified
					result.Status = StatusSuccess
					result.Message = "Dual-Mode Tracking Success"
					return result
				}
			}
		}
	}

	targetZoneID := options.ExpectedZoneID
	if targetZoneID == "" && e.classifier != nil {
		targetZoneID = e.classifier.predictZone(minimap)
	}

	if targetZoneID == "" {
		result.Status = StatusYoloFailed
		result.Message = "YOLO inference failed or no result."
		return result
	}
	if targetZoneID == "None" {
		locLog.Info().Msg("classifier identified 'None', assuming UI occlusion")

		if last := e.tracker.getLastPos(); last != nil {
			e.tracker.hold(*last, now)
		}

		result.Status = StatusSuccess
		result.Position = &MapPosition{ZoneID: "None", Score: 1.0, Angle: -1}
		result.Message = "Occluded by UI (None)"
		return result
	}

	isNativePathHeatmap := containsOMVBase(targetZoneID)
	nextStrategy := newMatchStrategy(targetZoneID, e.trackingCfg, e.matchCfg, e.baseImgCfg, e.tierImgCfg, matchModeAuto)
	globalTmpl := nextStrategy.extractTemplateFeature(minimap)
	globalResult, rawGlobalPrimary, hasRawPrimary := e.tryGlobalSearch(&globalTmpl, nextStrategy, targetZoneID)
	globalTmpl.close()

	if globalResult == nil && !isNativePathHeatmap && hasRawPrimary && rawGlobalPrimary.Score > 0.1 {
		fallbackStrategy := newMatchStrategy(targetZoneID, e.trackingCfg, e.matchCfg, e.baseImgCfg, e.tierImgCfg, matchModeForcePathHeatmap)
		fallbackTmpl := fallbackStrategy.extractTemplateFeature(minimap)
		_, rawGlobalFallback, hasRawFallback := e.tryGlobalSearch(&fallbackTmpl, fallbackStrategy, targetZoneID)
		fallbackTmpl.close()

		dist := math.Hypot(rawGlobalPrimary.X-rawGlobalFallback.X, rawGlobalPrimary.Y-rawGlobalFallback.Y)
		if hasRawFallback && rawGlobalFallback.Score > 0.1 && dist <= 5.0 {
			locLog.Info().Float64("dist", dist).Msg("dual-mode global search verified")
			verified := rawGlobalPrimary
			verified.Score = math.Max(rawGlobalPrimary.Score, rawGlobalFallback.Score)
			globalResult = &verified
		}
	}

	if globalResult == nil {
		e.tracker.markLost()
		if e.tracker.getLostCount() > maxAllowedLost(targetZoneID, options) {
			e.tracker.forceLost()
		}
		if trackingWasBlocked {
			result.Status = StatusScreenBlocked
			result.Message = "Screen blocked."
			return result
		}
		result.Status = StatusTrackingLost
		result.Message = "Global search failed."
		return result
	}

	if e.currentZoneID != globalResult.ZoneID {
		e.tracker.clearVelocity()
	}

	e.currentZoneID = globalResult.ZoneID
	globalResult.Angle = InferYellowArrowRotation(minimap)

	e.tracker.update(*globalResult, now)

	result.Status = StatusSuccess
	result.Position = globalResult
	result.Message = "Global Search Success"
	return result
}
