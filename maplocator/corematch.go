package maplocator

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// MatchResultRaw 一次模板匹配的原始输出与三项置信度指标。
type MatchResultRaw struct {
	Score       float64
	Loc         image.Point
	SecondScore float64 // 峰值抑制区外的次高分
	Delta       float64 // Score - SecondScore
	PSR         float64 // 峰值旁瓣比
}

// grayOf 返回 src 的单通道灰度副本，调用方负责 Close。
func grayOf(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	switch src.Channels() {
	case 4:
		gocv.CvtColor(src, &dst, gocv.ColorBGRAToGray)
	case 3:
		gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	default:
		dst.Close()
		return src.Clone()
	}
	return dst
}

// CoreMatch 带权重蒙版的归一化互相关模板匹配。
// blurSize > 0 时只对搜索图做高斯模糊。模板大于搜索图或蒙版有效像素
// 不足 5 个时返回 ok=false。
func CoreMatch(searchRaw, templRaw, weightMask gocv.Mat, blurSize int) (MatchResultRaw, bool) {
	var out MatchResultRaw
	if searchRaw.Rows() < templRaw.Rows() || searchRaw.Cols() < templRaw.Cols() {
		return out, false
	}

	searchImg := grayOf(searchRaw)
	defer searchImg.Close()
	templ := grayOf(templRaw)
	defer templ.Close()

	if blurSize > 0 {
		gocv.GaussianBlur(searchImg, &searchImg, image.Pt(blurSize, blurSize), 0, 0, gocv.BorderDefault)
	}

	if gocv.CountNonZero(weightMask) < 5 {
		return out, false
	}

	result := gocv.NewMat()
	defer result.Close()
	gocv.MatchTemplate(searchImg, templ, &result, gocv.TmCcoeffNormed, weightMask)
	if result.Empty() {
		return out, false
	}

	data, err := result.DataPtrFloat32()
	if err != nil {
		locLog.Error().Err(err).Msg("[CoreMatch] response surface not accessible")
		return out, false
	}

	rows, cols := result.Rows(), result.Cols()

	// 修补 NaN/Inf 并定位峰值
	maxVal := float32(math.Inf(-1))
	maxIdx := 0
	for i, v := range data {
		if !isFinite32(v) {
			data[i] = -1.0
			v = -1.0
		}
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}
	peak := image.Pt(maxIdx%cols, maxIdx/cols)

	// 峰值抑制区: 次高分与旁瓣统计都在此区之外计算
	ex := max(3, min(templ.Cols(), templ.Rows())/10)
	sup := image.Rect(peak.X-ex, peak.Y-ex, peak.X+ex+1, peak.Y+ex+1).
		Intersect(image.Rect(0, 0, cols, rows))

	secondVal := float32(math.Inf(-1))
	side := make([]float64, 0, rows*cols)
	for y := 0; y < rows; y++ {
		rowOff := y * cols
		for x := 0; x < cols; x++ {
			if image.Pt(x, y).In(sup) {
				continue
			}
			v := data[rowOff+x]
			if v > secondVal {
				secondVal = v
			}
			side = append(side, float64(v))
		}
	}

	var mean, std float64
	if len(side) > 0 {
		mean, std = stat.PopMeanStdDev(side, nil)
	} else {
		// 抑制区覆盖了整个响应面 (模板与搜索图等大)
		secondVal = -2.0
	}

	out.Score = float64(maxVal)
	out.Loc = peak
	out.SecondScore = float64(secondVal)
	out.Delta = float64(maxVal - secondVal)
	out.PSR = (float64(maxVal) - mean) / (std + 1e-6)
	return out, true
}

func isFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
