package maplocator

import (
	"image"

	"gocv.io/x/gocv"
)

// 游戏内路面标准色 (浅灰偏蓝)，可根据实际采样微调。
const (
	pathTargetB = 237
	pathTargetG = 233
	pathTargetR = 228
	pathMaxDist = 60 // 容差范围
)

// extractPathHeatmapFeature 将图像转换为路面热力图:
// 与路面标准色的 L1 距离越近越亮，暗部边缘和彩色背景直接抹零。
// alpha < 128 的像素不参与。调用方负责 Close 返回值。
func extractPathHeatmapFeature(src gocv.Mat) gocv.Mat {
	var bgr, alpha gocv.Mat
	hasAlpha := src.Channels() == 4
	if hasAlpha {
		chans := gocv.Split(src)
		bgr = gocv.NewMat()
		gocv.Merge(chans[:3], &bgr)
		alpha = chans[3]
		defer alpha.Close()
		defer bgr.Close()
		for _, c := range chans[:3] {
			c.Close()
		}
	} else if src.IsContinuous() {
		bgr = src
	} else {
		// Region 视图不连续，逐行指针遍历前需要拷贝
		bgr = src.Clone()
		defer bgr.Close()
	}

	rows, cols := bgr.Rows(), bgr.Cols()
	feature := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)

	bgrData, errBGR := bgr.DataPtrUint8()
	featData, errFeat := feature.DataPtrUint8()
	var alphaData []byte
	if hasAlpha {
		alphaData, _ = alpha.DataPtrUint8()
	}
	if errBGR != nil || errFeat != nil {
		locLog.Error().Msg("path heatmap: mat data not accessible")
		return feature
	}

	const span = pathMaxDist * 3
	for y := 0; y < rows; y++ {
		bgrRow := bgrData[y*cols*3:]
		featRow := featData[y*cols:]
		var alphaRow []byte
		if alphaData != nil {
			alphaRow = alphaData[y*cols:]
		}
		for x := 0; x < cols; x++ {
			if alphaRow != nil && alphaRow[x] < 128 {
				continue
			}
			b := int(bgrRow[x*3+0])
			g := int(bgrRow[x*3+1])
			r := int(bgrRow[x*3+2])

			dist := absInt(b-pathTargetB) + absInt(g-pathTargetG) + absInt(r-pathTargetR)
			if dist < span {
				featRow[x] = uint8(max(0, 255-dist*255/span))
			}
		}
	}

	// 适度高斯模糊，为 NCC 提供平滑的梯度下降盆地
	gocv.GaussianBlur(feature, &feature, image.Pt(5, 5), 0, 0, gocv.BorderDefault)
	return feature
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
