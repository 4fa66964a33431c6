package maplocator

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// white255 画蒙版用的纯白。
var white255 = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// zeroWhere 将 dst 中 mask 非零处清零。
func zeroWhere(dst *gocv.Mat, mask gocv.Mat) {
	zeros := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), dst.Rows(), dst.Cols(), dst.Type())
	defer zeros.Close()
	zeros.CopyToWithMask(dst, mask)
}

// GenerateMinimapMask 生成小地图的单通道二值权重蒙版。
// 依次从圆形有效区里减去: UI 图标 (白色/彩色图例)、中心玩家箭头、暗部空洞。
// withUiMask / withCenterMask 控制对应步骤是否执行。
func GenerateMinimapMask(minimap gocv.Mat, cfg ImageProcessingConfig, withUiMask, withCenterMask bool) gocv.Mat {
	w, h := minimap.Cols(), minimap.Rows()
	centerX, centerY := w/2, h/2
	radius := min(w, h)/2 - cfg.BorderMargin
	if radius < 0 {
		radius = 0
	}

	baseMask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC1)
	gocv.Circle(&baseMask, image.Pt(centerX, centerY), radius, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	workImg := minimap
	var tempBGR gocv.Mat
	if minimap.Channels() == 4 {
		tempBGR = gocv.NewMat()
		defer tempBGR.Close()
		gocv.CvtColor(minimap, &tempBGR, gocv.ColorBGRAToBGR)
		workImg = tempBGR
	}

	if withUiMask {
		whiteMask := gocv.NewMat()
		defer whiteMask.Close()
		gocv.InRangeWithScalar(workImg, gocv.NewScalar(255, 255, 255, 0), gocv.NewScalar(255, 255, 255, 0), &whiteMask)

		if cfg.UseHsvWhiteMask {
			hsvImg := gocv.NewMat()
			hsvWhite := gocv.NewMat()
			gocv.CvtColor(workImg, &hsvImg, gocv.ColorBGRToHSV)
			gocv.InRangeWithScalar(hsvImg, gocv.NewScalar(0, 0, 200, 0), gocv.NewScalar(180, 60, 255, 0), &hsvWhite)
			gocv.BitwiseOr(whiteMask, hsvWhite, &whiteMask)
			hsvWhite.Close()
			hsvImg.Close()
		}

		colorIconMask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC1)
		defer colorIconMask.Close()

		imgData, errImg := workImg.DataPtrUint8()
		baseData, errBase := baseMask.DataPtrUint8()
		colorData, errColor := colorIconMask.DataPtrUint8()
		if errImg == nil && errBase == nil && errColor == nil {
			for y := 0; y < h; y++ {
				imgRow := imgData[y*w*3:]
				baseRow := baseData[y*w:]
				colorRow := colorData[y*w:]
				for x := 0; x < w; x++ {
					if baseRow[x] == 0 {
						continue
					}
					b := int(imgRow[x*3+0])
					g := int(imgRow[x*3+1])
					r := int(imgRow[x*3+2])
					// 饱和黄色/青色图例判定
					if (r > 100 && g > 100 && min(r, g)-b > cfg.IconDiffThreshold) ||
						(b > 140 && b > r+50) {
						colorRow[x] = 255
					}
				}
			}
		}

		cD := max(1, cfg.ColorDilate)
		colorKernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(cD, cD))
		gocv.Dilate(colorIconMask, &colorIconMask, colorKernel)
		colorKernel.Close()
		zeroWhere(&baseMask, colorIconMask)

		wD := max(1, cfg.WhiteDilate)
		whiteKernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(wD, wD))
		gocv.Dilate(whiteMask, &whiteMask, whiteKernel)
		whiteKernel.Close()
		zeroWhere(&baseMask, whiteMask)
	}

	if withCenterMask {
		gocv.Circle(&baseMask, image.Pt(centerX, centerY), cfg.CenterMaskRadius, color.RGBA{A: 255}, -1)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if minimap.Channels() == 4 {
		gocv.CvtColor(minimap, &gray, gocv.ColorBGRAToGray)
	} else {
		gocv.CvtColor(minimap, &gray, gocv.ColorBGRToGray)
	}

	// 阈值为负时不会命中任何像素，暗部剔除自然关闭
	darkMask := gocv.NewMat()
	defer darkMask.Close()
	gocv.Threshold(gray, &darkMask, float32(cfg.MinimapDarkMaskThreshold), 255, gocv.ThresholdBinaryInv)
	zeroWhere(&baseMask, darkMask)

	return baseMask
}

// GenerateGradientWeightMask 旧版服务的 Sobel 梯度加权浮点蒙版。
// 纹理丰富区域贡献更大，平坦区保底 GradientBaseWeight 防止零贡献。
// 仅当 ImageProcessingConfig.UseGradientWeight 打开时由策略层选用。
func GenerateGradientWeightMask(minimap gocv.Mat, cfg ImageProcessingConfig) gocv.Mat {
	binary := GenerateMinimapMask(minimap, cfg, true, true)
	defer binary.Close()

	floatMask := gocv.NewMat()
	binary.ConvertToWithParams(&floatMask, gocv.MatTypeCV32F, 1.0/255.0, 0)

	gray := gocv.NewMat()
	defer gray.Close()
	if minimap.Channels() == 4 {
		gocv.CvtColor(minimap, &gray, gocv.ColorBGRAToGray)
	} else {
		gocv.CvtColor(minimap, &gray, gocv.ColorBGRToGray)
	}

	gradX := gocv.NewMat()
	gradY := gocv.NewMat()
	defer gradX.Close()
	defer gradY.Close()
	gocv.Sobel(gray, &gradX, gocv.MatTypeCV32F, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &gradY, gocv.MatTypeCV32F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	zeros := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), gray.Rows(), gray.Cols(), gocv.MatTypeCV32F)
	defer zeros.Close()
	absX := gocv.NewMat()
	absY := gocv.NewMat()
	defer absX.Close()
	defer absY.Close()
	gocv.AbsDiff(gradX, zeros, &absX)
	gocv.AbsDiff(gradY, zeros, &absY)

	gradMag := gocv.NewMat()
	defer gradMag.Close()
	gocv.Add(absX, absY, &gradMag)

	_, maxVal, _, _ := gocv.MinMaxLoc(gradMag)
	if maxVal > 0 {
		gradMag.DivideFloat(maxVal)
	}
	gradMag.AddFloat(float32(cfg.GradientBaseWeight))
	gocv.Threshold(gradMag, &gradMag, 1.0, 1.0, gocv.ThresholdTrunc)

	final := gocv.NewMat()
	gocv.Multiply(floatMask, gradMag, &final)
	return final
}
