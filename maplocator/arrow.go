package maplocator

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// arrowPatchRadius 中心箭头截取半径，得到 24x24 的检测窗口。
const arrowPatchRadius = 12

// contourCentroid 通过填充轮廓的图像矩求质心。
// 面积为零时退化为首个轮廓点。
func contourCentroid(contour gocv.PointVector, size image.Point) (float64, float64, float64) {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), size.Y, size.X, gocv.MatTypeCV8UC1)
	defer canvas.Close()

	pts := gocv.NewPointsVector()
	defer pts.Close()
	pts.Append(contour)
	gocv.DrawContours(&canvas, pts, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	m := gocv.Moments(canvas, true)
	m00 := m["m00"]
	if m00 <= 0 {
		p := contour.At(0)
		return float64(p.X), float64(p.Y), 0
	}
	return m["m10"] / m00, m["m01"] / m00, m00
}

// fitEnclosingTriangle 在高分辨率轮廓上做三角形拟合。
// 逐步放大多边形简化容差直到顶点数降到 3，降不到或跳过 3 直接到更少
// 则认为不是箭头形状。
func fitEnclosingTriangle(contour gocv.PointVector) ([]image.Point, bool) {
	if contour.Size() < 3 {
		return nil, false
	}
	perimeter := gocv.ArcLength(contour, true)
	if perimeter <= 0 {
		return nil, false
	}

	eps := perimeter * 0.02
	for i := 0; i < 24; i++ {
		approx := gocv.ApproxPolyDP(contour, eps, true)
		n := approx.Size()
		if n == 3 {
			tri := approx.ToPoints()
			approx.Close()
			return tri, true
		}
		approx.Close()
		if n < 3 {
			return nil, false
		}
		eps *= 1.3
	}
	return nil, false
}

// InferYellowArrowRotation 估计小地图中心玩家箭头的朝向。
// 返回正北顺时针角度 [0, 360)，任一步骤失败返回 -1。
func InferYellowArrowRotation(minimap gocv.Mat) float64 {
	if minimap.Empty() {
		return -1.0
	}

	cx := minimap.Cols() / 2
	cy := minimap.Rows() / 2
	radius := arrowPatchRadius

	if cx-radius < 0 || cy-radius < 0 || cx+radius > minimap.Cols() || cy+radius > minimap.Rows() {
		return -1.0
	}

	roi := image.Rect(cx-radius, cy-radius, cx+radius, cy+radius)
	patch := minimap.Region(roi)
	defer patch.Close()

	patchBGR := gocv.NewMat()
	defer patchBGR.Close()
	if patch.Channels() == 4 {
		gocv.CvtColor(patch, &patchBGR, gocv.ColorBGRAToBGR)
	} else {
		patch.CopyTo(&patchBGR)
	}

	whiteMask := gocv.NewMat()
	defer whiteMask.Close()
	gocv.InRangeWithScalar(patchBGR, gocv.NewScalar(220, 220, 220, 0), gocv.NewScalar(255, 255, 255, 0), &whiteMask)

	contours := gocv.FindContours(whiteMask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return -1.0
	}

	// 选离窗口中心最近的轮廓，太远说明不是中心箭头
	patchSize := image.Pt(whiteMask.Cols(), whiteMask.Rows())
	centerX, centerY := float64(radius), float64(radius)
	bestIdx := -1
	minDistSq := 1e9
	for i := 0; i < contours.Size(); i++ {
		mx, my, _ := contourCentroid(contours.At(i), patchSize)
		dSq := (mx-centerX)*(mx-centerX) + (my-centerY)*(my-centerY)
		if dSq < minDistSq {
			minDistSq = dSq
			bestIdx = i
		}
	}
	if bestIdx == -1 || minDistSq > 25.0 {
		return -1.0
	}

	isolated := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), whiteMask.Rows(), whiteMask.Cols(), gocv.MatTypeCV8UC1)
	defer isolated.Close()
	gocv.DrawContours(&isolated, contours, bestIdx, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	// x16 放大 + 重新二值化，消除低分辨率锯齿对顶点拟合的干扰
	highRes := gocv.NewMat()
	defer highRes.Close()
	gocv.Resize(isolated, &highRes, image.Point{}, 16.0, 16.0, gocv.InterpolationCubic)
	gocv.Threshold(highRes, &highRes, 127, 255, gocv.ThresholdBinary)

	hrContours := gocv.FindContours(highRes, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer hrContours.Close()
	if hrContours.Size() == 0 {
		return -1.0
	}

	hrBestIdx := 0
	maxArea := 0.0
	for i := 0; i < hrContours.Size(); i++ {
		area := gocv.ContourArea(hrContours.At(i))
		if area > maxArea {
			maxArea = area
			hrBestIdx = i
		}
	}

	hrSize := image.Pt(highRes.Cols(), highRes.Rows())
	centroidX, centroidY, m00 := contourCentroid(hrContours.At(hrBestIdx), hrSize)
	if m00 <= 0 {
		return -1.0
	}

	triangle, ok := fitEnclosingTriangle(hrContours.At(hrBestIdx))
	if !ok || len(triangle) != 3 {
		return -1.0
	}

	// 距质心最远的顶点即箭头尖端
	tipIdx := 0
	maxDistSq := -1.0
	for i, p := range triangle {
		dx := float64(p.X) - centroidX
		dy := float64(p.Y) - centroidY
		distSq := dx*dx + dy*dy
		if distSq > maxDistSq {
			maxDistSq = distSq
			tipIdx = i
		}
	}

	dx := float64(triangle[tipIdx].X) - centroidX
	dy := float64(triangle[tipIdx].Y) - centroidY

	angleDeg := math.Atan2(dx, -dy) * 180.0 / math.Pi
	if angleDeg < 0 {
		angleDeg += 360.0
	}
	return angleDeg
}
