package maplocator

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

// drawArrow 在小地图中心画一个指向 headingDeg 的白色等腰箭头。
func drawArrow(minimap *gocv.Mat, headingDeg float64) {
	cx := minimap.Cols() / 2
	cy := minimap.Rows() / 2

	rad := headingDeg * math.Pi / 180.0
	vertex := func(offsetDeg, r float64) image.Point {
		a := rad + offsetDeg*math.Pi/180.0
		return image.Pt(cx+int(math.Round(r*math.Sin(a))), cy-int(math.Round(r*math.Cos(a))))
	}

	// 尖端离质心明显更远，保证最远顶点判定稳定
	tri := []image.Point{
		vertex(0, 9),
		vertex(150, 5),
		vertex(-150, 5),
	}

	pv := gocv.NewPointVectorFromPoints(tri)
	defer pv.Close()
	pts := gocv.NewPointsVector()
	defer pts.Close()
	pts.Append(pv)
	gocv.FillPoly(minimap, pts, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func TestInferYellowArrowRotationSteps(t *testing.T) {
	for deg := 0.0; deg < 360.0; deg += 45.0 {
		minimap := synthTexture(MinimapROIWidth, MinimapROIHeight, 21)
		drawArrow(&minimap, deg)

		got := InferYellowArrowRotation(minimap)
		minimap.Close()

		if got < 0 {
			t.Errorf("heading %.0f: estimator failed", deg)
			continue
		}
		if got >= 360.0 {
			t.Errorf("heading %.0f: result %v out of [0, 360)", deg, got)
		}
		if d := angularDiff(got, deg); d > 10.0 {
			t.Errorf("heading %.0f: got %.1f (diff %.1f)", deg, got, d)
		}
	}
}

func TestInferYellowArrowRotationNoArrow(t *testing.T) {
	minimap := synthTexture(MinimapROIWidth, MinimapROIHeight, 22)
	defer minimap.Close()
	if got := InferYellowArrowRotation(minimap); got != -1.0 {
		t.Errorf("textured minimap without arrow: got %v, want -1", got)
	}
}

func TestInferYellowArrowRotationTooSmall(t *testing.T) {
	tiny := synthTexture(10, 10, 23)
	defer tiny.Close()
	if got := InferYellowArrowRotation(tiny); got != -1.0 {
		t.Errorf("undersized input: got %v, want -1", got)
	}
}

func TestInferYellowArrowRotationOffCenterIgnored(t *testing.T) {
	minimap := synthTexture(MinimapROIWidth, MinimapROIHeight, 24)
	defer minimap.Close()

	// 白色斑块远离中心窗口，不应被当作箭头
	white := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 6, 6, gocv.MatTypeCV8UC3)
	defer white.Close()
	region := minimap.Region(imageRect(10, 10, 6, 6))
	white.CopyTo(&region)
	region.Close()

	if got := InferYellowArrowRotation(minimap); got != -1.0 {
		t.Errorf("off-center blob must not read as an arrow, got %v", got)
	}
}
