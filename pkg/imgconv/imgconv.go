// Package imgconv converts Go image.Image values into gocv.Mat (BGRA or BGR).
// There is no gocv.Mat -> image.Image conversion here.
//
// MaaFramework 的自定义识别回调传入的是 image.Image，而定位核心全部运行在
// gocv.Mat 上，这里统一做通道顺序（RGBA -> BGRA）和类型转换。
package imgconv

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// ErrEmptyImage indicates a nil or zero-sized input image.
var ErrEmptyImage = errors.New("imgconv: empty image")

// ToMatBGRA converts any image.Image into a 4-channel BGRA gocv.Mat.
// Alpha is preserved when the source carries it, otherwise fixed at 255.
// The caller owns the returned Mat and must Close it.
func ToMatBGRA(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), ErrEmptyImage
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return gocv.NewMat(), ErrEmptyImage
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC4)
	data, err := mat.DataPtrUint8()
	if err != nil {
		mat.Close()
		return gocv.NewMat(), err
	}

	// RGBA 快速路径: 直接按行交换 R/B 通道
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			srcRow := rgba.Pix[y*rgba.Stride:]
			dstRow := data[y*w*4:]
			for x := 0; x < w; x++ {
				s := x * 4
				dstRow[s+0] = srcRow[s+2] // B
				dstRow[s+1] = srcRow[s+1] // G
				dstRow[s+2] = srcRow[s+0] // R
				dstRow[s+3] = srcRow[s+3] // A
			}
		}
		return mat, nil
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			srcRow := nrgba.Pix[y*nrgba.Stride:]
			dstRow := data[y*w*4:]
			for x := 0; x < w; x++ {
				s := x * 4
				dstRow[s+0] = srcRow[s+2]
				dstRow[s+1] = srcRow[s+1]
				dstRow[s+2] = srcRow[s+0]
				dstRow[s+3] = srcRow[s+3]
			}
		}
		return mat, nil
	}

	// 慢速路径: 任意颜色模型
	for y := 0; y < h; y++ {
		dstRow := data[y*w*4:]
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			s := x * 4
			dstRow[s+0] = uint8(b >> 8)
			dstRow[s+1] = uint8(g >> 8)
			dstRow[s+2] = uint8(r >> 8)
			dstRow[s+3] = uint8(a >> 8)
		}
	}
	return mat, nil
}

// ToMatBGR converts any image.Image into a 3-channel BGR gocv.Mat.
// The caller owns the returned Mat and must Close it.
func ToMatBGR(img image.Image) (gocv.Mat, error) {
	bgra, err := ToMatBGRA(img)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer bgra.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(bgra, &bgr, gocv.ColorBGRAToBGR)
	return bgr, nil
}
