package maplocator

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// texHash 确定性像素噪声源。
func texHash(x, y, seed, channel uint32) uint32 {
	h := x*73856093 ^ y*19349663 ^ seed*83492791 ^ channel*2654435761
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}

// synthTexture 生成平滑的确定性噪声纹理 (BGR, 通道值 40..170)。
// 7x7 邻域平均后纹理相关长度远大于匹配用的高斯核，
// 互相关峰值在正确位置保持尖锐且唯一。
func synthTexture(w, h int, seed uint32) gocv.Mat {
	raw := make([][3]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				raw[y*w+x][c] = float64(texHash(uint32(x), uint32(y), seed, uint32(c)) % 256)
			}
		}
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	data, err := mat.DataPtrUint8()
	if err != nil {
		panic(err)
	}

	const r = 3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum [3]float64
			var n float64
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					sx, sy := x+dx, y+dy
					if sx < 0 || sy < 0 || sx >= w || sy >= h {
						continue
					}
					for c := 0; c < 3; c++ {
						sum[c] += raw[sy*w+sx][c]
					}
					n++
				}
			}
			off := (y*w + x) * 3
			for c := 0; c < 3; c++ {
				// 压缩到 40..170，避开暗部剔除与白色/路面色判定
				data[off+c] = uint8(40 + sum[c]/n*130.0/255.0)
			}
		}
	}
	return mat
}

// synthHaystack 生成 BGRA 大地图。
func synthHaystack(w, h int, seed uint32) gocv.Mat {
	bgr := synthTexture(w, h, seed)
	defer bgr.Close()
	bgra := gocv.NewMat()
	gocv.CvtColor(bgr, &bgra, gocv.ColorBGRToBGRA)
	return bgra
}

// carveMinimap 从大地图上以 (cx, cy) 为中心抠一张小地图。
func carveMinimap(haystack gocv.Mat, cx, cy int) gocv.Mat {
	rect := image.Rect(cx-MinimapROIWidth/2, cy-MinimapROIHeight/2,
		cx-MinimapROIWidth/2+MinimapROIWidth, cy-MinimapROIHeight/2+MinimapROIHeight)
	region := haystack.Region(rect)
	defer region.Close()
	return region.Clone()
}

func imageRect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// angularDiff 环绕角度差的绝对值。
func angularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360.0)
	if d > 180 {
		d = 360 - d
	}
	return d
}
