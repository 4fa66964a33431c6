package maplocator

import (
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gocv.io/x/gocv"
	"golang.org/x/image/webp"

	"github.com/MaaXYZ/MaaEnd/agent/map-locator/pkg/imgconv"
)

// layerFileRegex 层级地图文件名: LvNNNTierMMM.<ext>，大小写不敏感。
var layerFileRegex = regexp.MustCompile(`(?i)Lv(\d+)Tier(\d+)\.(png|jpg|webp)$`)

// stripLeadingZeros 去掉数字串前导零，全零保留一位。
func stripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// zoneIDForFile 由文件名与父目录名推导区域 id:
//   - <R>/base.png          -> R_Base
//   - <R>/LvNNNTierMMM.png  -> R_L<level>_<tier> (前导零去除)
//   - 其他                  -> 文件名去扩展名
func zoneIDForFile(parentName, filename string) string {
	if strings.ToLower(filename) == "base.png" {
		return parentName + "_Base"
	}
	if m := layerFileRegex.FindStringSubmatch(filename); m != nil {
		return parentName + "_L" + stripLeadingZeros(m[1]) + "_" + stripLeadingZeros(m[2])
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// decodeZoneImage 解码单张大地图，保留 alpha 并统一为 BGRA。
func decodeZoneImage(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	case ".webp":
		img, err = webp.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return gocv.NewMat(), err
	}
	return imgconv.ToMatBGRA(img)
}

// loadAvailableZones 递归扫描地图根目录，按区域 id 建立只读的大地图表。
// 解码失败的文件跳过并告警。
func loadAvailableZones(root string) map[string]gocv.Mat {
	zones := make(map[string]gocv.Mat)

	if _, err := os.Stat(root); err != nil {
		locLog.Warn().Str("root", root).Msg("map resource dir not found")
		return zones
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		key := zoneIDForFile(filepath.Base(filepath.Dir(path)), d.Name())

		img, decErr := decodeZoneImage(path)
		if decErr != nil {
			locLog.Warn().Err(decErr).Str("path", path).Msg("failed to load map")
			return nil
		}
		if old, ok := zones[key]; ok {
			old.Close()
		}
		zones[key] = img
		locLog.Info().Str("zone", key).Msg("loaded map")
		return nil
	})

	return zones
}
