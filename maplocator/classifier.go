package maplocator

import (
	"fmt"
	"image"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"gocv.io/x/gocv"
)

// zonePredictor 区域分类器的窄接口，便于在测试里注入桩实现。
type zonePredictor interface {
	predictZone(minimap gocv.Mat) string
	isLoaded() bool
	setConfThreshold(t float64)
	close()
}

const (
	clsInputSize    = 128 // 分类网络输入边长
	clsMaskDiameter = 106 // 小地图有效区域直径
)

// classNameLvTierRegex 类名中的层级段: Map07Lv003Tier012 之类。
var classNameLvTierRegex = regexp.MustCompile(`(Map\d+)Lv0*(\d+)Tier0*(\d+)`)

// classifierMeta 模型旁的 JSON 元数据。
type classifierMeta struct {
	InputName     string            `json:"input_name"`
	OutputName    string            `json:"output_name"`
	Classes       []string          `json:"classes"`
	RegionMapping map[string]string `json:"region_mapping"`
}

// zoneClassifier 封装单输入单输出的图像分类网络。
// 模型对象被互斥锁保护，同步与异步推理在此串行。
type zoneClassifier struct {
	mu            sync.Mutex
	net           gocv.Net
	loaded        bool
	meta          classifierMeta
	confThreshold float64
}

// newZoneClassifier 加载模型与元数据。任一缺失或损坏则分类器被禁用，
// 引擎仍可从已知状态继续追踪。
func newZoneClassifier(modelPath string, confThreshold float64) *zoneClassifier {
	c := &zoneClassifier{confThreshold: confThreshold}
	if modelPath == "" {
		return c
	}
	if _, err := os.Stat(modelPath); err != nil {
		locLog.Warn().Str("path", modelPath).Msg("classifier model not found")
		return c
	}

	metaPath := strings.TrimSuffix(modelPath, ".onnx") + ".json"
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		locLog.Warn().Str("path", metaPath).Msg("classifier meta not found, classifier disabled")
		return c
	}
	var meta classifierMeta
	if err := sonic.Unmarshal(raw, &meta); err != nil {
		locLog.Warn().Err(err).Str("path", metaPath).Msg("invalid classifier meta, classifier disabled")
		return c
	}
	if meta.InputName == "" || meta.OutputName == "" || len(meta.Classes) == 0 {
		locLog.Warn().Str("path", metaPath).Msg("incomplete classifier meta, classifier disabled")
		return c
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		locLog.Error().Str("path", modelPath).Msg("failed to load classifier model")
		return c
	}

	c.net = net
	c.meta = meta
	c.loaded = true
	locLog.Info().Str("model", modelPath).Int("classes", len(meta.Classes)).Msg("classifier loaded")
	return c
}

func (c *zoneClassifier) isLoaded() bool { return c.loaded }

func (c *zoneClassifier) setConfThreshold(t float64) {
	c.mu.Lock()
	c.confThreshold = t
	c.mu.Unlock()
}

func (c *zoneClassifier) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		c.net.Close()
		c.loaded = false
	}
}

// convertClassNameToZoneID 把分类网络类名翻译成区域 id。
// 先按前 5 字符查 region_mapping，再依次套 Base / LvTier 规则，
// 都不中时原样返回。对已翻译 id 调用是恒等变换。
func (c *zoneClassifier) convertClassNameToZoneID(className string) string {
	prefix := className
	if len(className) >= 5 {
		prefix = className[:5]
	}

	if regionName, ok := c.meta.RegionMapping[prefix]; ok {
		if strings.Contains(className, "Base") && strings.Contains(className, "Map") {
			return regionName + "_Base"
		}
		if m := classNameLvTierRegex.FindStringSubmatch(className); m != nil {
			return regionName + "_L" + m[2] + "_" + m[3]
		}
	}
	return className
}

// preprocess 生成 1x3x128x128 的 NCHW 输入:
// 居中贴到黑色画布，圆形有效区外抹零，BGR 转 RGB 并归一化到 [0,1]。
func (c *zoneClassifier) preprocess(minimap gocv.Mat) gocv.Mat {
	img3C := gocv.NewMat()
	if minimap.Channels() == 4 {
		gocv.CvtColor(minimap, &img3C, gocv.ColorBGRAToBGR)
	} else {
		minimap.CopyTo(&img3C)
	}
	defer img3C.Close()

	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), clsInputSize, clsInputSize, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	h, w := img3C.Rows(), img3C.Cols()
	cropW := min(w, clsInputSize)
	cropH := min(h, clsInputSize)
	startX := max(0, (clsInputSize-w)/2)
	startY := max(0, (clsInputSize-h)/2)

	srcRegion := img3C.Region(image.Rect((w-cropW)/2, (h-cropH)/2, (w-cropW)/2+cropW, (h-cropH)/2+cropH))
	dstRegion := canvas.Region(image.Rect(startX, startY, startX+cropW, startY+cropH))
	srcRegion.CopyTo(&dstRegion)
	srcRegion.Close()
	dstRegion.Close()

	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), clsInputSize, clsInputSize, gocv.MatTypeCV8UC1)
	defer mask.Close()
	gocv.Circle(&mask, image.Pt(clsInputSize/2, clsInputSize/2), clsMaskDiameter/2, white255, -1)

	processed := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), clsInputSize, clsInputSize, gocv.MatTypeCV8UC3)
	defer processed.Close()
	gocv.BitwiseAndWithMask(canvas, canvas, &processed, mask)

	return gocv.BlobFromImage(processed, 1.0/255.0, image.Pt(clsInputSize, clsInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
}

// predictZone 同步推理一次。类名为 "None" 表示 UI 遮挡直接透传；
// 置信度不过线或推理异常返回空串。
func (c *zoneClassifier) predictZone(minimap gocv.Mat) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		locLog.Error().Msg("classifier: model is not loaded")
		return ""
	}
	if minimap.Empty() {
		locLog.Error().Msg("classifier: input minimap is empty")
		return ""
	}

	blob := c.preprocess(minimap)
	defer blob.Close()

	c.net.SetInput(blob, c.meta.InputName)
	output := c.net.Forward(c.meta.OutputName)
	defer output.Close()
	if output.Empty() {
		return ""
	}

	scores, err := output.DataPtrFloat32()
	if err != nil {
		locLog.Error().Err(err).Msg("classifier: output tensor not accessible")
		return ""
	}

	maxIdx := -1
	maxConf := float32(-1.0)
	for i, s := range scores {
		if s > maxConf {
			maxConf = s
			maxIdx = i
		}
	}

	predictedName := "Unknown"
	if maxIdx >= 0 && maxIdx < len(c.meta.Classes) {
		predictedName = c.meta.Classes[maxIdx]
	}

	locLog.Info().
		Str("class", predictedName).
		Int("index", maxIdx).
		Float64("conf", float64(maxConf)).
		Msg("classifier raw result")

	if predictedName == "None" {
		return "None"
	}

	if float64(maxConf) > c.confThreshold && maxIdx < len(c.meta.Classes) {
		zoneID := c.convertClassNameToZoneID(predictedName)
		locLog.Info().
			Str("class", predictedName).
			Str("zone", zoneID).
			Str("conf", fmt.Sprintf("%.1f%%", maxConf*100)).
			Msg("classifier success")
		return zoneID
	}

	locLog.Info().
		Float64("conf", float64(maxConf)).
		Float64("threshold", c.confThreshold).
		Msg("classifier: low confidence")
	return ""
}
