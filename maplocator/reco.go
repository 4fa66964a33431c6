package maplocator

import (
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"

	"github.com/MaaXYZ/MaaEnd/agent/map-locator/pkg/imgconv"
)

// 进程级共享定位器。大地图与分类器只加载一次，
// 由 Register 在注册时显式初始化，识别热路径只取用已加载的实例。
var (
	sharedLocatorOnce sync.Once
	sharedLocator     *MapLocator
)

// sharedLocatorPaths 资源相对可执行文件的默认布局。
func sharedLocatorPaths() (mapRoot, modelPath string) {
	exe, err := os.Executable()
	if err != nil {
		locLog.Error().Err(err).Msg("cannot resolve executable path")
		return "", ""
	}
	exeDir := filepath.Dir(exe)
	mapRoot = filepath.Join(exeDir, "..", "resource", "image", "Map")
	modelPath = filepath.Join(exeDir, "..", "resource", "model", "map", "cls.onnx")
	if _, err := os.Stat(modelPath); err != nil {
		modelPath = ""
	}
	return mapRoot, modelPath
}

// getOrInitLocator 返回进程级定位器，首次调用时完成初始化。
func getOrInitLocator() *MapLocator {
	sharedLocatorOnce.Do(func() {
		mapRoot, modelPath := sharedLocatorPaths()
		locLog.Info().Str("map_root", mapRoot).Str("model", modelPath).Msg("auto-init shared locator")

		loc := NewMapLocator()
		if !loc.Initialize(Config{MapResourceDir: mapRoot, ModelPath: modelPath}) {
			locLog.Error().Msg("shared locator initialize failed")
		}
		sharedLocator = loc
	})
	return sharedLocator
}

// recoParam 识别回调的 param_json 字段，除 LocateOptions 外
// 允许覆盖小地图 ROI。
type recoParam struct {
	LocateOptions
	RoiX *int `json:"roi_x"`
	RoiY *int `json:"roi_y"`
	RoiW *int `json:"roi_w"`
	RoiH *int `json:"roi_h"`
}

// locateDetail 通过 CustomRecognitionResult.Detail 输出给管线的结果。
type locateDetail struct {
	Status    int     `json:"status"`
	Message   string  `json:"message"`
	MapName   *string `json:"mapName,omitempty"`
	X         *int    `json:"x,omitempty"`
	Y         *int    `json:"y,omitempty"`
	Rot       *float64 `json:"rot,omitempty"`
	LocConf   *float64 `json:"locConf,omitempty"`
	LatencyMs *int64  `json:"latencyMs,omitempty"`
}

// MapLocateRecognition 定位识别回调。
// 成功时 Box 为 (x, y, 1, 1)，Detail 携带完整定位信息；
// Locate 返回失败状态时返回 false 但 Detail 仍然填充状态与原因。
// Locate 之前的失败 (定位器未初始化、图像为空或转换失败、ROI 为空)
// 返回 false，Detail 为 `{}`，不含 status/message。
type MapLocateRecognition struct{}

var _ maa.CustomRecognitionRunner = (*MapLocateRecognition)(nil)

func (r *MapLocateRecognition) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	param := recoParam{LocateOptions: DefaultLocateOptions()}
	if arg.CustomRecognitionParam != "" && arg.CustomRecognitionParam != "{}" {
		if err := sonic.Unmarshal([]byte(arg.CustomRecognitionParam), &param); err != nil {
			locLog.Error().Err(err).Str("raw_param", arg.CustomRecognitionParam).Msg("[MapLocate] failed to parse param")
		}
	}

	locator := getOrInitLocator()
	if locator == nil || !locator.IsInitialized() {
		locLog.Error().Msg("[MapLocate] locator init failed")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}

	if arg.Img == nil {
		locLog.Error().Msg("[MapLocate] image buffer is empty")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}

	img, err := imgconv.ToMatBGRA(arg.Img)
	if err != nil {
		locLog.Error().Err(err).Msg("[MapLocate] image conversion failed")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}
	defer img.Close()

	roi := image.Rect(MinimapROIOriginX, MinimapROIOriginY,
		MinimapROIOriginX+MinimapROIWidth, MinimapROIOriginY+MinimapROIHeight)
	if param.RoiX != nil && param.RoiY != nil && param.RoiW != nil && param.RoiH != nil {
		roi = image.Rect(*param.RoiX, *param.RoiY, *param.RoiX+*param.RoiW, *param.RoiY+*param.RoiH)
	}
	roi = roi.Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))
	if roi.Empty() {
		locLog.Error().Msg("[MapLocate] minimap roi empty")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}

	subImg := img.Region(roi)
	defer subImg.Close()

	result := locator.Locate(subImg, param.LocateOptions)

	detail := locateDetail{
		Status:  int(result.Status),
		Message: result.Message,
	}
	if pos := result.Position; pos != nil {
		x, y := int(pos.X), int(pos.Y)
		detail.MapName = &pos.ZoneID
		detail.X = &x
		detail.Y = &y
		detail.Rot = &pos.Angle
		detail.LocConf = &pos.Score
		detail.LatencyMs = &pos.LatencyMs
	}
	detailJSON, _ := sonic.MarshalString(detail)

	out := &maa.CustomRecognitionResult{Box: arg.Roi, Detail: detailJSON}

	switch {
	case result.Status == StatusSuccess:
		pos := result.Position
		out.Box = maa.Rect{int(pos.X), int(pos.Y), 1, 1}
		locLog.Info().
			Str("zone", pos.ZoneID).
			Float64("x", pos.X).
			Float64("y", pos.Y).
			Float64("rot", pos.Angle).
			Float64("score", pos.Score).
			Int64("latency_ms", pos.LatencyMs).
			Msg("[MapLocate] ok")
		return out, true
	case result.Status == StatusScreenBlocked:
		locLog.Warn().Msg("[MapLocate] screen blocked")
		return out, false
	default:
		locLog.Warn().Str("message", result.Message).Msg("[MapLocate] failed")
		return out, false
	}
}
