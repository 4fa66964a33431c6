package maplocator

// MapPosition 一次成功定位的结果坐标，x/y 指向玩家（模板中心）在大地图上的亚像素位置。
type MapPosition struct {
	ZoneID     string
	X          float64
	Y          float64
	Score      float64
	SliceIndex int
	Scale      float64
	Angle      float64 // 朝向角，正北顺时针 [0, 360)，未知时为 -1
	LatencyMs  int64
}

// Config 初始化参数。
type Config struct {
	MapResourceDir string // 大地图资源根目录
	ModelPath      string // 区域分类模型 (ONNX)，留空则禁用分类器
}

// LocateOptions 单次 locate 调用的参数，对应识别回调 param_json 的字段。
type LocateOptions struct {
	MinScoreThreshold float64 `json:"loc_threshold"`     // 全局搜索及格线
	YoloConfThreshold float64 `json:"yolo_threshold"`    // 分类器置信度阈值
	ForceGlobalSearch bool    `json:"force_global_search"` // 放弃追踪强制全图搜
	ExpectedZoneID    string  `json:"expected_zone"`     // 预期区域先验
	MaxLostFrames     int     `json:"max_lost_frames"`   // 允许丢失追踪的帧数
}

// DefaultLocateOptions 返回与管线默认值一致的调用参数。
func DefaultLocateOptions() LocateOptions {
	return LocateOptions{
		MinScoreThreshold: 0.55,
		YoloConfThreshold: 0.70,
		ForceGlobalSearch: false,
		ExpectedZoneID:    "",
		MaxLostFrames:     3,
	}
}

// LocateStatus 定位结果状态。
type LocateStatus int

const (
	StatusSuccess        LocateStatus = iota
	StatusTrackingLost                // 追踪丢失且全局搜失败
	StatusScreenBlocked               // 画面被 UI 大面积遮挡
	StatusTeleported                  // 速度异常判定为传送
	StatusYoloFailed                  // 分类器未识别出合法地图
	StatusNotInitialized
)

func (s LocateStatus) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusTrackingLost:
		return "TrackingLost"
	case StatusScreenBlocked:
		return "ScreenBlocked"
	case StatusTeleported:
		return "Teleported"
	case StatusYoloFailed:
		return "YoloFailed"
	case StatusNotInitialized:
		return "NotInitialized"
	default:
		return "Unknown"
	}
}

// LocateResult 一次 locate 调用的完整返回。
type LocateResult struct {
	Status   LocateStatus
	Position *MapPosition
	Message  string
}

// 小地图 ROI 与搜索相关常量。
const (
	MinimapROIOriginX = 49
	MinimapROIOriginY = 51
	MinimapROIWidth   = 118
	MinimapROIHeight  = 120

	maxLostTrackingCount = 3
	mobileSearchRadius   = 50.0
)

// TrackingConfig 追踪验证参数。
type TrackingConfig struct {
	MaxNormalSpeed         float64 // px/s，超过判定为传送
	ScreenBlockedThreshold float64 // NCC 低于此值视为遮挡
	EdgeSnapMargin         int
	VelocitySmoothingAlpha float64 // 速度 EMA 平滑系数
	MaxDtForPrediction     float64 // 秒，超时则放弃速度预测
}

// DefaultTrackingConfig 与原始管线一致的默认值。
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		MaxNormalSpeed:         40.0,
		ScreenBlockedThreshold: 0.4,
		EdgeSnapMargin:         1,
		VelocitySmoothingAlpha: 0.5,
		MaxDtForPrediction:     5.0,
	}
}

// MatchConfig 模板匹配参数。
type MatchConfig struct {
	BlurSize          int
	CoarseScale       float64
	FineSearchRadius  int // 精搜半径 (px)
	PassThreshold     float64 // 全局搜索及格线，容忍 UI 遮挡与光影
	YoloConfThreshold float64
}

// DefaultMatchConfig 与原始管线一致的默认值。
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		BlurSize:          7,
		CoarseScale:       0.5,
		FineSearchRadius:  40,
		PassThreshold:     0.55,
		YoloConfThreshold: 0.60,
	}
}

// ImageProcessingConfig 小地图蒙版生成参数。
type ImageProcessingConfig struct {
	IconDiffThreshold        int  // 黄/蓝图标与地图色差判定
	CenterMaskRadius         int  // 玩家箭头遮蔽半径
	GradientBaseWeight       float64 // 梯度加权蒙版的保底权重
	MinimapDarkMaskThreshold int  // 暗部剔除阈值，负值禁用
	BorderMargin             int
	WhiteDilate              int
	ColorDilate              int
	UseHsvWhiteMask          bool
	UseGradientWeight        bool // 启用旧版 Sobel 梯度加权蒙版
}

// baseImageConfig Base 地图（城区大图）的蒙版预设。
func baseImageConfig() ImageProcessingConfig {
	return ImageProcessingConfig{
		IconDiffThreshold:        40,
		CenterMaskRadius:         18,
		GradientBaseWeight:       0.1,
		MinimapDarkMaskThreshold: 20,
		BorderMargin:             10,
		WhiteDilate:              11,
		ColorDilate:              3,
		UseHsvWhiteMask:          true,
	}
}

// tierImageConfig 层级地图（Lv/Tier 图）的蒙版预设。
func tierImageConfig() ImageProcessingConfig {
	return ImageProcessingConfig{
		IconDiffThreshold:        40,
		CenterMaskRadius:         8,
		GradientBaseWeight:       0.1,
		MinimapDarkMaskThreshold: 15,
		BorderMargin:             8,
		WhiteDilate:              9,
		ColorDilate:              3,
		UseHsvWhiteMask:          false,
	}
}
