package maplocator

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// locLog 是 maplocator 模块的子日志器，自动携带 module=maplocator 字段。
// 包内日志统一使用此 logger，无需手动加前缀。
var locLog zerolog.Logger = log.With().Str("module", "maplocator").Logger()
