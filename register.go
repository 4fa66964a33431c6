package main

import (
	"github.com/MaaXYZ/MaaEnd/agent/map-locator/maplocator"
	"github.com/rs/zerolog/log"
)

func registerAll() {
	// Register all custom components from each package
	maplocator.Register()

	log.Info().
		Msg("All custom components registered successfully")
}
