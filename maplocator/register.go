package maplocator

import "github.com/MaaXYZ/maa-framework-go/v4"

var (
	_ maa.CustomRecognitionRunner = (*MapLocateRecognition)(nil)
)

// Register registers all custom recognition components for maplocator package
func Register() {
	getOrInitLocator()
	maa.AgentServerRegisterCustomRecognition("MapLocateRecognition", &MapLocateRecognition{})
}
