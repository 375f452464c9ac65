package generation

import (
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
)

// GenerationProviders are the provider tags wired to idea and brief generation
var GenerationProviders = []string{
	models.ProviderOpenRouter,
	models.ProviderGemini,
	models.ProviderGPTOSS,
	models.ProviderDeepSeek,
	models.ProviderQwen,
	models.ProviderGLM,
}

// Capability describes one kind of generation request
type Capability struct {
	Name      string
	Providers []string
	Options   provider.Options
}

var (
	// IdeasCapability generates ten content ideas
	IdeasCapability = Capability{
		Name:      models.CapabilityIdeas,
		Providers: GenerationProviders,
		Options:   provider.Options{Temperature: 0.8, MaxTokens: 2000},
	}
	// BriefCapability generates one content brief
	BriefCapability = Capability{
		Name:      models.CapabilityBrief,
		Providers: GenerationProviders,
		Options:   provider.Options{Temperature: 0.7, MaxTokens: 2500},
	}
)
