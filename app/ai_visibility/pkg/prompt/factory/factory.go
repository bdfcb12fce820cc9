package factory

import (
	"fmt"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/api"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/config"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/prompt"
)

// NewGenerator 根据配置创建提示词生成器
func NewGenerator(cfg *config.Config, svc api.Service, rnd prompt.Rand) (prompt.Generator, error) {
	switch cfg.Prompts.Source {
	case "", config.PromptSourceLocal:
		year := cfg.Prompts.Year
		if year == "" {
			year = config.DefaultYear
		}
		return prompt.NewLocal(year, rnd), nil

	case config.PromptSourceRemote:
		if svc == nil {
			return nil, fmt.Errorf("remote prompt source requires an api client")
		}
		return prompt.NewRemote(svc), nil

	default:
		return nil, fmt.Errorf("unknown prompt source: %s", cfg.Prompts.Source)
	}
}
