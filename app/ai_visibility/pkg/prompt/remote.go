package prompt

import (
	"context"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/api"
)

// Remote 委托 /api/prompts 生成提示词
type Remote struct {
	svc api.Service
}

// Ensure Remote implements Generator
var _ Generator = (*Remote)(nil)

// NewRemote 创建服务端生成器
func NewRemote(svc api.Service) *Remote {
	return &Remote{svc: svc}
}

// Generate 实现 Generator
func (g *Remote) Generate(ctx context.Context, keywords []string, brandName string) ([]string, error) {
	return g.svc.GeneratePrompts(ctx, &api.PromptsRequest{
		Keywords:  keywords,
		BrandName: brandName,
	})
}
