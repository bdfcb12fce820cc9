package prompt

import (
	"context"
	"math/rand"
	"strings"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/model"
)

// Generator 根据关键词生成提示词，每个关键词一条，顺序保持不变
type Generator interface {
	Generate(ctx context.Context, keywords []string, brandName string) ([]string, error)
}

// Rand 随机源，测试中可替换为固定实现
type Rand interface {
	IntN(n int) int
}

// Templates 固定的提示词模板
var Templates = []string{
	"What are the top {keyword} {brandType} in {year}?",
	"Best {keyword} {brandType} for enterprise businesses",
	"Leading {keyword} {brandType} with advanced features",
	"Most popular {keyword} {brandType} for small businesses",
	"Top-rated {keyword} {brandType} with best customer reviews",
}

// brandRules 按优先级排列，首个命中的规则生效
var brandRules = []struct {
	words []string
	typ   model.BrandType
}{
	{[]string{"university", "college", "school"}, model.BrandUniversity},
	{[]string{"bank", "finance"}, model.BrandFinancial},
	{[]string{"hospital", "medical", "health"}, model.BrandHealthcare},
	{[]string{"restaurant", "food", "cafe"}, model.BrandRestaurant},
	{[]string{"hotel", "resort"}, model.BrandHospitality},
}

// Classify 按品牌名子串（忽略大小写）推断行业类别
func Classify(brandName string) model.BrandType {
	lower := strings.ToLower(brandName)
	for _, rule := range brandRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.typ
			}
		}
	}
	return model.BrandCompany
}

// Render 用关键词、类别和年份填充模板
func Render(tpl, keyword string, brandType model.BrandType, year string) string {
	return strings.NewReplacer(
		"{keyword}", keyword,
		"{brandType}", string(brandType),
		"{year}", year,
	).Replace(tpl)
}

// Local 本地模板生成器
// 每个关键词随机选择一个模板，同样的输入多次调用结果可能不同
type Local struct {
	year string
	rnd  Rand
}

// Ensure Local implements Generator
var _ Generator = (*Local)(nil)

// NewLocal 创建本地生成器，rnd 为 nil 时使用全局随机源
func NewLocal(year string, rnd Rand) *Local {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Local{year: year, rnd: rnd}
}

// Generate 实现 Generator
func (g *Local) Generate(_ context.Context, keywords []string, brandName string) ([]string, error) {
	brandType := Classify(brandName)
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		tpl := Templates[g.rnd.IntN(len(Templates))]
		out = append(out, Render(tpl, kw, brandType, g.year))
	}
	return out, nil
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }
