package engine

import (
	"time"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/model"
)

// Operation 用户触发的操作
type Operation string

const (
	OpExtract  Operation = "keywords"
	OpGenerate Operation = "prompts"
	OpAnalyze  Operation = "analyze"
	OpContact  Operation = "contact"
	OpEdit     Operation = "edit"
)

// Level 通知级别
type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Notice 短暂显示、到期自动消失的通知
type Notice struct {
	Level   Level
	Message string
	TTL     time.Duration
}

// ResultView 结果展示所需的数据，等级在渲染时计算
type ResultView struct {
	BrandName       string
	Result          model.AnalysisResult
	Tier            model.Tier
	Advice          string
	Recommendations []string
	Canned          bool // 服务端未给出建议，使用固定建议
}

// NewResultView 由分析结果构造展示数据
func NewResultView(brandName string, r model.AnalysisResult) ResultView {
	tier := model.TierFor(r.VisibilityPercentage)
	v := ResultView{
		BrandName:       brandName,
		Result:          r,
		Tier:            tier,
		Advice:          tier.Advice(),
		Recommendations: r.Recommendations,
	}
	if len(v.Recommendations) == 0 {
		v.Recommendations = tier.CannedRecommendations()
		v.Canned = true
	}
	return v
}

// Presenter 展示层端口，核心逻辑不依赖具体 UI
type Presenter interface {
	ShowKeywords(keywords []string)
	ShowPrompts(prompts []string)
	ShowResult(view ResultView)
	ShowPromo()
	HidePromo()
	Notify(n Notice)
	// SetBusy 操作进行中时禁用所有控件
	SetBusy(op Operation, busy bool)
}

// PromptReader 可选接口：返回界面上当前（用户编辑后）的提示词
// 每次 ShowPrompts 都以传入的列表整体替换界面内容
type PromptReader interface {
	DisplayedPrompts() []string
}

// Scheduler 延迟执行，定时器不可取消
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }
