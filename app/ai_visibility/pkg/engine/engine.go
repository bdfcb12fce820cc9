package engine

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/api"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/config"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/errs"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/logger"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/model"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/prompt"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/validate"
)

// ContactThanks 联系方式提交成功后的提示
const ContactThanks = "Thank you! We'll be in touch soon with early access details."

// 分析请求固定的平台列表
var platforms = []string{"chatgpt"}

// Options 引擎选项
type Options struct {
	PromoDelay    time.Duration
	ContactDelay  time.Duration
	NoticeTTL     time.Duration
	SuccessTTL    time.Duration
	EnforceLimits bool
	Scheduler     Scheduler
}

// OptionsFromConfig 由配置构造选项
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PromoDelay:    cfg.UI.PromoDelay,
		ContactDelay:  cfg.UI.ContactDelay,
		NoticeTTL:     cfg.UI.NoticeTTL,
		SuccessTTL:    cfg.UI.SuccessTTL,
		EnforceLimits: cfg.UI.EnforceLimits,
	}
}

// Engine 客户端编排器
// 按 提取关键词 → 生成提示词 → 分析 的顺序调用远端服务，并维护会话状态
type Engine struct {
	svc  api.Service
	gen  prompt.Generator
	view Presenter
	opts Options

	mu             sync.Mutex
	busy           bool
	contactPending bool
	session        model.Session
}

// NewEngine 创建引擎实例
func NewEngine(svc api.Service, gen prompt.Generator, view Presenter, opts Options) *Engine {
	if opts.Scheduler == nil {
		opts.Scheduler = timeScheduler{}
	}
	if opts.PromoDelay == 0 {
		opts.PromoDelay = config.DefaultPromoDelay
	}
	if opts.ContactDelay == 0 {
		opts.ContactDelay = config.DefaultContactDelay
	}
	if opts.NoticeTTL == 0 {
		opts.NoticeTTL = config.DefaultNoticeTTL
	}
	if opts.SuccessTTL == 0 {
		opts.SuccessTTL = config.DefaultSuccessTTL
	}
	return &Engine{svc: svc, gen: gen, view: view, opts: opts}
}

// Session 返回会话状态快照
func (e *Engine) Session() model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

// ExtractKeywords 校验品牌信息并请求关键词，成功时整体替换关键词列表
func (e *Engine) ExtractKeywords(ctx context.Context, brandName, brandDomain string) ([]string, error) {
	name, domain, err := validate.Brand(brandName, brandDomain)
	if err != nil {
		return nil, e.fail(OpExtract, err)
	}
	if err := e.begin(OpExtract, nil); err != nil {
		return nil, e.fail(OpExtract, err)
	}
	defer e.end(OpExtract)

	logger.Log.Infof("提取关键词: brand=%s domain=%s", name, domain)
	keywords, err := e.svc.ExtractKeywords(ctx, &api.KeywordsRequest{BrandName: name, Domain: domain})
	if err != nil {
		return nil, e.fail(OpExtract, err)
	}

	e.mu.Lock()
	e.session.BrandName = name
	e.session.BrandDomain = domain
	e.session.Keywords = append([]string(nil), keywords...)
	shown := append([]string(nil), keywords...)
	e.mu.Unlock()

	logger.Log.Infof("获取到 %d 个关键词", len(shown))
	e.view.ShowKeywords(shown)
	return append([]string(nil), shown...), nil
}

// EditKeyword 按下标替换关键词
func (e *Engine) EditKeyword(index int, value string) error {
	if e.opts.EnforceLimits {
		value = validate.Truncate(value, validate.MaxKeywordLen)
	}
	_, err := e.edit(func(s *model.Session) (*[]string, error) {
		if err := validate.Index(index, len(s.Keywords)); err != nil {
			return nil, err
		}
		s.Keywords[index] = value
		return nil, nil
	})
	return err
}

// RemoveKeyword 按下标删除关键词并重新渲染列表
func (e *Engine) RemoveKeyword(index int) error {
	shown, err := e.edit(func(s *model.Session) (*[]string, error) {
		if err := validate.Index(index, len(s.Keywords)); err != nil {
			return nil, err
		}
		s.Keywords = append(s.Keywords[:index], s.Keywords[index+1:]...)
		return &s.Keywords, nil
	})
	if err != nil {
		return err
	}
	e.view.ShowKeywords(shown)
	return nil
}

// GeneratePrompts 为每个关键词生成一条提示词
func (e *Engine) GeneratePrompts(ctx context.Context) ([]string, error) {
	var keywords []string
	var brand string
	err := e.begin(OpGenerate, func(s *model.Session) error {
		if len(s.Keywords) == 0 {
			return errs.Validation("Please extract keywords first")
		}
		keywords = append([]string(nil), s.Keywords...)
		brand = s.BrandName
		return nil
	})
	if err != nil {
		return nil, e.fail(OpGenerate, err)
	}
	defer e.end(OpGenerate)

	prompts, err := e.gen.Generate(ctx, keywords, brand)
	if err != nil {
		return nil, e.fail(OpGenerate, err)
	}

	e.mu.Lock()
	e.session.Prompts = append([]string(nil), prompts...)
	e.mu.Unlock()

	logger.Log.Infof("生成 %d 条提示词", len(prompts))
	e.view.ShowPrompts(append([]string(nil), prompts...))
	return prompts, nil
}

// EditPrompt 按下标替换提示词并重新渲染列表
func (e *Engine) EditPrompt(index int, value string) error {
	if e.opts.EnforceLimits {
		value = validate.Truncate(value, validate.MaxPromptLen)
	}
	shown, err := e.edit(func(s *model.Session) (*[]string, error) {
		if err := validate.Index(index, len(s.Prompts)); err != nil {
			return nil, err
		}
		s.Prompts[index] = value
		return &s.Prompts, nil
	})
	if err != nil {
		return err
	}
	e.view.ShowPrompts(shown)
	return nil
}

// RemovePrompt 按下标删除提示词并重新渲染列表
func (e *Engine) RemovePrompt(index int) error {
	shown, err := e.edit(func(s *model.Session) (*[]string, error) {
		if err := validate.Index(index, len(s.Prompts)); err != nil {
			return nil, err
		}
		s.Prompts = append(s.Prompts[:index], s.Prompts[index+1:]...)
		return &s.Prompts, nil
	})
	if err != nil {
		return err
	}
	e.view.ShowPrompts(shown)
	return nil
}

// RunAnalysis 提交当前界面上的提示词进行分析
// 分析成功后延迟展示推广弹窗；结果已展示时远端失败不再提示
func (e *Engine) RunAnalysis(ctx context.Context) (*model.AnalysisResult, error) {
	var displayed []string
	reader, hasReader := e.view.(PromptReader)
	if hasReader {
		displayed = reader.DisplayedPrompts()
	}

	var prompts []string
	var brand string
	var changed bool
	err := e.begin(OpAnalyze, func(s *model.Session) error {
		source := s.Prompts
		if hasReader {
			source = displayed
		}
		cleaned := validate.Clean(source)
		if len(cleaned) == 0 {
			return errs.Validation("Please generate prompts first")
		}
		changed = !slices.Equal(source, cleaned)
		s.Prompts = cleaned
		prompts = append([]string(nil), cleaned...)
		brand = s.BrandName
		return nil
	})
	if err != nil {
		return nil, e.fail(OpAnalyze, err)
	}
	defer e.end(OpAnalyze)

	// 空白项已从会话中移除，界面按新列表重新渲染
	if changed {
		e.view.ShowPrompts(append([]string(nil), prompts...))
	}

	logger.Log.Infof("开始分析: brand=%s prompts=%d", brand, len(prompts))
	res, err := e.svc.Simulate(ctx, &api.SimulateRequest{
		BrandName: brand,
		Prompts:   prompts,
		Platforms: platforms,
	})
	if err != nil {
		e.mu.Lock()
		visible := e.session.ResultsVisible
		e.mu.Unlock()
		if visible {
			logger.Log.Warnf("分析失败，保留已展示的结果: %v", err)
			return nil, err
		}
		return nil, e.fail(OpAnalyze, err)
	}

	stored := res.Clone()
	e.mu.Lock()
	e.session.Result = &stored
	e.session.ResultsVisible = true
	e.mu.Unlock()

	view := NewResultView(brand, res.Clone())
	logger.Log.Infof("分析完成: visibility=%.1f%% tier=%s", res.VisibilityPercentage, view.Tier)
	e.view.ShowResult(view)

	e.opts.Scheduler.AfterFunc(e.opts.PromoDelay, e.ShowPromo)
	return res, nil
}

// ShowPromo 展示推广弹窗
func (e *Engine) ShowPromo() {
	e.mu.Lock()
	e.session.PromoVisible = true
	e.mu.Unlock()
	e.view.ShowPromo()
}

// HidePromo 关闭推广弹窗
func (e *Engine) HidePromo() {
	e.mu.Lock()
	e.session.PromoVisible = false
	e.mu.Unlock()
	e.view.HidePromo()
}

// SubmitContact 校验联系方式后模拟提交
// 立即返回，延迟到期后提示成功并关闭推广弹窗
func (e *Engine) SubmitContact(name, email string) error {
	name, email, err := validate.Contact(name, email)
	if err != nil {
		return e.fail(OpContact, err)
	}

	e.mu.Lock()
	if e.contactPending {
		e.mu.Unlock()
		return e.fail(OpContact, errs.ErrBusy)
	}
	e.contactPending = true
	e.mu.Unlock()

	logger.Log.Infof("提交联系方式: name=%s email=%s", name, email)
	e.view.SetBusy(OpContact, true)

	e.opts.Scheduler.AfterFunc(e.opts.ContactDelay, func() {
		e.mu.Lock()
		e.contactPending = false
		e.mu.Unlock()

		e.view.Notify(Notice{Level: LevelSuccess, Message: ContactThanks, TTL: e.opts.SuccessTTL})
		e.HidePromo()
		e.view.SetBusy(OpContact, false)
	})
	return nil
}

// begin 占用全局忙碌标记，check 在同一把锁内检查并读取状态
func (e *Engine) begin(op Operation, check func(s *model.Session) error) error {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return errs.ErrBusy
	}
	if check != nil {
		if err := check(&e.session); err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.busy = true
	e.mu.Unlock()

	e.view.SetBusy(op, true)
	return nil
}

func (e *Engine) end(op Operation) {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
	e.view.SetBusy(op, false)
}

// edit 在锁内修改列表，返回需要重新渲染的列表副本
func (e *Engine) edit(fn func(s *model.Session) (*[]string, error)) ([]string, error) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return nil, e.fail(OpEdit, errs.ErrBusy)
	}
	list, err := fn(&e.session)
	var shown []string
	if list != nil {
		shown = append([]string(nil), (*list)...)
	}
	e.mu.Unlock()

	if err != nil {
		return nil, e.fail(OpEdit, err)
	}
	return shown, nil
}

// fail 记录日志并通知用户，返回原错误
func (e *Engine) fail(op Operation, err error) error {
	logger.Log.Warnf("[%s] %v", op, err)
	e.view.Notify(Notice{Level: LevelError, Message: userMessage(op, err), TTL: e.opts.NoticeTTL})
	return err
}

func userMessage(op Operation, err error) string {
	if !errs.IsRemote(err) {
		return errs.Message(err)
	}
	switch op {
	case OpExtract:
		return "Failed to extract keywords. Please try again."
	case OpGenerate:
		return "Failed to generate prompts. Please try again."
	case OpAnalyze:
		return "Analysis failed. Please try again."
	default:
		return errs.Message(err)
	}
}
