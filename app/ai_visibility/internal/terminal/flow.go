package terminal

import (
	"context"
	"fmt"
	"math/rand"
	"unicode/utf8"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/engine"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/errs"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/logger"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/validate"
)

// examples 预填用的示例品牌
var examples = []struct{ Name, Domain string }{
	{"Stripe", "https://stripe.com"},
	{"Shopify", "https://shopify.com"},
	{"Notion", "https://notion.so"},
}

// FlowOptions 交互流程选项
type FlowOptions struct {
	Brand           string
	Domain          string
	PrefillExamples bool
	CharCounter     bool
	EnforceLimits   bool
	// OnResult 分析成功后回调，例如写出 HTML 报告
	OnResult func(view engine.ResultView)
}

// Flow 终端交互流程：品牌输入 → 关键词编辑 → 提示词编辑 → 分析 → 推广
type Flow struct {
	eng    *engine.Engine
	view   *Presenter
	driver PromptDriver
	opts   FlowOptions
}

// NewFlow 创建交互流程
func NewFlow(eng *engine.Engine, view *Presenter, driver PromptDriver, opts FlowOptions) *Flow {
	if opts.PrefillExamples && opts.Brand == "" && opts.Domain == "" {
		ex := examples[rand.Intn(len(examples))]
		opts.Brand, opts.Domain = ex.Name, ex.Domain
	}
	return &Flow{eng: eng, view: view, driver: driver, opts: opts}
}

// Run 执行完整流程
func (f *Flow) Run(ctx context.Context) error {
	if err := f.collectBrand(ctx); err != nil {
		return err
	}
	if err := f.editKeywords(ctx); err != nil {
		return err
	}
	if err := f.editPrompts(ctx); err != nil {
		return err
	}
	return f.promo(ctx)
}

func (f *Flow) collectBrand(ctx context.Context) error {
	for {
		name, err := f.driver.Input(ctx, InputConfig{Message: "Brand name:", Default: f.opts.Brand})
		if err != nil {
			return err
		}
		domain, err := f.driver.Input(ctx, InputConfig{
			Message: "Brand domain (URL):",
			Default: f.opts.Domain,
			Help:    "e.g. https://stripe.com",
		})
		if err != nil {
			return err
		}
		f.opts.Brand, f.opts.Domain = name, domain

		_, err = f.eng.ExtractKeywords(ctx, name, domain)
		if err == nil {
			return nil
		}
		if errs.IsRemote(err) {
			again, cerr := f.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if cerr != nil {
				return cerr
			}
			if !again {
				return err
			}
		}
	}
}

func (f *Flow) editKeywords(ctx context.Context) error {
	options := []string{"Generate prompts", "Edit a keyword", "Remove a keyword", "Extract again"}
	for {
		choice, err := f.driver.Select(ctx, SelectConfig{Message: "Keywords:", Options: options})
		if err != nil {
			return err
		}
		keywords := f.eng.Session().Keywords

		switch choice {
		case 0:
			if _, err := f.eng.GeneratePrompts(ctx); err == nil {
				return nil
			}
		case 1:
			i, err := f.pickIndex(ctx, "Edit which keyword?", keywords)
			if err != nil {
				return err
			}
			if i < 0 {
				continue
			}
			v, err := f.editText(ctx, "Keyword:", keywords[i], validate.MaxKeywordLen)
			if err != nil {
				return err
			}
			_ = f.eng.EditKeyword(i, v)
		case 2:
			i, err := f.pickIndex(ctx, "Remove which keyword?", keywords)
			if err != nil {
				return err
			}
			if i >= 0 {
				_ = f.eng.RemoveKeyword(i)
			}
		case 3:
			if err := f.collectBrand(ctx); err != nil {
				return err
			}
		}
	}
}

func (f *Flow) editPrompts(ctx context.Context) error {
	options := []string{"Run analysis", "Edit a prompt", "Remove a prompt", "Regenerate prompts"}
	for {
		choice, err := f.driver.Select(ctx, SelectConfig{Message: "Prompts:", Options: options})
		if err != nil {
			return err
		}
		prompts := f.view.DisplayedPrompts()

		switch choice {
		case 0:
			res, err := f.eng.RunAnalysis(ctx)
			if err != nil {
				continue
			}
			if f.opts.OnResult != nil {
				f.opts.OnResult(engine.NewResultView(f.eng.Session().BrandName, *res))
			}
			return nil
		case 1:
			i, err := f.pickIndex(ctx, "Edit which prompt?", prompts)
			if err != nil {
				return err
			}
			if i < 0 {
				continue
			}
			v, err := f.editText(ctx, "Prompt:", prompts[i], validate.MaxPromptLen)
			if err != nil {
				return err
			}
			_ = f.eng.EditPrompt(i, v)
		case 2:
			i, err := f.pickIndex(ctx, "Remove which prompt?", prompts)
			if err != nil {
				return err
			}
			if i >= 0 {
				_ = f.eng.RemovePrompt(i)
			}
		case 3:
			_, _ = f.eng.GeneratePrompts(ctx)
		}
	}
}

// promo 等待推广弹窗出现，并收集联系方式
func (f *Flow) promo(ctx context.Context) error {
	select {
	case <-f.view.PromoShown():
	case <-ctx.Done():
		return ctx.Err()
	}

	ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Get early access + 50% off?", Default: true})
	if err != nil {
		return err
	}
	if !ok {
		f.eng.HidePromo()
		return nil
	}

	for {
		name, err := f.driver.Input(ctx, InputConfig{Message: "Your name:"})
		if err != nil {
			return err
		}
		email, err := f.driver.Input(ctx, InputConfig{Message: "Your email:"})
		if err != nil {
			return err
		}
		if err := f.eng.SubmitContact(name, email); err != nil {
			continue
		}
		break
	}

	select {
	case <-f.view.PromoClosed():
		logger.Log.Debug("推广弹窗已关闭")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pickIndex 选择列表项，返回 -1 表示取消
func (f *Flow) pickIndex(ctx context.Context, message string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}
	options := make([]string, 0, len(items)+1)
	for i, it := range items {
		options = append(options, fmt.Sprintf("%d. %s", i+1, it))
	}
	options = append(options, "Cancel")

	i, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: 10})
	if err != nil {
		return -1, err
	}
	if i < 0 || i >= len(items) {
		return -1, nil
	}
	return i, nil
}

func (f *Flow) editText(ctx context.Context, message, current string, max int) (string, error) {
	cfg := InputConfig{Message: message, Default: current}
	if f.opts.CharCounter {
		cfg.Help = fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(current), max)
	}
	if f.opts.EnforceLimits {
		cfg.Validator = func(s string) error {
			if n := utf8.RuneCountInString(s); n > max {
				return fmt.Errorf("too long: %d/%d characters", n, max)
			}
			return nil
		}
	}
	return f.driver.Input(ctx, cfg)
}
