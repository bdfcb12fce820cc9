package terminal

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted 用户按下 Ctrl+C
var ErrInterrupted = errors.New("interrupted")

// InputConfig 单行输入
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig 是/否确认
type ConfirmConfig struct {
	Message string
	Default bool
}

// SelectConfig 单选
type SelectConfig struct {
	Message  string
	Options  []string
	PageSize int
}

// PromptDriver 抽象终端交互，测试时可替换为脚本实现
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

type surveyDriver struct{}

// NewSurveyDriver 基于 survey 的交互实现
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}
	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", mapErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Default: cfg.Default,
	}
	var out bool
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, mapErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		PageSize: cfg.PageSize,
	}
	var out int
	if err := survey.AskOne(prompt, &out); err != nil {
		return -1, mapErr(err)
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}
