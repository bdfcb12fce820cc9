package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/internal/report"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/internal/terminal"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/api"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/config"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/engine"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/logger"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/prompt/factory"
)

var (
	flagConf   = flag.String("conf", "app/ai_visibility/configs/config.yaml", "config path")
	flagBrand  = flag.String("brand", "", "brand name")
	flagDomain = flag.String("domain", "", "brand domain (URL)")
	flagHTML   = flag.String("html", "", "write the result as an HTML report to this path")
)

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*flagConf)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if *flagHTML != "" {
		cfg.Output.HTML = *flagHTML
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Infof("启动 AI 可见度检测, api=%s prompts=%s", cfg.API.BaseURL, cfg.Prompts.Source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 组装依赖
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	gen, err := factory.NewGenerator(cfg, client, nil)
	if err != nil {
		logger.Log.Fatalf("提示词生成器初始化失败: %v", err)
	}
	view := terminal.NewPresenter(os.Stdout)
	eng := engine.NewEngine(client, gen, view, engine.OptionsFromConfig(cfg))

	flow := terminal.NewFlow(eng, view, terminal.NewSurveyDriver(), terminal.FlowOptions{
		Brand:           *flagBrand,
		Domain:          *flagDomain,
		PrefillExamples: cfg.UI.PrefillExamples,
		CharCounter:     cfg.UI.CharCounter,
		EnforceLimits:   cfg.UI.EnforceLimits,
		OnResult: func(v engine.ResultView) {
			if cfg.Output.HTML == "" {
				return
			}
			if err := report.Write(cfg.Output.HTML, v); err != nil {
				logger.Log.Errorf("生成报告失败: %v", err)
			}
		},
	})

	// 4. 运行交互流程
	if err := flow.Run(ctx); err != nil {
		if errors.Is(err, terminal.ErrInterrupted) || errors.Is(err, context.Canceled) {
			fmt.Println("\nBye.")
			return
		}
		logger.Log.Errorf("运行失败: %v", err)
		os.Exit(1)
	}
	logger.Log.Info("完成")
}
