package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/engine"
)

// PromoMessage 推广弹窗文案
const PromoMessage = "Unlock the full AI visibility report: get early access + 50% off."

var busyText = map[engine.Operation]string{
	engine.OpExtract:  "Extracting keywords...",
	engine.OpGenerate: "Generating prompts...",
	engine.OpAnalyze:  "Analyzing AI visibility...",
	engine.OpContact:  "Submitting...",
}

// Presenter 终端展示层，同时保存界面上当前显示的提示词
type Presenter struct {
	out io.Writer

	mu        sync.Mutex
	displayed []string
	promoOpen bool

	promoShown  chan struct{}
	promoClosed chan struct{}
}

// Ensure Presenter implements the engine ports
var (
	_ engine.Presenter    = (*Presenter)(nil)
	_ engine.PromptReader = (*Presenter)(nil)
)

// NewPresenter 创建终端展示层
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:         out,
		promoShown:  make(chan struct{}, 1),
		promoClosed: make(chan struct{}, 1),
	}
}

func (p *Presenter) ShowKeywords(keywords []string) {
	p.printList("Keywords", keywords)
}

func (p *Presenter) ShowPrompts(prompts []string) {
	p.mu.Lock()
	p.displayed = append([]string(nil), prompts...)
	p.mu.Unlock()
	p.printList("Prompts", prompts)
}

// DisplayedPrompts 实现 engine.PromptReader
func (p *Presenter) DisplayedPrompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.displayed...)
}

func (p *Presenter) ShowResult(v engine.ResultView) {
	r := v.Result
	avg := "N/A"
	if r.AveragePosition != nil {
		avg = fmt.Sprintf("%.1f", *r.AveragePosition)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n== AI Visibility Score: %.1f%% [%s] ==\n", r.VisibilityPercentage, v.Tier)
	fmt.Fprintf(&b, "%s\n", v.Advice)
	fmt.Fprintf(&b, "Total Prompts: %d | Successful Mentions: %d | Avg Position: %s\n", r.TotalPrompts, r.Mentions, avg)
	if len(v.Recommendations) > 0 {
		title := "Recommendations"
		if v.Canned {
			title = "Quick Recommendations"
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, rec := range v.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}
	p.write(b.String())
}

func (p *Presenter) ShowPromo() {
	p.mu.Lock()
	if p.promoOpen {
		p.mu.Unlock()
		return
	}
	p.promoOpen = true
	p.mu.Unlock()

	p.write("\n*** " + PromoMessage + " ***\n")
	signal(p.promoShown)
}

func (p *Presenter) HidePromo() {
	p.mu.Lock()
	if !p.promoOpen {
		p.mu.Unlock()
		return
	}
	p.promoOpen = false
	p.mu.Unlock()
	signal(p.promoClosed)
}

func (p *Presenter) Notify(n engine.Notice) {
	mark := "!"
	if n.Level == engine.LevelSuccess {
		mark = "✓"
	}
	p.write(fmt.Sprintf("[%s] %s\n", mark, n.Message))
}

func (p *Presenter) SetBusy(op engine.Operation, busy bool) {
	if !busy {
		return
	}
	if text, ok := busyText[op]; ok {
		p.write(text + "\n")
	}
}

// PromoShown 推广弹窗展示时收到信号
func (p *Presenter) PromoShown() <-chan struct{} { return p.promoShown }

// PromoClosed 推广弹窗关闭时收到信号
func (p *Presenter) PromoClosed() <-chan struct{} { return p.promoClosed }

func (p *Presenter) printList(title string, items []string) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s (%d):\n", title, len(items))
	for i, it := range items {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, it)
	}
	p.write(b.String())
}

func (p *Presenter) write(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.out, s)
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
