package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/engine"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/logger"
)

// Data 用于模板渲染的数据
type Data struct {
	Date string
	engine.ResultView
	AvgPosition string
}

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI Visibility | {{.BrandName}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; background: #f8fafc; color: #1e293b; margin: 0; padding: 20px; }
        .container { max-width: 720px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 32px; }
        .date-info { color: #64748b; }
        .score { font-size: 3rem; font-weight: bold; }
        .tier-excellent { color: #16a34a; }
        .tier-good { color: #65a30d; }
        .tier-moderate { color: #ca8a04; }
        .tier-low { color: #ea580c; }
        .tier-critical { color: #dc2626; }
        .card { background: #fff; border: 1px solid #e2e8f0; border-radius: 12px; padding: 24px; margin-bottom: 24px; }
        .metrics { display: grid; grid-template-columns: repeat(3, 1fr); gap: 12px; text-align: center; }
        .metric-value { font-size: 1.5rem; font-weight: bold; }
        .metric-label { color: #64748b; font-size: 0.85rem; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.BrandName}}</h1>
            <div class="date-info">{{.Date}}</div>
        </header>
        <div class="card" style="text-align:center">
            <div class="score tier-{{.Tier}}">{{printf "%.1f" .Result.VisibilityPercentage}}%</div>
            <div>AI Visibility Score</div>
            <p>{{.Advice}}</p>
        </div>
        <div class="card metrics">
            <div><div class="metric-value">{{.Result.TotalPrompts}}</div><div class="metric-label">Total Prompts</div></div>
            <div><div class="metric-value">{{.Result.Mentions}}</div><div class="metric-label">Successful Mentions</div></div>
            <div><div class="metric-value">{{.AvgPosition}}</div><div class="metric-label">Avg Position</div></div>
        </div>
        {{if .Recommendations}}
        <div class="card">
            <h3>{{if .Canned}}Quick Recommendations{{else}}Recommendations{{end}}</h3>
            <ul>
                {{range .Recommendations}}
                <li>{{.}}</li>
                {{end}}
            </ul>
        </div>
        {{end}}
    </div>
</body>
</html>
`

var tpl = template.Must(template.New("report").Parse(htmlTpl))

// Render 将分析结果渲染为 HTML
func Render(w io.Writer, view engine.ResultView, now time.Time) error {
	data := Data{
		Date:        now.Format(time.DateOnly),
		ResultView:  view,
		AvgPosition: "N/A",
	}
	if p := view.Result.AveragePosition; p != nil {
		data.AvgPosition = fmt.Sprintf("%.1f", *p)
	}
	return tpl.Execute(w, data)
}

// Write 渲染并写入文件，目录不存在时自动创建
func Write(path string, view engine.ResultView) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Render(f, view, time.Now()); err != nil {
		return err
	}
	logger.Log.Infof("报告已生成: %s", path)
	return nil
}
