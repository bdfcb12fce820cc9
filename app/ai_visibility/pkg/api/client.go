package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/errs"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/logger"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/model"
)

const (
	keywordsPath = "/api/keywords"
	promptsPath  = "/api/prompts"
	simulatePath = "/api/simulate"
)

// Service 远端评分服务
type Service interface {
	ExtractKeywords(ctx context.Context, req *KeywordsRequest) ([]string, error)
	GeneratePrompts(ctx context.Context, req *PromptsRequest) ([]string, error)
	Simulate(ctx context.Context, req *SimulateRequest) (*model.AnalysisResult, error)
}

// Client 评分服务 HTTP 客户端
type Client struct {
	baseURL string
	client  *http.Client
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)

// NewClient 创建客户端，timeout 为 0 时不设置超时
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// KeywordsRequest 关键词提取请求
type KeywordsRequest struct {
	BrandName string `json:"brand_name"`
	Domain    string `json:"domain"`
}

// PromptsRequest 服务端提示词生成请求
type PromptsRequest struct {
	Keywords  []string `json:"keywords"`
	BrandName string   `json:"brand_name"`
}

// SimulateRequest 可见度分析请求
type SimulateRequest struct {
	BrandName string   `json:"brand_name"`
	Prompts   []string `json:"prompts"`
	Platforms []string `json:"platforms"`
}

type keywordsResponse struct {
	Keywords *[]string `json:"keywords"`
}

type promptsResponse struct {
	Prompts *[]string `json:"prompts"`
}

// simulateResponse 所有字段用指针，区分缺失与零值
type simulateResponse struct {
	VisibilityPercentage *float64 `json:"visibility_percentage"`
	TotalPrompts         int      `json:"total_prompts"`
	Mentions             int      `json:"mentions"`
	AveragePosition      *float64 `json:"average_position"`
	Recommendations      []string `json:"recommendations"`
}

// ExtractKeywords 调用 /api/keywords
func (c *Client) ExtractKeywords(ctx context.Context, req *KeywordsRequest) ([]string, error) {
	var resp keywordsResponse
	if err := c.post(ctx, keywordsPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Keywords == nil {
		return nil, errs.Remote("Failed to extract keywords", fmt.Errorf("response missing keywords"))
	}
	return *resp.Keywords, nil
}

// GeneratePrompts 调用 /api/prompts
func (c *Client) GeneratePrompts(ctx context.Context, req *PromptsRequest) ([]string, error) {
	var resp promptsResponse
	if err := c.post(ctx, promptsPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Prompts == nil {
		return nil, errs.Remote("Failed to generate prompts", fmt.Errorf("response missing prompts"))
	}
	return *resp.Prompts, nil
}

// Simulate 调用 /api/simulate
// 即使状态码为 200，缺少 visibility_percentage 也视为失败
func (c *Client) Simulate(ctx context.Context, req *SimulateRequest) (*model.AnalysisResult, error) {
	var resp simulateResponse
	if err := c.post(ctx, simulatePath, req, &resp); err != nil {
		return nil, err
	}
	if resp.VisibilityPercentage == nil {
		return nil, errs.Remote("Analysis failed", fmt.Errorf("invalid response data: missing visibility_percentage"))
	}
	pct := *resp.VisibilityPercentage
	if pct < 0 || pct > 100 {
		return nil, errs.Remote("Analysis failed", fmt.Errorf("visibility_percentage out of range: %v", pct))
	}
	if resp.TotalPrompts < 0 || resp.Mentions < 0 {
		return nil, errs.Remote("Analysis failed", fmt.Errorf("negative counters: total=%d mentions=%d", resp.TotalPrompts, resp.Mentions))
	}
	return &model.AnalysisResult{
		VisibilityPercentage: pct,
		TotalPrompts:         resp.TotalPrompts,
		Mentions:             resp.Mentions,
		AveragePosition:      resp.AveragePosition,
		Recommendations:      resp.Recommendations,
	}, nil
}

// post 发送 JSON 请求并解码响应，所有失败都包装为 errs.Remote
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errs.Remote("request failed", fmt.Errorf("marshal request failed: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.Remote("request failed", fmt.Errorf("create request failed: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Log.Debugf("POST %s %s", path, payload)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return errs.Remote("request failed", fmt.Errorf("request failed: %w", err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errs.Remote("request failed", fmt.Errorf("read body failed: %w", err))
	}

	logger.Log.Debugf("POST %s -> %d %s", path, res.StatusCode, body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errs.RemoteStatus(fmt.Sprintf("API Error: %d", res.StatusCode), res.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.Remote("request failed", fmt.Errorf("unmarshal response failed: %w", err))
	}
	return nil
}
