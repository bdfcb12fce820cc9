package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultBaseURL      = "https://ai-visibility-api.railway.app"
	DefaultYear         = "2025"
	DefaultPromoDelay   = 3 * time.Second
	DefaultContactDelay = 1500 * time.Millisecond
	DefaultNoticeTTL    = 5 * time.Second
	DefaultSuccessTTL   = 3 * time.Second

	// EnvBaseURL 覆盖 api.base_url 的环境变量
	EnvBaseURL = "AI_VISIBILITY_API_BASE_URL"
)

// 提示词来源
const (
	PromptSourceLocal  = "local"
	PromptSourceRemote = "remote"
)

// Config 项目配置结构体
type Config struct {
	API     APIConfig    `yaml:"api"`
	Prompts PromptConfig `yaml:"prompts"`
	UI      UIConfig     `yaml:"ui"`
	Output  OutputConfig `yaml:"output"`
	Log     LogConfig    `yaml:"log"`
}

// APIConfig 远端评分服务配置
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"` // 0 表示不设置超时
}

// PromptConfig 提示词生成配置
type PromptConfig struct {
	Source string `yaml:"source"` // local or remote
	Year   string `yaml:"year"`
}

// UIConfig 交互相关配置
type UIConfig struct {
	PromoDelay      time.Duration `yaml:"promo_delay"`
	ContactDelay    time.Duration `yaml:"contact_delay"`
	NoticeTTL       time.Duration `yaml:"notice_ttl"`       // 错误提示停留时长
	SuccessTTL      time.Duration `yaml:"success_ttl"`      // 成功提示停留时长
	EnforceLimits   bool          `yaml:"enforce_limits"`   // 关键词 50 字符，提示词 200 字符
	CharCounter     bool          `yaml:"char_counter"`     // 编辑时显示字符计数
	PrefillExamples bool          `yaml:"prefill_examples"` // 用示例品牌预填输入
}

// OutputConfig 结果输出配置
type OutputConfig struct {
	HTML string `yaml:"html"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回全部使用默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Prompts.Source == "" {
		c.Prompts.Source = PromptSourceLocal
	}
	if c.Prompts.Year == "" {
		c.Prompts.Year = DefaultYear
	}
	if c.UI.PromoDelay == 0 {
		c.UI.PromoDelay = DefaultPromoDelay
	}
	if c.UI.ContactDelay == 0 {
		c.UI.ContactDelay = DefaultContactDelay
	}
	if c.UI.NoticeTTL == 0 {
		c.UI.NoticeTTL = DefaultNoticeTTL
	}
	if c.UI.SuccessTTL == 0 {
		c.UI.SuccessTTL = DefaultSuccessTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %q", c.API.BaseURL)
	}
	switch c.Prompts.Source {
	case PromptSourceLocal, PromptSourceRemote:
	default:
		return fmt.Errorf("unknown prompts.source: %s", c.Prompts.Source)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	return nil
}
