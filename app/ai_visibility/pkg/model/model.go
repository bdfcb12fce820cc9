package model

// Session 单用户会话状态，仅保存在内存中
type Session struct {
	BrandName      string
	BrandDomain    string
	Keywords       []string
	Prompts        []string
	Result         *AnalysisResult
	ResultsVisible bool
	PromoVisible   bool
}

// Clone 深拷贝会话
func (s *Session) Clone() Session {
	out := *s
	out.Keywords = append([]string(nil), s.Keywords...)
	out.Prompts = append([]string(nil), s.Prompts...)
	if s.Result != nil {
		r := s.Result.Clone()
		out.Result = &r
	}
	return out
}

// AnalysisResult 远端分析结果，由服务端给出，客户端不修改
type AnalysisResult struct {
	VisibilityPercentage float64  `json:"visibility_percentage"`
	TotalPrompts         int      `json:"total_prompts"`
	Mentions             int      `json:"mentions"`
	AveragePosition      *float64 `json:"average_position"`
	Recommendations      []string `json:"recommendations,omitempty"`
}

// Clone 深拷贝结果
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	if r.AveragePosition != nil {
		p := *r.AveragePosition
		out.AveragePosition = &p
	}
	out.Recommendations = append([]string(nil), r.Recommendations...)
	return out
}

// Tier 可见度等级，仅用于展示
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierModerate  Tier = "moderate"
	TierLow       Tier = "low"
	TierCritical  Tier = "critical"
)

// TierFor 根据可见度百分比计算等级
func TierFor(pct float64) Tier {
	switch {
	case pct >= 80:
		return TierExcellent
	case pct >= 60:
		return TierGood
	case pct >= 40:
		return TierModerate
	case pct >= 20:
		return TierLow
	default:
		return TierCritical
	}
}

// Advice 等级对应的提示文案
func (t Tier) Advice() string {
	switch t {
	case TierExcellent:
		return "Excellent visibility! Keep up the great work."
	case TierGood:
		return "Good visibility. Consider optimizing further."
	case TierModerate:
		return "Moderate visibility. Room for improvement."
	case TierLow:
		return "Low visibility. Focus on optimization."
	default:
		return "Critical visibility. Immediate action needed."
	}
}

// CannedRecommendations 服务端未给出建议时使用的固定建议
func (t Tier) CannedRecommendations() []string {
	switch t {
	case TierExcellent:
		return []string{"Maintain your current AI optimization strategy", "Monitor competitor changes regularly"}
	case TierGood:
		return []string{"Optimize your website content for AI training", "Create more comprehensive product descriptions"}
	case TierModerate:
		return []string{"Add detailed FAQ sections to your website", "Improve product categorization and tags"}
	default:
		return []string{"Completely revamp your website content", "Add structured data markup"}
	}
}

// BrandType 根据品牌名推断的行业类别
type BrandType string

const (
	BrandUniversity  BrandType = "universities and institutions"
	BrandFinancial   BrandType = "financial institutions"
	BrandHealthcare  BrandType = "healthcare providers"
	BrandRestaurant  BrandType = "restaurants and food services"
	BrandHospitality BrandType = "hospitality providers"
	BrandCompany     BrandType = "companies"
)
