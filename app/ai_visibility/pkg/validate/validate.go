// Package validate 本地输入校验，失败时返回 errs.Validation
package validate

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/errs"
)

// 可编辑字段的最大长度
const (
	MaxKeywordLen = 50
	MaxPromptLen  = 200
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Brand 校验品牌名与域名，返回去除首尾空白后的值
func Brand(name, domain string) (string, string, error) {
	name = strings.TrimSpace(name)
	domain = strings.TrimSpace(domain)
	if name == "" || domain == "" {
		return "", "", errs.Validation("Please fill in both brand name and domain")
	}
	if !IsURL(domain) {
		return "", "", errs.Validation("Please enter a valid URL")
	}
	return name, domain, nil
}

// IsURL 判断是否为带 scheme 和 host 的绝对 URL
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// Contact 校验联系人姓名与邮箱
func Contact(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return "", "", errs.Validation("Please fill in both name and email")
	}
	if !IsEmail(email) {
		return "", "", errs.Validation("Please enter a valid email address")
	}
	return name, email, nil
}

// IsEmail 简单邮箱格式：local@domain，domain 中至少一个点，不含空白
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Index 校验下标范围
func Index(i, n int) error {
	if i < 0 || i >= n {
		return errs.Validation("index out of range")
	}
	return nil
}

// Truncate 按字符数截断，max <= 0 时不截断
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// Clean 去除每项首尾空白并丢弃空项
func Clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if v := strings.TrimSpace(it); v != "" {
			out = append(out, v)
		}
	}
	return out
}
