// Package errs 定义客户端的两类错误：本地校验失败与远端调用失败
package errs

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/errors"
)

const (
	// ReasonValidation 本地输入不合法，不会发出网络请求
	ReasonValidation = "VALIDATION_FAILED"
	// ReasonRemote 非 2xx、网络失败或响应体不完整
	ReasonRemote = "REMOTE_FAILED"
	// ReasonBusy 已有操作在进行中
	ReasonBusy = "BUSY"
)

// ErrBusy 已有操作在进行中时返回
var ErrBusy = errors.BadRequest(ReasonBusy, "another operation is in progress")

// Validation 创建校验错误
func Validation(message string) *errors.Error {
	return errors.BadRequest(ReasonValidation, message)
}

// Remote 创建远端错误，cause 为底层错误
func Remote(message string, cause error) *errors.Error {
	return errors.New(http.StatusBadGateway, ReasonRemote, message).WithCause(cause)
}

// maxBodyRunes 元数据中保留的响应体字符数
const maxBodyRunes = 256

// RemoteStatus 创建携带 HTTP 状态码的远端错误
func RemoteStatus(message string, status int, body string) *errors.Error {
	if utf8.RuneCountInString(body) > maxBodyRunes {
		body = string([]rune(body)[:maxBodyRunes])
	}
	return errors.New(http.StatusBadGateway, ReasonRemote, message).WithMetadata(map[string]string{
		"status": strconv.Itoa(status),
		"body":   body,
	})
}

// IsValidation 判断是否为校验错误（忙碌也属于本地拒绝）
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	r := errors.Reason(err)
	return r == ReasonValidation || r == ReasonBusy
}

// IsRemote 判断是否为远端错误
func IsRemote(err error) bool {
	return err != nil && errors.Reason(err) == ReasonRemote
}

// IsBusy 判断是否因忙碌被拒绝
func IsBusy(err error) bool {
	return err != nil && errors.Reason(err) == ReasonBusy
}

// Message 返回面向用户的错误描述
func Message(err error) string {
	if err == nil {
		return ""
	}
	if e := errors.FromError(err); e != nil && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
