package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，未初始化时丢弃输出
var Log = newDiscard()

// CustomFormatter 自定义日志格式
type CustomFormatter struct{}

// Format 实现 logrus.Formatter 接口
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	// 对齐级别长度，例如 INFO, WARN, ERRO
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	timeStr := entry.Time.Format("2006-01-02 15:04:05")

	var fields strings.Builder
	for k, v := range entry.Data {
		fmt.Fprintf(&fields, " %s=%v", k, v)
	}

	// [TIME] [LEVEL] [FILE:LINE] MSG k=v
	msg := fmt.Sprintf("[%s] [%s] [%s] %s%s\n", timeStr, level, fileLine, entry.Message, fields.String())
	return []byte(msg), nil
}

// InitLogger 初始化日志
// 终端交互占用 stdout，日志写到 stderr，可选同时追加到文件
func InitLogger(levelStr string, filePath string) error {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&CustomFormatter{})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	writers := []io.Writer{os.Stderr}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	Log = l
	return nil
}

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
