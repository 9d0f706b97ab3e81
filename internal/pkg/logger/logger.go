package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"hadoop-cluster-backend/internal/config"
)

type Logger struct {
	*logrus.Logger
}

func NewLogger(cfg config.LoggingConfig) *Logger {
	logger := logrus.New()

	// 设置日志格式
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// 设置日志级别
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// 设置输出
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return &Logger{Logger: logger}
}

// NewNopLogger discards everything; used by tests and the CLI.
func NewNopLogger() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{Logger: logger}
}

func (l *Logger) ClusterOperation(operation, cluster string) {
	l.WithFields(logrus.Fields{
		"type":      "named_cluster",
		"operation": operation,
		"cluster":   cluster,
	}).Info("named cluster operation started")
}

func (l *Logger) ClusterError(operation, cluster string, err error) {
	l.WithFields(logrus.Fields{
		"type":      "named_cluster",
		"operation": operation,
		"cluster":   cluster,
		"error":     err.Error(),
	}).Error("named cluster operation failed")
}

func (l *Logger) ClusterSuccess(operation, cluster string) {
	l.WithFields(logrus.Fields{
		"type":      "named_cluster",
		"operation": operation,
		"cluster":   cluster,
	}).Info("named cluster operation succeeded")
}

func (l *Logger) DiagnosticResult(cluster, category, test, status string) {
	l.WithFields(logrus.Fields{
		"type":     "diagnostics",
		"cluster":  cluster,
		"category": category,
		"test":     test,
		"status":   status,
	}).Debug("diagnostic test completed")
}
