package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	defaultLogger = zap.NewNop()
	sugar         = defaultLogger.Sugar()
)

// LogLevel 日志级别类型
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// GetLogLevelFromString 将字符串转换为日志级别
func GetLogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return WARN // 默认级别
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

/**
 * InitLogger 初始化日志系统
 * @param {string} path - Log file path, "console" or empty writes to stderr
 * @param {string} level - debug/info/warn/error
 * @param {bool} verbose - Also write to stderr when logging to a file
 * @description
 * - Falls back to stderr when the log file cannot be opened
 * - Replaces the package logger, callers keep using Debug/Info/... functions
 */
func InitLogger(path, level string, verbose bool) {
	lvl := zap.NewAtomicLevelAt(GetLogLevelFromString(level).zapLevel())

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	var cores []zapcore.Core
	if path == "console" || path == "" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl))
	} else {
		if file, err := openLogFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "open log file failed: %v\n", err)
			cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl))
		} else {
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), lvl))
			if verbose {
				cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl))
			}
		}
	}

	SetLogger(zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)))
}

// SetLogger replaces the package logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	defaultLogger = l
	sugar = l.Sugar()
}

// Named returns a structured logger for one component.
func Named(name string) *zap.SugaredLogger {
	return defaultLogger.WithOptions(zap.AddCallerSkip(-1)).Named(name).Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = defaultLogger.Sync()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// Debug 输出调试日志
func Debug(v ...interface{}) {
	sugar.Debug(v...)
}

// Debugf 输出格式化调试日志
func Debugf(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

// Info 输出信息日志
func Info(v ...interface{}) {
	sugar.Info(v...)
}

// Infof 输出格式化信息日志
func Infof(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

// Warn 输出警告日志
func Warn(v ...interface{}) {
	sugar.Warn(v...)
}

// Warnf 输出格式化警告日志
func Warnf(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

// Error 输出错误日志
func Error(v ...interface{}) {
	sugar.Error(v...)
}

// Errorf 输出格式化错误日志
func Errorf(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

// Fatal 输出致命错误日志并退出程序
func Fatal(v ...interface{}) {
	sugar.Error(v...)
	Sync()
	fmt.Fprintln(os.Stderr, v...)
	os.Exit(1)
}

// Fatalf 输出格式化致命错误日志并退出程序
func Fatalf(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
	Sync()
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}
