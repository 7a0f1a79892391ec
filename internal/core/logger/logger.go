package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type FileRotate struct {
	Enable     bool   // 是否启用文件写入 + 切割
	Filename   string // 日志文件路径，如 logs/app.log
	MaxSizeMB  int    // 单个文件最大 MB
	MaxBackups int    // 保留旧文件个数
	MaxAgeDays int    // 保留天数
	Compress   bool   // 是否压缩旧日志
}

type Options struct {
	Level       string     // debug / info / warn / error
	JSON        bool       // 是否 JSON 格式输出
	AddCaller   bool       // 是否输出调用者文件行号
	Development bool       // 开发模式
	Rotate      FileRotate // 文件切割（可选）
}

func New(level string, json bool) (*zap.Logger, func()) {
	return Build(Options{
		Level:       level,
		JSON:        json,
		AddCaller:   true,
		Development: !json,
	})
}

func Build(opt Options) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if opt.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.TimeKey = "ts"
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)}
	if opt.Rotate.Enable {
		rotator := &lumberjack.Logger{
			Filename:   opt.Rotate.Filename,
			MaxSize:    max(1, opt.Rotate.MaxSizeMB),
			MaxBackups: max(0, opt.Rotate.MaxBackups),
			MaxAge:     max(0, opt.Rotate.MaxAgeDays),
			Compress:   opt.Rotate.Compress,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rotator), lvl))
	}

	sampled := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)

	var opts []zap.Option
	if opt.AddCaller {
		opts = append(opts, zap.AddCaller())
	}
	if opt.Development {
		opts = append(opts, zap.Development())
	}
	l := zap.New(sampled, opts...)
	return l, func() { _ = l.Sync() }
}

// RedirectStdLog 标准库 log 输出转到 zap
func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, _ := zap.RedirectStdLogAt(l, level)
	return func() { undo() }
}
