package logger

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fileMode = 0o644

// NewFileLogger opens filePath for appending and returns a JSON zap logger
// writing to it, plus a func that syncs and closes the file. An empty path
// yields a no-op logger.
func NewFileLogger(filePath string) (*zap.Logger, func() error, error) {
	if filePath == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	file, err := os.OpenFile(filepath.Clean(filePath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, nil, err
	}

	writer := zapcore.AddSync(file)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)
	l := zap.New(core)
	closeFn := func() error {
		return errors.Join(l.Sync(), file.Close())
	}
	return l, closeFn, nil
}
