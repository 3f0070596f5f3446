package pdbfreq

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logWhere decides where to send logged output. "" throws it away,
// "stdout" and "stderr" are what they say, anything else is a file we
// append to. The returned function closes the file, if there is one.
func logWhere(outinfo string, verbose bool) (*zap.Logger, func() error, error) {
	nothing := func() error { return nil }
	var ws zapcore.WriteSyncer
	switch outinfo {
	case "":
		return zap.NewNop(), nothing, nil
	case "stdout":
		ws = zapcore.Lock(os.Stdout)
	case "stderr":
		ws = zapcore.Lock(os.Stderr)
	default:
		fp, err := os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		ws = zapcore.Lock(fp)
		nothing = fp.Close
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	return zap.New(core, zap.ErrorOutput(ws)), nothing, nil
}
