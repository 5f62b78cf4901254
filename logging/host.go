package logging

import (
	"bytes"
	"errors"

	wapc "github.com/wapc/wapc-guest-tinygo"
	"go.uber.org/zap/zapcore"

	"github.com/storeops/networking"
)

const capabilityName = "logging"

// hostCore is a zapcore.Core that hands each encoded entry to the host.
type hostCore struct {
	zapcore.LevelEnabler
	enc       zapcore.Encoder
	namespace string
	hostCall  HostCall
}

func newHostCore(cfg Config, enc zapcore.Encoder, level zapcore.LevelEnabler) *hostCore {
	namespace := cfg.SDKConfig.Namespace
	if namespace == "" {
		namespace = networking.DefaultNamespace
	}

	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &hostCore{
		LevelEnabler: level,
		enc:          enc,
		namespace:    namespace,
		hostCall:     hostCall,
	}
}

// hostFunction maps a zap level onto the host logging function.
func hostFunction(l zapcore.Level) string {
	switch {
	case l <= zapcore.DebugLevel:
		return "Debug"
	case l == zapcore.InfoLevel:
		return "Info"
	case l == zapcore.WarnLevel:
		return "Warn"
	default:
		return "Error"
	}
}

func (c *hostCore) clone() *hostCore {
	return &hostCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		namespace:    c.namespace,
		hostCall:     c.hostCall,
	}
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := c.clone()
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := bytes.Clone(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	buf.Free()

	if _, err := c.hostCall(c.namespace, capabilityName, hostFunction(ent.Level), msg); err != nil {
		return errors.Join(networking.ErrHostCall, err)
	}
	return nil
}

func (c *hostCore) Sync() error { return nil }
