package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("unknown").String())
}

func TestNewForEnvironment(t *testing.T) {
	assert.NotNil(t, NewForEnvironment("production"))
	assert.NotNil(t, NewForEnvironment("development"))
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}

func TestGormLoggerLogMode(t *testing.T) {
	gl := NewGormLogger(New(Config{Level: "debug"}), gormlogger.Warn)
	derived := gl.LogMode(gormlogger.Error)

	assert.NotSame(t, gl, derived)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
}
