package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger_Options(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn,
		WithSlowThreshold(time.Second),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)
	quiet := gl.LogMode(gormlogger.Silent).(*GormLogger)

	assert.Equal(t, gormlogger.Info, gl.level)
	assert.Equal(t, gormlogger.Silent, quiet.level)
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		opts    []GormOption
		wantMsg string
		wantLvl zapcore.Level
	}{
		{name: "error", level: gormlogger.Error, err: errors.New("deadlock"), wantMsg: "SQL error", wantLvl: zapcore.ErrorLevel},
		{name: "not found ignored", level: gormlogger.Error, err: gormlogger.ErrRecordNotFound},
		{name: "not found logged", level: gormlogger.Error, err: gormlogger.ErrRecordNotFound,
			opts: []GormOption{WithIgnoreRecordNotFoundError(false)}, wantMsg: "SQL error", wantLvl: zapcore.ErrorLevel},
		{name: "slow", level: gormlogger.Warn, elapsed: time.Second, wantMsg: "Slow SQL", wantLvl: zapcore.WarnLevel},
		{name: "slow disabled", level: gormlogger.Warn, elapsed: time.Second, opts: []GormOption{WithSlowThreshold(0)}},
		{name: "info", level: gormlogger.Info, wantMsg: "SQL", wantLvl: zapcore.DebugLevel},
		{name: "silent", level: gormlogger.Silent, err: errors.New("ignored")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, tt.opts...)

			ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
			gl.Trace(ctx, time.Now().Add(-tt.elapsed), sqlFn("SELECT 1", 1), tt.err)

			entries := recorded.All()
			if tt.wantMsg == "" {
				assert.Empty(t, entries)
				return
			}
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
			assert.Equal(t, tt.wantLvl, entries[0].Level)
			assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
			assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
		})
	}
}

func TestGormLogger_Messages(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	gl.Info(context.Background(), "info %d", 1)
	gl.Warn(context.Background(), "warn %d", 2)
	gl.Error(context.Background(), "error %d", 3)

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "warn 2", entries[0].Message)
	assert.Equal(t, "error 3", entries[1].Message)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
