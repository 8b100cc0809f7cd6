package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewGorm(zap.New(core))

	sql := func() (string, int64) { return "SELECT * FROM rfp_requests", 0 }
	l.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	l.Trace(context.Background(), time.Now(), sql, errors.New("relation does not exist"))
	assert.Equal(t, 1, logs.FilterMessage("gorm.query").Len())
}

func TestGormLoggerSilentMode(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewGorm(zap.New(core)).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	assert.Equal(t, 0, logs.Len())
}
