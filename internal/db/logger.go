package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// quietLogger drops ErrRecordNotFound noise; not-found is an expected answer
// for page and setting lookups.
type quietLogger struct {
	logger.Interface
}

func newQuietLogger(level logger.LogLevel) logger.Interface {
	return &quietLogger{Interface: logger.Default.LogMode(level)}
}

func (l *quietLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &quietLogger{Interface: l.Interface.LogMode(level)}
}

func (l *quietLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if len(data) > 0 {
		if err, ok := data[len(data)-1].(error); ok && errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
	}
	l.Interface.Error(ctx, msg, data...)
}

func (l *quietLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	l.Interface.Trace(ctx, begin, fc, err)
}
