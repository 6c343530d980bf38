package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// cronLogger адаптер logrus под интерфейс cron.Logger.
type cronLogger struct {
	l *logrus.Entry
}

func newCronLogger(l *logrus.Entry) cron.Logger {
	return &cronLogger{l: l}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.WithError(err).WithFields(kvFields(keysAndValues)).Error(msg)
}

func kvFields(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
