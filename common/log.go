package common

import (
	"os"

	"github.com/sirupsen/logrus"
)

const ServiceName = "bneibrit"

var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.Out = os.Stdout
	Log.Formatter = &logrus.TextFormatter{}
	Log.AddHook(&DefaultFieldsHook{})
}

// ConfigureLog switches the formatter and level of the shared logger.
func ConfigureLog(format string, level string) error {
	if format == "json" {
		Log.Formatter = &logrus.JSONFormatter{}
	} else {
		Log.Formatter = &logrus.TextFormatter{}
	}
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(lvl)
	return nil
}

type DefaultFieldsHook struct {
}

func (hook *DefaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *DefaultFieldsHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = ServiceName
	return nil
}
