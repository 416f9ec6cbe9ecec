package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Entry = logrus.Entry

// Init настраивает JSON-вывод в stdout. DEBUG=true включает отладочный уровень.
func Init() {
	Setup(os.Stdout, os.Getenv("DEBUG") == "true")
}

// Setup направляет журнал в out с заданным уровнем подробности.
func Setup(out io.Writer, debug bool) {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	Log.SetOutput(out)

	if debug {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}

// ForFeed возвращает запись журнала, привязанную к категории ленты.
func ForFeed(category, url string) *Entry {
	return Log.WithFields(logrus.Fields{
		"category": category,
		"url":      url,
	})
}
