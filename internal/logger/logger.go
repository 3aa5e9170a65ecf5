package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// prodはJSON、それ以外はテキスト
func New(env string, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(level))

	if strings.EqualFold(env, "prod") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

func parseLevel(lvl string) logrus.Level {
	l, err := logrus.ParseLevel(strings.TrimSpace(lvl))
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}
