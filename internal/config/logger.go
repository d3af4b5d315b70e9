package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// SetupLogger applies environment-dependent logger settings. Development
// gets human-readable output and debug level.
func SetupLogger(cfg *Config) {
	if cfg.App.Env != "production" {
		logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logg.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(logg.Formatter)
	logrus.SetLevel(logg.GetLevel())
	logrus.SetOutput(os.Stdout)
}

// LogLedgerAlert records an operator-actionable ledger failure (invariant
// violation, consistency error). These are never retried automatically and
// always need a human to look at the underlying meters or tanks.
func LogLedgerAlert(module string, operation string, entityID string, err error) {
	logg.WithFields(logrus.Fields{
		"module":    module,
		"operation": operation,
		"entity_id": entityID,
		"alert":     "ledger",
	}).Error(err.Error())
}
