package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigureLogging sets the logrus level and formatter, and tees output to a
// rotating file when logFile is set.
func ConfigureLogging(logLevel, logFile string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if logFile == "" {
		logrus.SetOutput(os.Stdout)
		gin.DefaultWriter = logrus.StandardLogger().Writer()
		return
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		logrus.Warnf("Failed to create log directory for %s: %v", logFile, err)
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotating))
	gin.DefaultWriter = logrus.StandardLogger().Writer()
}
