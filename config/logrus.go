package config

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
		logrusInstance.SetLevel(GetLogLevel())
		if path := GetLogFile(); path != "" {
			logrusInstance.SetOutput(NewRotatingWriter(path))
		}
	}
	return logrusInstance
}

// NewRotatingWriter returns a size-rotated log file writer.
func NewRotatingWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}
}

func GetLogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func GetLogFile() string {
	return os.Getenv("LOG_FILE")
}

const (
	green  = "\033[32m" // Green for 200 OK
	yellow = "\033[33m" // Yellow for 300 series
	red    = "\033[31m" // Red for 400 and 500 series
	reset  = "\033[0m"  // Reset to default color
)

// PrintLogInfo logs the outcome of one handled request.
func PrintLogInfo(client string, statusCode int, functionName string) {
	var logColor string

	switch {
	case statusCode >= 200 && statusCode < 300:
		logColor = green
	case statusCode >= 300 && statusCode < 400:
		logColor = yellow
	case statusCode >= 400:
		logColor = red
	default:
		logColor = reset
	}

	if client == "" {
		client = "Unknown"
	}

	GetLogrusInstance().WithFields(logrus.Fields{
		"client":    client,
		"operation": functionName,
		"status":    statusCode,
	}).Infof("%s => Status: %s[%d] - %s%s", functionName, logColor, statusCode, http.StatusText(statusCode), reset)
}
