package logger

import (
	"log"
	"os"
)

var (
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger

	debugEnabled bool
)

func init() {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	debugLogger = log.New(os.Stdout, "DEBUG: ", flags)
	infoLogger = log.New(os.Stdout, "INFO: ", flags)
	warnLogger = log.New(os.Stdout, "WARN: ", flags)
	errorLogger = log.New(os.Stderr, "ERROR: ", flags)
	debugEnabled = os.Getenv("STOREFRONT_DEBUG") != ""
}

func Debug(msg string, v ...interface{}) {
	if debugEnabled {
		debugLogger.Printf(msg, v...)
	}
}

func Info(msg string, v ...interface{}) {
	infoLogger.Printf(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	warnLogger.Printf(msg, v...)
}

func Error(msg string, err error, v ...interface{}) {
	if err != nil {
		errorLogger.Printf(msg+": %v", append(v, err)...)
	} else {
		errorLogger.Printf(msg, v...)
	}
}
