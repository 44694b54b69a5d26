package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
}

// fields pairs up alternating key/value args. A trailing odd argument (or an
// error passed positionally) is kept under a fallback key.
func fields(args []any) logrus.Fields {
	f := logrus.Fields{}
	i := 0
	for i < len(args) {
		if i == len(args)-1 {
			if err, ok := args[i].(error); ok {
				f["error"] = err
			} else {
				f["extra"] = args[i]
			}
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		f[key] = args[i+1]
		i += 2
	}
	return f
}

func Debug(msg string, args ...any) {
	log.WithFields(fields(args)).Debug(msg)
}

func Info(msg string, args ...any) {
	log.WithFields(fields(args)).Info(msg)
}

func Warn(msg string, args ...any) {
	log.WithFields(fields(args)).Warn(msg)
}

func Error(msg string, args ...any) {
	log.WithFields(fields(args)).Error(msg)
}
