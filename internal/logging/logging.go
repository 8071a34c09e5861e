package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// fileHook copies entries at or above a level into a log file, so
// warnings and errors land in their own files next to the console
// output.
type fileHook struct {
	writer    io.Writer
	levels    []logrus.Level
	formatter logrus.Formatter
}

func newFileHook(path string, level logrus.Level) (*fileHook, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}

	return &fileHook{
		writer:    f,
		levels:    levels,
		formatter: &logrus.TextFormatter{DisableColors: true},
	}, nil
}

func (h *fileHook) Levels() []logrus.Level { return h.levels }

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

// New builds the application logger: info and above on the console,
// warnings mirrored to warns.log and errors to errors.log.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if hook, err := newFileHook("warns.log", logrus.WarnLevel); err == nil {
		log.AddHook(hook)
	} else {
		log.Warnf("could not open warns.log: %v", err)
	}
	if hook, err := newFileHook("errors.log", logrus.ErrorLevel); err == nil {
		log.AddHook(hook)
	} else {
		log.Warnf("could not open errors.log: %v", err)
	}

	return log
}
