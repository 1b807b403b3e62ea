package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// L returns the process logger, initializing it if necessary. Until Setup is
// called it writes warnings and errors to stderr.
func L() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		log.SetFormatter(&CLIFormatter{DisableTimestamp: true, DisableColors: !isTerminal(os.Stderr)})
	})
	return log
}

// Options configure Setup. A nil Output means stderr.
type Options struct {
	Verbose bool
	JSON    bool
	Quiet   bool
	Output  io.Writer
}

func Setup(opts Options) {
	// Environment variables override flags
	switch os.Getenv("LOG_MODE") {
	case "quiet":
		opts.Quiet, opts.Verbose = true, false
	case "verbose", "debug":
		opts.Verbose, opts.Quiet = true, false
	}
	switch os.Getenv("LOG_FORMAT") {
	case "json":
		opts.JSON = true
	case "text":
		opts.JSON = false
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := logrus.InfoLevel
	if opts.Quiet {
		level = logrus.ErrorLevel
	} else if opts.Verbose {
		level = logrus.DebugLevel
	}

	l := L()
	l.SetOutput(out)
	l.SetLevel(level)
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	if opts.Verbose {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   isTerminal(out),
		})
		return
	}
	l.SetFormatter(&CLIFormatter{DisableTimestamp: true, DisableColors: !isTerminal(out)})
}

func WithFields(fields map[string]interface{}) *logrus.Entry {
	return L().WithFields(fields)
}

// CLIFormatter provides clean output for CLI applications
type CLIFormatter struct {
	DisableTimestamp bool
	DisableColors    bool
}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("15:04:05 "))
	}

	levelColor, resetColor := "", ""
	if !f.DisableColors {
		switch entry.Level {
		case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
			levelColor = "\033[31m"
		case logrus.WarnLevel:
			levelColor = "\033[33m"
		case logrus.InfoLevel:
			levelColor = "\033[36m"
		default:
			levelColor = "\033[37m"
		}
		resetColor = "\033[0m"
	}
	b.WriteString(levelColor)
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString(resetColor)
	b.WriteString(": ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
