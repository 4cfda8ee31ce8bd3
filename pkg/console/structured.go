package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Structured implementa o ConsoleInterface sobre log/slog para as Lambdas.
type Structured struct {
	logger *slog.Logger
}

// NewStructured escreve JSON em w, ou texto colorido (tint) quando w é um terminal.
func NewStructured(w io.Writer, level slog.Level) *Structured {
	var handler slog.Handler
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		handler = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return &Structured{logger: slog.New(handler)}
}

// NewStructuredFromEnv usa LOG_LEVEL (debug, info, warn, error) e stdout.
func NewStructuredFromEnv() *Structured {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = slog.LevelInfo
	}
	return NewStructured(os.Stdout, level)
}

// With devolve um console que anexa os atributos a toda mensagem.
func (s *Structured) With(args ...any) *Structured {
	return &Structured{logger: s.logger.With(args...)}
}

// Logger exposes the underlying slog logger.
func (s *Structured) Logger() *slog.Logger {
	return s.logger
}

func (s *Structured) LogInfo(format string, a ...interface{}) {
	s.logger.Info(fmt.Sprintf(format, a...))
}

func (s *Structured) LogWarning(format string, a ...interface{}) {
	s.logger.Warn(fmt.Sprintf(format, a...))
}

func (s *Structured) LogError(format string, a ...interface{}) {
	s.logger.Error(fmt.Sprintf(format, a...))
}

func (s *Structured) LogSuccess(format string, a ...interface{}) {
	s.logger.Info(fmt.Sprintf(format, a...), "outcome", "success")
}

// Status registra o início e, no Stop, a duração da etapa.
func (s *Structured) Status(message string) types.StatusHandle {
	s.logger.Debug(message, "step", "start")
	return &logStatus{logger: s.logger, message: message, started: time.Now()}
}

type logStatus struct {
	logger  *slog.Logger
	message string
	started time.Time
}

func (h *logStatus) Update(message string) {
	h.message = message
	h.logger.Debug(message, "step", "update")
}

func (h *logStatus) Stop() {
	h.logger.Debug(h.message, "step", "done", "elapsed", time.Since(h.started).String())
}
