package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controla formato y nivel del logger.
type Config struct {
	Env   string // development usa consola legible; cualquier otro valor, JSON
	Level string // trace, debug, info, warn, error; no reconocido cae a info
}

// Logger logger estructurado de la aplicación.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y lo deja también como logger
// global de zerolog, que los adaptadores de persistencia usan para avisos
// best effort. Escribe a stderr.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stderr
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Level devuelve el nivel efectivo del logger.
func (l *Logger) Level() zerolog.Level { return l.zl.GetLevel() }

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }
