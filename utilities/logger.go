package utilities

import (
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const logFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile

// Os loggers já nascem configurados, assim serviços e testes podem logar
// antes de InitLogger ser chamado.
var (
	InfoLogger  = log.New(os.Stdout, "\033[32m[INFO]\033[0m ", logFlags)
	WarnLogger  = log.New(os.Stdout, "\033[33m[WARN]\033[0m ", logFlags)
	ErrorLogger = log.New(os.Stderr, "\033[31m[ERROR]\033[0m ", logFlags)
	DebugLogger = log.New(io.Discard, "\033[36m[DEBUG]\033[0m ", logFlags)
)

// InitLogger inicializa os loggers. level "debug" habilita o DebugLogger.
func InitLogger(level string) {
	log.SetFlags(logFlags)

	InfoLogger = log.New(os.Stdout, "\033[32m[INFO]\033[0m ", logFlags)
	WarnLogger = log.New(os.Stdout, "\033[33m[WARN]\033[0m ", logFlags)
	ErrorLogger = log.New(os.Stderr, "\033[31m[ERROR]\033[0m ", logFlags)

	debugOut := io.Discard
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		debugOut = os.Stdout
	}
	DebugLogger = log.New(debugOut, "\033[36m[DEBUG]\033[0m ", logFlags)
}

// SetOutput redireciona todos os loggers para w (útil em testes).
func SetOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	WarnLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
	DebugLogger.SetOutput(w)
}

// LogRequest registra informações sobre a requisição HTTP
func LogRequest(method, path, remoteAddr string, status int, duration time.Duration) {
	InfoLogger.Printf("%s %s %s %d %v", method, path, remoteAddr, status, duration)
}

// LogError registra erros com o contexto em que aconteceram
func LogError(err error, context string) {
	ErrorLogger.Printf("%s: %v", context, err)
}

// LogWarn registra entradas rejeitadas e falhas não fatais
func LogWarn(format string, v ...interface{}) {
	WarnLogger.Printf(format, v...)
}

// LogDebug registra informações de debug
func LogDebug(format string, v ...interface{}) {
	DebugLogger.Printf(format, v...)
}

// LogInfo registra informações gerais
func LogInfo(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}
