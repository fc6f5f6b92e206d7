package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("GESTURED_LOG_LEVEL"))

// SetDefaultLogLevel overrides the level requests log at when they carry no
// override of their own.
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// reqLog carries the per-request logging decision through a handler.
type reqLog struct {
	r     *http.Request
	lvl   LogLevel
	start time.Time
}

func newReqLog(r *http.Request) reqLog {
	return reqLog{r: r, lvl: requestLogLevel(r), start: time.Now()}
}

func (l reqLog) begin(msg, model string) {
	if l.lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", l.r.URL.Path).Str("model", model)
		if rid := middleware.GetReqID(l.r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg(msg)
		return
	}
	log.Printf("%s path=%s model=%s", msg, l.r.URL.Path, model)
}

// end logs the outcome. Failures log at error level so LevelError keeps them.
func (l reqLog) end(msg string, status int, err error) {
	if l.lvl < LevelError || (err == nil && l.lvl < LevelInfo) {
		return
	}
	dur := time.Since(l.start)
	if zlog != nil {
		z := zlog.Info()
		if err != nil {
			z = zlog.Error().Err(err)
		}
		z = z.Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(l.r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg(msg)
		return
	}
	if err != nil {
		log.Printf("%s status=%d dur=%s err=%v", msg, status, dur, err)
		return
	}
	log.Printf("%s status=%d dur=%s", msg, status, dur)
}

// debug logs v when the request asked for debug output. The record goes
// out at info with debug=true so an info-level process logger keeps it.
func (l reqLog) debug(msg string, v any) {
	if l.lvl < LevelDebug {
		return
	}
	if zlog != nil {
		z := zlog.WithLevel(zerolog.InfoLevel).Bool("debug", true).Interface("result", v)
		if rid := middleware.GetReqID(l.r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg(msg)
		return
	}
	log.Printf("%s %+v", msg, v)
}
