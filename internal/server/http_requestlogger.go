package server

import (
	"github.com/bokysan/progress-encode/internal/args"
	"github.com/bokysan/progress-encode/internal/logging"
	"github.com/go-chi/chi/middleware"
	"net/http"
)

const appName = "progress-encode"

type NextHandlerFunc func(next http.Handler) http.Handler

// GetRequestLogger returns the access log middleware matching the configured log format
func GetRequestLogger() (logger NextHandlerFunc) {
	if args.General.LogFormat == "json" {
		logger = middleware.RequestLogger(
			&logging.JSONLogFormatter{
				App: appName,
			},
		)
	} else {
		logger = middleware.RequestLogger(
			&middleware.DefaultLogFormatter{
				Logger:  &logging.ChiLogWriter{},
				NoColor: !logging.IsColorForced(),
			},
		)
	}

	return
}
