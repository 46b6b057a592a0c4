package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultMaxBodySize limits the size of request bodies
	DefaultMaxBodySize = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// HttpServer exposes the encoder over HTTP
type HttpServer struct {
	Address        string
	MaxConnections int
	MaxBodySize    int64
	TLSConfig      *tls.Config

	server   *http.Server
	listener net.Listener
}

func NewHttpServer(address string) *HttpServer {
	return &HttpServer{
		Address:     address,
		MaxBodySize: DefaultMaxBodySize,
	}
}

func (ws *HttpServer) String() string {
	scheme := "http"
	if ws.TLSConfig != nil {
		scheme = "https"
	}
	if ws.listener != nil {
		return fmt.Sprintf("%s://%v", scheme, ws.listener.Addr())
	}
	return fmt.Sprintf("%s://%v", scheme, ws.Address)
}

// Router creates the handler serving all the endpoints
func (ws *HttpServer) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(),
		middleware.RedirectSlashes, // Redirect slashes to no slash URLs
		middleware.Recoverer,       // Recover from panics without crashing the server
	)

	h := &handlers{
		maxBodySize: ws.MaxBodySize,
	}
	router.Post("/encode", h.encode)
	router.Post("/verify", h.verify)
	router.Get("/healthz", h.healthz)

	return router
}

// Startup starts listening on the address and serves requests in the background
func (ws *HttpServer) Startup() error {
	ln, err := net.Listen("tcp", ws.Address)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", ws.Address)
	}
	if ws.MaxConnections > 0 {
		log.Debugf("Limiting %v to %v concurrent connections", ws.Address, ws.MaxConnections)
		ln = netutil.LimitListener(ln, ws.MaxConnections)
	}
	ws.listener = ln
	if ws.TLSConfig != nil {
		ln = tls.NewListener(ln, ws.TLSConfig)
	}

	ws.server = &http.Server{
		Addr:              ws.Address,
		Handler:           ws.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         ws.TLSConfig,
	}

	go func() {
		log.Infof("Starting server at %v", ws)
		if err := ws.server.Serve(ln); err != http.ErrServerClosed {
			err = errors.WithStack(err)
			log.WithError(err).Errorf("Could not start the server %v", err)
		}
	}()

	return nil
}

// Shutdown stops the server, giving the in-flight requests some time to finish
func (ws *HttpServer) Shutdown() error {
	if ws.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.WithStack(ws.server.Shutdown(ctx))
}
