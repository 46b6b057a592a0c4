package serve

import (
	"github.com/bokysan/progress-encode/internal/cert"
	"github.com/bokysan/progress-encode/internal/logging"
	"github.com/bokysan/progress-encode/internal/server"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

// Command runs the HTTP service until interrupted
type Command struct {
	Listen         string `json:"listen"          short:"L" long:"listen"          env:"LISTEN"          description:"Address to listen on" default:"127.0.0.1:8080"`
	MaxConnections int    `json:"max-connections"           long:"max-connections" env:"MAX_CONNECTIONS" description:"Maximum number of concurrent connections. 0 means no limit." default:"0"`
	MaxBodySize    int64  `json:"max-body-size"             long:"max-body-size"   env:"MAX_BODY_SIZE"   description:"Maximum size of a request body in bytes" default:"1048576"`

	cert.ServerConfig `json:",inline"`
}

func NewCommand() *Command {
	return &Command{}
}

func (s *Command) Server() (*server.HttpServer, error) {
	srv := server.NewHttpServer(s.Listen)
	srv.MaxConnections = s.MaxConnections
	if s.MaxBodySize > 0 {
		srv.MaxBodySize = s.MaxBodySize
	}
	tlsConfig, err := s.GetTlsConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid TLS configuration")
	}
	srv.TLSConfig = tlsConfig
	return srv, nil
}

func (s *Command) Execute(args []string) error {
	logging.SetupLogging()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	return s.run(interrupted)
}

// run serves until something arrives on the stop channel
func (s *Command) run(stop <-chan os.Signal) error {
	srv, err := s.Server()
	if err != nil {
		return err
	}
	if err := srv.Startup(); err != nil {
		return err
	}

	<-stop
	log.Infof("Graceful server shutdown...")
	if err := srv.Shutdown(); err != nil {
		return errors.Wrapf(err, "Could not shutdown %v", srv)
	}
	return nil
}
