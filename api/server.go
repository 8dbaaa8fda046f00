package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/backend"
	"github.com/meghashyamc/docregistry/config"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/services/report"
	"github.com/meghashyamc/docregistry/services/session"
	"github.com/meghashyamc/docregistry/ui"
	"github.com/meghashyamc/docregistry/validation"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	sessions   *session.Registry
	reports    *report.Service
	validator  *validation.Validator
	logger     logger.Logger
}

func Run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	defer cancel()

	s := &server{
		cfg:    cfg,
		logger: logger.New(cfg.GetLogLevel()),
	}
	if err := s.setupDependencies(); err != nil {
		return err
	}
	if err := s.setupRouter(); err != nil {
		return err
	}

	go s.sessions.Run(ctx)

	errs := make(chan error, 1)
	s.setupHTTPServer(errs)

	return s.setupGracefulShutdown(ctx, errs)
}

// NewViewFactory builds consult views backed by the configured registry
// backend. Every view loads the document types as it is created.
func NewViewFactory(cfg *config.Config, logger logger.Logger) session.Factory {
	newView := viewBuilder(cfg, logger)
	return func(ctx context.Context) *consult.View {
		view := newView()
		view.Init(ctx)
		return view
	}
}

// NewView builds a single consult view that has not loaded its document
// types yet.
func NewView(cfg *config.Config, logger logger.Logger) *consult.View {
	return viewBuilder(cfg, logger)()
}

func viewBuilder(cfg *config.Config, logger logger.Logger) func() *consult.View {
	b := backend.New(logger, cfg.GetBackendURL(),
		backend.WithTimeout(cfg.GetBackendTimeout()),
		backend.WithRateLimit(cfg.GetBackendRateLimit()),
	)
	clients := consult.NewBatchedClients(backend.NewClientService(b))
	documents := backend.NewDocumentService(b)
	options := consult.Options{
		EditPath:    cfg.GetEditPath(),
		ShortNotice: cfg.GetShortNoticeDuration(),
		LongNotice:  cfg.GetLongNoticeDuration(),
	}

	return func() *consult.View {
		return consult.New(logger, clients, documents, options)
	}
}

func (s *server) setupDependencies() error {
	var err error
	s.sessions = session.New(s.logger, NewViewFactory(s.cfg, s.logger), s.cfg.GetSessionMaxIdle())
	s.reports = report.New(s.logger)
	s.validator, err = validation.New(s.logger)
	if err != nil {
		s.logger.Error("error creating validator", "err", err.Error())
		return err
	}

	return nil
}

func (s *server) setupRouter() error {
	templates, err := ui.Templates()
	if err != nil {
		s.logger.Error("error parsing page templates", "err", err.Error())
		return err
	}

	router := newRouter(s.cfg.GetCORSAllowedOrigins())
	router.SetHTMLTemplate(templates)
	router.Use(loggingMiddleware(s.logger))

	setupRoutes(router, s.logger, s.sessions, s.reports, s.validator)

	s.router = router
	return nil
}

func (s *server) setupHTTPServer(errs chan<- error) {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.GetPort()),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpServer
	go func() {
		s.logger.Info("starting http server", "addr", httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", "err", err.Error())
			errs <- fmt.Errorf("listen: %w", err)
		}
	}()
}

func (s *server) setupGracefulShutdown(ctx context.Context, errs <-chan error) error {
	var wg sync.WaitGroup
	var shutdownErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case shutdownErr = <-errs:
			return
		}
		s.logger.Info("starting to shut down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error shutting down http server", "err", err)
			shutdownErr = err
			return
		}
		s.logger.Info("shut down http server successfully")
	}()

	wg.Wait()
	return shutdownErr
}
