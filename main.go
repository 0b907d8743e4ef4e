package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/frame"
	"github.com/cristianadrielbraun/qrframe/internal/handlers"
	"github.com/cristianadrielbraun/qrframe/internal/logger"
	"github.com/cristianadrielbraun/qrframe/internal/qr"
	"github.com/cristianadrielbraun/qrframe/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("QRFRAME_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if closer := logger.Init(cfg.Logging); closer != nil {
		defer closer.Close()
	}

	encoder, err := qr.NewEncoder(cfg.QR.Encoder())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid qr settings")
	}
	compositor, err := frame.New(cfg.Frame.Compositor(), frame.WithLogger(log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid frame settings")
	}
	uploads, err := storage.New(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open upload storage")
	}
	codes, err := storage.New(cfg.Storage.QRDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open qr storage")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(handlers.RequestLogger(log.Logger))
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	h := handlers.New(handlers.Deps{
		Encoder:        encoder,
		Framer:         compositor,
		Uploads:        uploads,
		Codes:          codes,
		PublicURL:      cfg.Server.PublicURL,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		Log:            log.Logger,
	})
	h.Register(r)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("qrframe listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
