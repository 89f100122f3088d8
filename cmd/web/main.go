package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/sshcandy/internal/game"
	"github.com/Mshel/sshcandy/internal/web"
	"github.com/charmbracelet/log"
)

func main() {
	cfg := game.LoadConfig()
	log.SetLevel(cfg.LogLevel)

	highScores, err := game.NewHighScoreService(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open high score database", "path", cfg.DBPath, "error", err)
	}
	defer highScores.Close()
	playerManager := game.NewPlayerManager(highScores, log.Default().WithPrefix("players"))

	webServer := web.NewServer(playerManager, log.Default().WithPrefix("web"))
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.WebPort),
		Handler:           webServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting web server", "host", cfg.Host, "port", cfg.WebPort)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping web server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Could not stop server", "error", err)
	}
	webServer.Close()
	playerManager.Close()
}
