package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Mshel/sshcandy/internal/game"
	"github.com/Mshel/sshcandy/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg := game.LoadConfig()
	log.SetLevel(cfg.LogLevel)

	logFile, err := tea.LogToFile("sshcandy.log", "runner")
	if err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	highScores, err := game.NewHighScoreService(cfg.DBPath)
	if err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
	defer highScores.Close()
	playerManager := game.NewPlayerManager(highScores, log.Default().WithPrefix("players"))
	defer playerManager.Close()

	botStrategy, err := game.LoadLuaStrategy(cfg.BotScript)
	if err != nil {
		log.Warn("Could not load bot script, using the built-in one", "error", err)
		botStrategy = game.DefaultLuaStrategy()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(ui.NewControllerModel(ctx, playerManager, botStrategy, nil, 0, 0),
		tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
