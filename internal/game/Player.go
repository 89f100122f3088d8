package game

import (
	"github.com/charmbracelet/ssh"
)

// Player is whoever plays a session: a human over ssh, a local terminal or a
// websocket, or a bot.
type Player struct {
	Name         string
	SshSession   ssh.Session
	Preset       BoardPreset
	FinalScore   int
	IsBot        bool
	StrategyName string
}

func CreateNewPlayer(sshSession ssh.Session, name string, preset BoardPreset) *Player {
	if name == "" {
		name = "anonymous"
	}
	return &Player{
		Name:       name,
		SshSession: sshSession,
		Preset:     preset,
	}
}

func CreateBotPlayer(strategy Strategy, preset BoardPreset) *Player {
	return &Player{
		Name:         "bot:" + strategy.Name(),
		Preset:       preset,
		IsBot:        true,
		StrategyName: strategy.Name(),
	}
}
