package game

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const (
	GameTickDuration           = 16 * time.Millisecond
	RoundDuration              = 60 * time.Second
	BotTickDuration            = 350 * time.Millisecond
	MaxStrategyCalculationTime = 50 * time.Millisecond
	LeaderboardPageSize        = 10
	MaxConnectionsPerIP        = 2
	sunsetWorkersCount         = 4
	updateChannelSize          = 256
	selectChannelSize          = 16
)

// BoardPreset is a board size offered on the setup screen.
type BoardPreset struct {
	Name          string
	Width, Height int
}

var BoardPresets = []BoardPreset{
	{Name: "Classic", Width: 8, Height: 10},
	{Name: "Square", Width: 8, Height: 8},
	{Name: "Wide", Width: 12, Height: 9},
}

// Config holds runtime settings read from the environment.
type Config struct {
	PrivateKeyPath string
	Host           string
	Port           string
	WebPort        string
	DBPath         string
	BotScript      string
	LogLevel       log.Level
}

// LoadConfig reads SSHCANDY_* variables, falling back to defaults.
func LoadConfig() Config {
	cfg := Config{
		PrivateKeyPath: getEnv("SSHCANDY_PRIVATE_KEY_PATH", ".ssh/id_ed25519"),
		Host:           getEnv("SSHCANDY_HOST", "0.0.0.0"),
		Port:           getEnv("SSHCANDY_PORT", "6996"),
		WebPort:        getEnv("SSHCANDY_WEB_PORT", "8080"),
		DBPath:         getEnv("SSHCANDY_DB_PATH", "highscores.db"),
		BotScript:      os.Getenv("SSHCANDY_BOT_SCRIPT"),
		LogLevel:       log.InfoLevel,
	}

	if raw := os.Getenv("SSHCANDY_LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			log.Warn("Unknown log level, using info", "value", raw)
		} else {
			cfg.LogLevel = level
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
