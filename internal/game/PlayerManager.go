package game

import (
	"sync"

	"github.com/charmbracelet/log"
)

// PlayerManager retires finished players in the background, persisting the
// scores of human players.
type PlayerManager struct {
	SunsetPlayersChannel chan *Player
	HighScoreService     *HighScoreService

	logger    *log.Logger
	workers   sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

func NewPlayerManager(highScores *HighScoreService, logger *log.Logger) *PlayerManager {
	playerManager := &PlayerManager{
		SunsetPlayersChannel: make(chan *Player, sunsetWorkersCount),
		HighScoreService:     highScores,
		logger:               logger,
		done:                 make(chan struct{}),
	}

	for w := 1; w <= sunsetWorkersCount; w++ {
		playerManager.workers.Add(1)
		go playerManager.sunsetPlayersWorker()
	}

	return playerManager
}

// SunsetPlayer hands a finished player to the workers. Players arriving after
// Close are dropped.
func (playerManagerInst *PlayerManager) SunsetPlayer(player *Player) {
	if player == nil {
		return
	}
	select {
	case <-playerManagerInst.done:
		playerManagerInst.dropPlayer(player)
		return
	default:
	}
	select {
	case playerManagerInst.SunsetPlayersChannel <- player:
	case <-playerManagerInst.done:
		playerManagerInst.dropPlayer(player)
	}
}

func (playerManagerInst *PlayerManager) dropPlayer(player *Player) {
	playerManagerInst.logger.Warn("Player manager closed, score not saved", "player", player.Name, "score", player.FinalScore)
}

func (playerManagerInst *PlayerManager) sunsetPlayersWorker() {
	defer playerManagerInst.workers.Done()
	for {
		select {
		case player := <-playerManagerInst.SunsetPlayersChannel:
			playerManagerInst.sunsetPlayer(player)
		case <-playerManagerInst.done:
			// finish what was queued before Close
			for {
				select {
				case player := <-playerManagerInst.SunsetPlayersChannel:
					playerManagerInst.sunsetPlayer(player)
				default:
					return
				}
			}
		}
	}
}

func (playerManagerInst *PlayerManager) sunsetPlayer(player *Player) {
	if player.IsBot {
		playerManagerInst.logger.Debug("Bot round finished", "bot", player.Name, "score", player.FinalScore)
		return
	}

	err := playerManagerInst.HighScoreService.SavePlayersHighScore(
		player.Name,
		player.FinalScore,
		player.Preset.Width,
		player.Preset.Height,
	)
	if err != nil {
		playerManagerInst.logger.Error("High score persist failed", "player", player.Name, "error", err)
		return
	}
	playerManagerInst.logger.Info("High score saved", "player", player.Name, "score", player.FinalScore)
}

// Close stops accepting players and waits for pending saves. It is safe to
// call more than once and while sessions are still finishing.
func (playerManagerInst *PlayerManager) Close() {
	playerManagerInst.closeOnce.Do(func() {
		close(playerManagerInst.done)
	})
	playerManagerInst.workers.Wait()
}
