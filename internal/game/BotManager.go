package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// BotMaster feeds strategy moves into the sessions of its bots.
type BotMaster struct {
	mu                sync.Mutex
	ControlledPlayers []*Bot
	logger            *log.Logger
}

func NewBotMaster(logger *log.Logger) *BotMaster {
	return &BotMaster{logger: logger}
}

// AddBot puts a new bot in charge of gm.
func (bm *BotMaster) AddBot(gm *GameManager, strategy Strategy) *Bot {
	w, h := gm.Size()
	bot := &Bot{
		BotStrategy: strategy,
		Player:      CreateBotPlayer(strategy, BoardPreset{Name: "bot", Width: w, Height: h}),
		GameManager: gm,
	}
	bm.mu.Lock()
	bm.ControlledPlayers = append(bm.ControlledPlayers, bot)
	bm.mu.Unlock()
	return bot
}

// StartBotFleet plays every bot on a ticker until ctx is done.
func (bm *BotMaster) StartBotFleet(ctx context.Context) {
	ticker := time.NewTicker(BotTickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.processBots()
		}
	}
}

func (bm *BotMaster) processBots() {
	bm.mu.Lock()
	bots := append([]*Bot(nil), bm.ControlledPlayers...)
	bm.mu.Unlock()

	var wg sync.WaitGroup
	for _, bot := range bots {
		wg.Add(1)
		go func(b *Bot) {
			defer wg.Done()
			if err := bm.playTurn(b); err != nil && !errors.Is(err, ErrNoMoves) {
				bm.logger.Warn("Bot strategy failed", "bot", b.Name, "error", err)
			}
		}(bot)
	}
	wg.Wait()
}

// playTurn queues one move when the bot's board is waiting for input.
func (bm *BotMaster) playTurn(b *Bot) error {
	gm := b.GameManager
	if !gm.IsIdle() {
		return nil
	}
	move, err := b.BotStrategy.NextMove(gm.Kinds(), gm.PossibleMoves())
	if err != nil {
		return err
	}
	gm.Select(move.From.X, move.From.Y)
	gm.Select(move.To.X, move.To.Y)
	return nil
}
