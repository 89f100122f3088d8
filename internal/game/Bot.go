package game

// Bot plays a session through its strategy.
type Bot struct {
	BotStrategy Strategy
	*Player
	GameManager *GameManager
}
