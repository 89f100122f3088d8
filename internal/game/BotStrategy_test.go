package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Mshel/sshcandy/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleMoves = []board.Move{
	{From: board.Coord{X: 0, Y: 0}, To: board.Coord{X: 1, Y: 0}, Matched: 3},
	{From: board.Coord{X: 2, Y: 4}, To: board.Coord{X: 2, Y: 5}, Matched: 5},
	{From: board.Coord{X: 6, Y: 1}, To: board.Coord{X: 7, Y: 1}, Special: true},
}

func TestDefaultStrategyPrefersSpecials(t *testing.T) {
	move, err := DefaultStrategy{}.NextMove(nil, sampleMoves)
	require.NoError(t, err)
	assert.Equal(t, sampleMoves[2], move)

	move, err = DefaultStrategy{}.NextMove(nil, sampleMoves[:2])
	require.NoError(t, err)
	assert.Equal(t, sampleMoves[1], move)
}

func TestDefaultStrategyKeepsFirstOnTie(t *testing.T) {
	moves := []board.Move{sampleMoves[0], {From: board.Coord{X: 4, Y: 4}, To: board.Coord{X: 4, Y: 5}, Matched: 3}}
	move, err := DefaultStrategy{}.NextMove(nil, moves)
	require.NoError(t, err)
	assert.Equal(t, moves[0], move)
}

func TestStrategiesRejectEmptyMoves(t *testing.T) {
	_, err := DefaultStrategy{}.NextMove(nil, nil)
	assert.ErrorIs(t, err, ErrNoMoves)

	_, err = DefaultLuaStrategy().NextMove(nil, nil)
	assert.ErrorIs(t, err, ErrNoMoves)
}

func TestDefaultLuaStrategyAgreesWithGreedy(t *testing.T) {
	move, err := DefaultLuaStrategy().NextMove(nil, sampleMoves)
	require.NoError(t, err)
	assert.Equal(t, sampleMoves[2], move)

	move, err = DefaultLuaStrategy().NextMove(nil, sampleMoves[:2])
	require.NoError(t, err)
	assert.Equal(t, sampleMoves[1], move)
}

func TestLuaStrategySeesGrid(t *testing.T) {
	strategy := NewLuaStrategy("corner", `
		function nextMove(grid, moves)
			if grid[1][2] == "BOMB" and moves[2].toY == 5 then
				return 2
			end
			return 1
		end
	`)
	kinds := [][]board.TokenKind{{board.Red, board.Bomb}}

	move, err := strategy.NextMove(kinds, sampleMoves)

	require.NoError(t, err)
	assert.Equal(t, sampleMoves[1], move)
}

func TestLuaStrategyInvalidReturns(t *testing.T) {
	cases := map[string]string{
		"not a number":   `function nextMove(grid, moves) return "first" end`,
		"out of range":   `function nextMove(grid, moves) return 99 end`,
		"zero index":     `function nextMove(grid, moves) return 0 end`,
		"missing global": `function pickSomething() return 1 end`,
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLuaStrategy(name, source).NextMove(nil, sampleMoves)
			assert.ErrorIs(t, err, ErrScriptReturn)
		})
	}
}

func TestLuaStrategyScriptErrors(t *testing.T) {
	_, err := NewLuaStrategy("broken", `function nextMove(`).NextMove(nil, sampleMoves)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrScriptReturn)

	_, err = NewLuaStrategy("raises", `function nextMove() error("boom") end`).NextMove(nil, sampleMoves)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestLuaStrategyTimesOut(t *testing.T) {
	strategy := NewLuaStrategy("spin", `function nextMove() while true do end end`)
	_, err := strategy.NextMove(nil, sampleMoves)
	assert.Error(t, err)
}

func TestLoadLuaStrategy(t *testing.T) {
	strategy, err := LoadLuaStrategy("")
	require.NoError(t, err)
	assert.Equal(t, "lua-default", strategy.Name())

	path := filepath.Join(t.TempDir(), "last.lua")
	require.NoError(t, os.WriteFile(path, []byte(`function nextMove(grid, moves) return #moves end`), 0o644))

	strategy, err = LoadLuaStrategy(path)
	require.NoError(t, err)
	assert.Equal(t, "last", strategy.Name())
	move, err := strategy.NextMove(nil, sampleMoves)
	require.NoError(t, err)
	assert.Equal(t, sampleMoves[2], move)

	_, err = LoadLuaStrategy(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestBotMasterQueuesMoveWhenIdle(t *testing.T) {
	gm := newTestManager(t)
	bm := NewBotMaster(quietLogger)
	bot := bm.AddBot(gm, DefaultStrategy{})

	assert.True(t, bot.IsBot)
	assert.Equal(t, "bot:greedy", bot.Name)

	require.NoError(t, bm.playTurn(bot))
	assert.Len(t, gm.SelectChannel, 2)

	require.NoError(t, bm.playTurn(bot))
	assert.Len(t, gm.SelectChannel, 2, "a busy session gets no extra clicks")

	tickUntilIdle(t, gm)
	assert.GreaterOrEqual(t, gm.Score(), 30)
}

func TestBotMasterProcessesFleet(t *testing.T) {
	bm := NewBotMaster(quietLogger)
	first, second := newTestManager(t), newTestManager(t)
	bm.AddBot(first, DefaultStrategy{})
	bm.AddBot(second, DefaultLuaStrategy())

	bm.processBots()

	assert.Len(t, first.SelectChannel, 2)
	assert.Len(t, second.SelectChannel, 2)
}
