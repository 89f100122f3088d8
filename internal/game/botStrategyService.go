package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mshel/sshcandy/internal/board"
	lua "github.com/yuin/gopher-lua"
)

var ErrScriptReturn = errors.New("lua strategy returned an invalid move")

const defaultBotScript = `
function nextMove(grid, moves)
	local best, bestScore = 1, -1
	for i, m in ipairs(moves) do
		local score = m.matched
		if m.special then
			score = score + 10
		end
		-- lower moves disturb more of the board
		score = score + m.fromY / 100
		if score > bestScore then
			best, bestScore = i, score
		end
	end
	return best
end
`

// LuaStrategy delegates move choice to a script defining
// nextMove(grid, moves) that returns a 1-based index into moves. grid[y][x]
// holds kind names such as "RED" or "BOMB".
type LuaStrategy struct {
	StrategyName       string
	StrategyDefinition string
}

func NewLuaStrategy(name, source string) *LuaStrategy {
	return &LuaStrategy{StrategyName: name, StrategyDefinition: source}
}

func DefaultLuaStrategy() *LuaStrategy {
	return NewLuaStrategy("lua-default", defaultBotScript)
}

// LoadLuaStrategy reads a strategy script from path. An empty path yields the
// built-in script.
func LoadLuaStrategy(path string) (*LuaStrategy, error) {
	if path == "" {
		return DefaultLuaStrategy(), nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bot script %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewLuaStrategy(name, string(source)), nil
}

func (s *LuaStrategy) Name() string { return s.StrategyName }

func (s *LuaStrategy) NextMove(kinds [][]board.TokenKind, moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.Move{}, ErrNoMoves
	}

	luaState := lua.NewState()
	defer luaState.Close()

	ctx, cancel := context.WithTimeout(context.Background(), MaxStrategyCalculationTime)
	defer cancel()
	luaState.SetContext(ctx)

	if err := luaState.DoString(s.StrategyDefinition); err != nil {
		return board.Move{}, fmt.Errorf("could not parse lua strategy %s: %w", s.StrategyName, err)
	}

	fn := luaState.GetGlobal("nextMove")
	if fn.Type() != lua.LTFunction {
		return board.Move{}, fmt.Errorf("%w: %s does not define nextMove", ErrScriptReturn, s.StrategyName)
	}

	err := luaState.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		kindsToLuaTable(luaState, kinds),
		movesToLuaTable(luaState, moves),
	)
	if err != nil {
		return board.Move{}, fmt.Errorf("could not execute lua strategy %s: %w", s.StrategyName, err)
	}

	ret := luaState.Get(-1)
	luaState.Pop(1)

	index, ok := ret.(lua.LNumber)
	if !ok {
		return board.Move{}, fmt.Errorf("%w: got %s, expected number", ErrScriptReturn, ret.Type())
	}
	i := int(index)
	if i < 1 || i > len(moves) {
		return board.Move{}, fmt.Errorf("%w: index %d out of 1..%d", ErrScriptReturn, i, len(moves))
	}
	return moves[i-1], nil
}

func kindsToLuaTable(L *lua.LState, kinds [][]board.TokenKind) *lua.LTable {
	grid := L.NewTable()
	for y, row := range kinds {
		luaRow := L.NewTable()
		for x, kind := range row {
			luaRow.RawSetInt(x+1, lua.LString(kind.String()))
		}
		grid.RawSetInt(y+1, luaRow)
	}
	return grid
}

func movesToLuaTable(L *lua.LState, moves []board.Move) *lua.LTable {
	tbl := L.NewTable()
	for i, m := range moves {
		entry := L.NewTable()
		entry.RawSetString("fromX", lua.LNumber(m.From.X))
		entry.RawSetString("fromY", lua.LNumber(m.From.Y))
		entry.RawSetString("toX", lua.LNumber(m.To.X))
		entry.RawSetString("toY", lua.LNumber(m.To.Y))
		entry.RawSetString("matched", lua.LNumber(m.Matched))
		entry.RawSetString("special", lua.LBool(m.Special))
		tbl.RawSetInt(i+1, entry)
	}
	return tbl
}
