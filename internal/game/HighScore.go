package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

type HighScoreService struct {
	db *sql.DB
}

const tableName = "high_scores"

type Score struct {
	ID          int       `json:"id"`
	PlayerName  string    `json:"playerName"`
	Score       int       `json:"score"`
	BoardWidth  int       `json:"boardWidth"`
	BoardHeight int       `json:"boardHeight"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", dbPath, err)
	}

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating high scores table: %w", err)
	}

	return service, nil
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		board_w INTEGER NOT NULL,
		board_h INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	const createIndexSQL = `
	CREATE INDEX IF NOT EXISTS idx_` + tableName + `_player
	ON ` + tableName + ` (player_name, board_w, board_h, score);`

	if _, err := serviceImpl.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	if _, err := serviceImpl.db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE INDEX: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SavePlayersHighScore(playerName string, score, boardWidth, boardHeight int) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, score, board_w, board_h)
	VALUES (?, ?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL, playerName, score, boardWidth, boardHeight)
	if err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", playerName, err)
	}

	return nil
}

// GetHighScores retrieves a page of scores, best first. Equal scores keep the
// order they were set in.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, board_w, board_h, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score

	for rows.Next() {
		var score Score
		var createdAt sql.NullTime
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Score, &score.BoardWidth, &score.BoardHeight, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if createdAt.Valid {
			score.CreatedAt = createdAt.Time
		} else {
			log.Warn("High score without timestamp", "id", score.ID, "name", score.PlayerName)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

// GetPersonalBest returns the best score a player has set on boards of the
// given size, or 0 if they have none.
func (serviceImpl *HighScoreService) GetPersonalBest(playerName string, boardWidth, boardHeight int) (int, error) {
	const bestSQL = `
	SELECT COALESCE(MAX(score), 0) FROM ` + tableName + `
	WHERE player_name = ? AND board_w = ? AND board_h = ?;`

	var best int
	if err := serviceImpl.db.QueryRow(bestSQL, playerName, boardWidth, boardHeight).Scan(&best); err != nil {
		return 0, fmt.Errorf("failed to get personal best for %s: %w", playerName, err)
	}
	return best, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}
