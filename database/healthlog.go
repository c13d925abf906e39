package database

import (
    "context"
    "database/sql"
    "fmt"
    "log"
    "os"
    "path/filepath"

    "health-chatbot-backend/models"

    _ "modernc.org/sqlite"
)

var healthLogDB *sql.DB

const healthLogSchema = `
CREATE TABLE IF NOT EXISTS health_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    event TEXT NOT NULL,
    date TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_health_logs_user ON health_logs(user_id);
`

// OpenHealthLog opens (creating if needed) the local SQLite database that
// keeps per-user health event logs
func OpenHealthLog(path string) error {
    if dir := filepath.Dir(path); dir != "." && dir != "" {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("failed to create health log directory: %w", err)
        }
    }

    db, err := sql.Open("sqlite", path)
    if err != nil {
        return fmt.Errorf("failed to open health log database: %w", err)
    }

    if _, err := db.Exec(healthLogSchema); err != nil {
        db.Close()
        return fmt.Errorf("failed to initialize health log schema: %w", err)
    }

    healthLogDB = db
    log.Println("Health log database ready at", path)
    return nil
}

// CloseHealthLog closes the SQLite handle if it was opened
func CloseHealthLog() error {
    if healthLogDB == nil {
        return nil
    }
    err := healthLogDB.Close()
    healthLogDB = nil
    return err
}

// PingHealthLog verifies the SQLite handle is usable
func PingHealthLog() error {
    if healthLogDB == nil {
        return fmt.Errorf("health log database not initialized")
    }
    return healthLogDB.Ping()
}

// GetHealthLogDB returns the SQLite handle
func GetHealthLogDB() *sql.DB {
    if healthLogDB == nil {
        log.Fatal("Health log database not initialized. Call OpenHealthLog first.")
    }
    return healthLogDB
}

// InsertHealthLog records one health event for a user and returns its row id
func InsertHealthLog(ctx context.Context, userID, event, date string) (int64, error) {
    result, err := GetHealthLogDB().ExecContext(ctx,
        "INSERT INTO health_logs (user_id, event, date) VALUES (?, ?, ?)",
        userID, event, date)
    if err != nil {
        return 0, fmt.Errorf("failed to insert health log: %w", err)
    }
    return result.LastInsertId()
}

// ListHealthLogs returns a user's health events, newest first
func ListHealthLogs(ctx context.Context, userID string) ([]models.HealthLog, error) {
    rows, err := GetHealthLogDB().QueryContext(ctx,
        "SELECT id, user_id, event, date, created_at FROM health_logs WHERE user_id = ? ORDER BY id DESC",
        userID)
    if err != nil {
        return nil, fmt.Errorf("failed to query health logs: %w", err)
    }
    defer rows.Close()

    var logs []models.HealthLog
    for rows.Next() {
        var entry models.HealthLog
        if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Event, &entry.Date, &entry.CreatedAt); err != nil {
            return nil, fmt.Errorf("failed to scan health log: %w", err)
        }
        logs = append(logs, entry)
    }
    return logs, rows.Err()
}
