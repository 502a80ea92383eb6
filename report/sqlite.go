package report

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"goldbach/extrema"
	"goldbach/types"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	buckets  TEXT NOT NULL,
	width    TEXT NOT NULL,
	deficit  TEXT NOT NULL,
	range_lo INTEGER NOT NULL,
	range_hi INTEGER NOT NULL,
	created  TEXT NOT NULL,
	finished TEXT
);
CREATE TABLE IF NOT EXISTS summaries (
	run_id        TEXT NOT NULL REFERENCES runs(id),
	range_lo      INTEGER NOT NULL,
	range_hi      INTEGER NOT NULL,
	count         INTEGER NOT NULL,
	ratio_avg     REAL,
	ratio_min     REAL,
	ratio_max     REAL,
	envelope_avg  REAL,
	envelope_min  REAL,
	envelope_max  REAL,
	payload       TEXT NOT NULL,
	PRIMARY KEY (run_id, range_lo)
);
`

// SQLite 将摘要写入 SQLite 数据库
type SQLite struct {
	db    *sql.DB
	tie   types.TieBreak
	runID string
}

// OpenSQLite 打开数据库并建表
func OpenSQLite(path string, tie types.TieBreak) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开数据库 %s: %w", path, err)
	}
	// :memory: 每个连接是独立数据库
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=10000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("设置 %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("建表: %w", err)
	}
	return &SQLite{db: db, tie: tie}, nil
}

// DB 底层连接
func (s *SQLite) DB() *sql.DB { return s.db }

// RunID 当前运行标识
func (s *SQLite) RunID() string { return s.runID }

// Begin 写入运行记录, RunID 为空时生成
func (s *SQLite) Begin(meta Meta) error {
	s.runID = meta.RunID
	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	if meta.Created.IsZero() {
		meta.Created = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO runs (id, name, buckets, width, deficit, range_lo, range_hi, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, meta.Name, meta.Buckets, meta.Width, meta.Deficit, int64(meta.Start), int64(meta.End), meta.Created.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("写入运行 %s: %w", s.runID, err)
	}
	return nil
}

// Row 写入区间摘要
func (s *SQLite) Row(summary extrema.Summary) error {
	row := NewRow(summary, s.tie)
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	ratio, envelope := extrema.StatRatio.String(), extrema.StatEnvelope.String()
	_, err = s.db.Exec(`INSERT INTO summaries VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, int64(row.Start), int64(row.End), int64(row.Count),
		row.Average[ratio], nullable(row.Min, ratio), nullable(row.Max, ratio),
		row.Average[envelope], nullable(row.Min, envelope), nullable(row.Max, envelope),
		string(data))
	if err != nil {
		return fmt.Errorf("写入区间 [%d, %d): %w", row.Start, row.End, err)
	}
	return nil
}

// End 记录结束时间
func (s *SQLite) End() error {
	_, err := s.db.Exec(`UPDATE runs SET finished = ? WHERE id = ?`, time.Now().UTC().Format(time.RFC3339Nano), s.runID)
	return err
}

// Close 关闭数据库
func (s *SQLite) Close() error { return s.db.Close() }

func nullable(m map[string]Extreme, name string) sql.NullFloat64 {
	e, ok := m[name]
	return sql.NullFloat64{Float64: e.Value, Valid: ok}
}
