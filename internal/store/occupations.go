package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jobmarket-engine/internal/corpus"
	"jobmarket-engine/internal/domain"
)

// Migrate brings the schema up to the current version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS occupations (
  code TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  family TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  education_level TEXT NOT NULL DEFAULT 'unknown',
  salary_median REAL,
  job_growth TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  lists TEXT NOT NULL DEFAULT '{}',
  completeness REAL NOT NULL DEFAULT 0,
  flagged INTEGER NOT NULL DEFAULT 0,
  flag_reasons TEXT NOT NULL DEFAULT '[]',
  scraped_at TEXT NOT NULL
);`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS failures (
  code TEXT PRIMARY KEY,
  reason TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 1,
  recorded_at TEXT NOT NULL
);`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// recordLists is the JSON blob holding all list-valued fields; they are only
// ever read back whole, so one column keeps the schema honest.
type recordLists struct {
	TechnologySkills []string `json:"technology_skills"`
	WorkActivities   []string `json:"work_activities"`
	WorkContext      []string `json:"work_context"`
	KnowledgeAreas   []string `json:"knowledge_areas"`
	Abilities        []string `json:"abilities"`
	WorkStyles       []string `json:"work_styles"`
	Tasks            []string `json:"tasks"`
	ToolsUsed        []string `json:"tools_used"`
	WorkValues       []string `json:"work_values"`
}

// InsertEntryIgnore appends one validated entry, ignoring duplicates by
// occupation code. Returns whether a new row was added.
func InsertEntryIgnore(ctx context.Context, db *sql.DB, e corpus.Entry) (bool, error) {
	rec := e.Record
	lists, err := json.Marshal(recordLists{
		TechnologySkills: rec.TechnologySkills,
		WorkActivities:   rec.WorkActivities,
		WorkContext:      rec.WorkContext,
		KnowledgeAreas:   rec.KnowledgeAreas,
		Abilities:        rec.Abilities,
		WorkStyles:       rec.WorkStyles,
		Tasks:            rec.Tasks,
		ToolsUsed:        rec.ToolsUsed,
		WorkValues:       rec.WorkValues,
	})
	if err != nil {
		return false, fmt.Errorf("marshal lists: %w", err)
	}

	reasons, _ := json.Marshal(e.Outcome.Reasons)
	flagged := 0
	if len(e.Outcome.Reasons) > 0 {
		flagged = 1
	}

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO occupations
  (code, title, family, description, education_level, salary_median, job_growth, url, lists, completeness, flagged, flag_reasons, scraped_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		rec.Code,
		rec.Title,
		rec.Family,
		rec.Description,
		string(rec.EducationLevel),
		rec.SalaryMedian,
		rec.JobGrowth,
		rec.URL,
		string(lists),
		rec.Completeness(),
		flagged,
		string(reasons),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert occupation %s: %w", rec.Code, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// InsertFailure records one ledger entry, last write wins per code.
func InsertFailure(ctx context.Context, db *sql.DB, f corpus.Failure) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO failures (code, reason, attempts, recorded_at)
VALUES (?,?,?,?)
ON CONFLICT(code) DO UPDATE SET
  reason = excluded.reason,
  attempts = excluded.attempts,
  recorded_at = excluded.recorded_at;`,
		f.Code, f.Reason, f.Attempts, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert failure %s: %w", f.Code, err)
	}
	return nil
}

// SaveResult checkpoints a whole run.
func SaveResult(ctx context.Context, db *sql.DB, res corpus.Result) error {
	for _, e := range res.Records {
		if _, err := InsertEntryIgnore(ctx, db, e); err != nil {
			return err
		}
	}
	for _, f := range res.Ledger {
		if err := InsertFailure(ctx, db, f); err != nil {
			return err
		}
	}
	return nil
}

// LoadRecords reads every stored occupation back, ordered by code.
func LoadRecords(ctx context.Context, db *sql.DB) ([]domain.OccupationRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT code, title, family, description, education_level, salary_median, job_growth, url, lists
FROM occupations ORDER BY code;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OccupationRecord
	for rows.Next() {
		var rec domain.OccupationRecord
		var edu, listsJSON string
		var salary sql.NullFloat64
		if err := rows.Scan(&rec.Code, &rec.Title, &rec.Family, &rec.Description,
			&edu, &salary, &rec.JobGrowth, &rec.URL, &listsJSON); err != nil {
			return nil, err
		}
		rec.EducationLevel = domain.EducationLevel(edu)
		if salary.Valid {
			rec.SalaryMedian = &salary.Float64
		}
		var lists recordLists
		if err := json.Unmarshal([]byte(listsJSON), &lists); err != nil {
			return nil, fmt.Errorf("decode lists for %s: %w", rec.Code, err)
		}
		rec.TechnologySkills = lists.TechnologySkills
		rec.WorkActivities = lists.WorkActivities
		rec.WorkContext = lists.WorkContext
		rec.KnowledgeAreas = lists.KnowledgeAreas
		rec.Abilities = lists.Abilities
		rec.WorkStyles = lists.WorkStyles
		rec.Tasks = lists.Tasks
		rec.ToolsUsed = lists.ToolsUsed
		rec.WorkValues = lists.WorkValues
		out = append(out, rec)
	}
	return out, rows.Err()
}
