package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobmarket-engine/internal/corpus"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/validate"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func sampleEntry(code string) corpus.Entry {
	salary := 130160.0
	rec := domain.OccupationRecord{
		Code:             code,
		Title:            "Software Developers",
		Family:           domain.FamilyForCode(code),
		Description:      "Research, design, and develop computer software.",
		TechnologySkills: []string{"Python", "SQL"},
		EducationLevel:   domain.EducationBachelor,
		SalaryMedian:     &salary,
		Tasks:            []string{"Analyze user needs.", "Design software systems."},
		URL:              "https://www.onetonline.org/link/summary/" + code,
	}
	return corpus.Entry{
		Record:  rec,
		Outcome: validate.Policy{CompletenessThreshold: 0.5}.Validate(&rec),
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))
	require.NoError(t, Migrate(db.Pool))
}

func TestInsertAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	added, err := InsertEntryIgnore(ctx, db.Pool, sampleEntry("15-1252.00"))
	require.NoError(t, err)
	require.True(t, added)

	recs, err := LoadRecords(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	require.Equal(t, "15-1252.00", got.Code)
	require.Equal(t, "Software Developers", got.Title)
	require.Equal(t, "Computer and Mathematical Occupations", got.Family)
	require.Equal(t, domain.EducationBachelor, got.EducationLevel)
	require.NotNil(t, got.SalaryMedian)
	require.Equal(t, 130160.0, *got.SalaryMedian)
	require.Equal(t, []string{"Python", "SQL"}, got.TechnologySkills)
	require.Equal(t, []string{"Analyze user needs.", "Design software systems."}, got.Tasks)
}

func TestInsertIgnoresDuplicateCode(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	added, err := InsertEntryIgnore(ctx, db.Pool, sampleEntry("15-1252.00"))
	require.NoError(t, err)
	require.True(t, added)

	dup := sampleEntry("15-1252.00")
	dup.Record.Title = "Changed Title"
	added, err = InsertEntryIgnore(ctx, db.Pool, dup)
	require.NoError(t, err)
	require.False(t, added)

	recs, err := LoadRecords(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Software Developers", recs[0].Title)
}

func TestNilSalarySurvivesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	e := sampleEntry("15-2011.00")
	e.Record.SalaryMedian = nil
	_, err := InsertEntryIgnore(ctx, db.Pool, e)
	require.NoError(t, err)

	recs, err := LoadRecords(ctx, db.Pool)
	require.NoError(t, err)
	require.Nil(t, recs[0].SalaryMedian)
}

func TestInsertFailureUpserts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, InsertFailure(ctx, db.Pool, corpus.Failure{Code: "11-1011.00", Reason: "status 503", Attempts: 4}))
	require.NoError(t, InsertFailure(ctx, db.Pool, corpus.Failure{Code: "11-1011.00", Reason: "status 404", Attempts: 1}))

	var reason string
	var attempts int
	err := db.Pool.QueryRowContext(ctx,
		`SELECT reason, attempts FROM failures WHERE code = ?;`, "11-1011.00").
		Scan(&reason, &attempts)
	require.NoError(t, err)
	require.Equal(t, "status 404", reason)
	require.Equal(t, 1, attempts)
}

func TestSaveResult(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	res := corpus.Result{
		Records: []corpus.Entry{sampleEntry("15-1252.00"), sampleEntry("15-2011.00")},
		Ledger:  []corpus.Failure{{Code: "11-1011.00", Reason: "status 404", Attempts: 1}},
	}
	require.NoError(t, SaveResult(ctx, db.Pool, res))

	recs, err := LoadRecords(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// LoadRecords orders by code
	require.Equal(t, "15-1252.00", recs[0].Code)
	require.Equal(t, "15-2011.00", recs[1].Code)

	var n int
	require.NoError(t, db.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM failures;`).Scan(&n))
	require.Equal(t, 1, n)
}
