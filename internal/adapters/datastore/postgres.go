package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

const (
	queryTimeout   = 3 * time.Second
	connectTimeout = 5 * time.Second
)

// Upstream tables. Stat columns are read dynamically, so new feed columns
// are picked up without a code change.
const (
	playerStatsQuery = `SELECT * FROM player_stats WHERE league_id = $1 ORDER BY id`
	teamStatsQuery   = `SELECT * FROM team_stats WHERE league_id = $1 ORDER BY id`
	scheduleQuery    = `SELECT * FROM game_schedule WHERE league_id = $1 ORDER BY matchtime`
	rosterQuery      = `SELECT * FROM teams WHERE league_id = $1 ORDER BY name`
	leagueQuery      = `SELECT EXISTS (SELECT 1 FROM leagues WHERE league_id = $1)`
)

// PostgresStore reads the upstream feed tables.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(15 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Dataset implements DatasetLoader. A league with no row in the leagues
// table is reported as ErrLeagueNotFound.
func (s *PostgresStore) Dataset(ctx context.Context, leagueID string) (model.Dataset, error) {
	ds := model.Dataset{LeagueID: leagueID}
	if err := s.exists(ctx, leagueID); err != nil {
		return ds, err
	}
	var err error
	if ds.PlayerRecords, err = s.PlayerGameStats(ctx, leagueID); err != nil {
		return ds, err
	}
	if ds.TeamRecords, err = s.TeamGameStats(ctx, leagueID); err != nil {
		return ds, err
	}
	if ds.Schedule, err = s.Schedule(ctx, leagueID); err != nil {
		return ds, err
	}
	if ds.Roster, err = s.Roster(ctx, leagueID); err != nil {
		return ds, err
	}
	return ds, nil
}

// PlayerGameStats implements Store.
func (s *PostgresStore) PlayerGameStats(ctx context.Context, leagueID string) ([]model.RawStatRecord, error) {
	rows, err := s.query(ctx, playerStatsQuery, leagueID)
	if err != nil {
		return nil, fmt.Errorf("player_stats: %w", err)
	}
	out := make([]model.RawStatRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, statRecord(r, false))
	}
	return out, nil
}

// TeamGameStats implements Store.
func (s *PostgresStore) TeamGameStats(ctx context.Context, leagueID string) ([]model.RawStatRecord, error) {
	rows, err := s.query(ctx, teamStatsQuery, leagueID)
	if err != nil {
		return nil, fmt.Errorf("team_stats: %w", err)
	}
	out := make([]model.RawStatRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, statRecord(r, true))
	}
	return out, nil
}

// Schedule implements Store.
func (s *PostgresStore) Schedule(ctx context.Context, leagueID string) ([]model.ScheduleEntry, error) {
	rows, err := s.query(ctx, scheduleQuery, leagueID)
	if err != nil {
		return nil, fmt.Errorf("game_schedule: %w", err)
	}
	out := make([]model.ScheduleEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, scheduleEntry(r))
	}
	return out, nil
}

// Roster implements Store.
func (s *PostgresStore) Roster(ctx context.Context, leagueID string) ([]model.RosterTeam, error) {
	rows, err := s.query(ctx, rosterQuery, leagueID)
	if err != nil {
		return nil, fmt.Errorf("teams: %w", err)
	}
	out := make([]model.RosterTeam, 0, len(rows))
	for _, r := range rows {
		out = append(out, rosterTeam(r))
	}
	return out, nil
}

func (s *PostgresStore) exists(ctx context.Context, leagueID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var ok bool
	if err := s.db.QueryRowContext(ctx, leagueQuery, leagueID).Scan(&ok); err != nil {
		return fmt.Errorf("leagues: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLeagueNotFound, leagueID)
	}
	return nil
}

// query runs stmt and returns every row as column->text. NULLs read as "".
func (s *PostgresStore) query(ctx context.Context, stmt string, args ...any) ([]row, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i] = strings.ToLower(cols[i])
	}

	var out []row
	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		r := make(row, len(cols))
		for i, c := range cols {
			if vals[i].Valid {
				r[c] = vals[i].String
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
