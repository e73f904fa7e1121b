package datastore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

var fileExtensions = []string{".yaml", ".yml", ".json"}

// leagueFile is the on-disk export of one league. Row maps use the upstream
// column names.
type leagueFile struct {
	LeagueID    string           `yaml:"league_id"`
	Teams       []map[string]any `yaml:"teams"`
	Schedule    []map[string]any `yaml:"schedule"`
	PlayerStats []map[string]any `yaml:"player_stats"`
	TeamStats   []map[string]any `yaml:"team_stats"`
}

// FileStore reads league exports from a directory, one file per league
// named <leagueID>.yaml, .yml or .json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *FileStore) Dir() string { return s.dir }

// Dataset implements DatasetLoader with a single file read.
func (s *FileStore) Dataset(ctx context.Context, leagueID string) (model.Dataset, error) {
	f, err := s.load(ctx, leagueID)
	if err != nil {
		return model.Dataset{}, err
	}
	return model.Dataset{
		LeagueID:      leagueID,
		PlayerRecords: statRecords(f.PlayerStats, false),
		TeamRecords:   statRecords(f.TeamStats, true),
		Schedule:      schedule(f.Schedule),
		Roster:        roster(f.Teams),
	}, nil
}

// PlayerGameStats implements Store.
func (s *FileStore) PlayerGameStats(ctx context.Context, leagueID string) ([]model.RawStatRecord, error) {
	f, err := s.load(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return statRecords(f.PlayerStats, false), nil
}

// TeamGameStats implements Store.
func (s *FileStore) TeamGameStats(ctx context.Context, leagueID string) ([]model.RawStatRecord, error) {
	f, err := s.load(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return statRecords(f.TeamStats, true), nil
}

// Schedule implements Store.
func (s *FileStore) Schedule(ctx context.Context, leagueID string) ([]model.ScheduleEntry, error) {
	f, err := s.load(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return schedule(f.Schedule), nil
}

// Roster implements Store.
func (s *FileStore) Roster(ctx context.Context, leagueID string) ([]model.RosterTeam, error) {
	f, err := s.load(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return roster(f.Teams), nil
}

// Leagues lists the league ids present in the directory.
func (s *FileStore) Leagues() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		id := strings.TrimSuffix(e.Name(), ext)
		if !slices.Contains(fileExtensions, ext) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func (s *FileStore) load(ctx context.Context, leagueID string) (*leagueFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if leagueID == "" || leagueID != filepath.Base(leagueID) || strings.HasPrefix(leagueID, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLeague, leagueID)
	}
	for _, ext := range fileExtensions {
		path := filepath.Join(s.dir, leagueID+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var f leagueFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return &f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrLeagueNotFound, leagueID)
}

func toRow(m map[string]any) row {
	r := make(row, len(m))
	for k, v := range m {
		r[strings.ToLower(strings.TrimSpace(k))] = stringify(v)
	}
	return r
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

func statRecords(in []map[string]any, team bool) []model.RawStatRecord {
	out := make([]model.RawStatRecord, 0, len(in))
	for _, m := range in {
		out = append(out, statRecord(toRow(m), team))
	}
	return out
}

func schedule(in []map[string]any) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, 0, len(in))
	for _, m := range in {
		out = append(out, scheduleEntry(toRow(m)))
	}
	return out
}

func roster(in []map[string]any) []model.RosterTeam {
	out := make([]model.RosterTeam, 0, len(in))
	for _, m := range in {
		out = append(out, rosterTeam(toRow(m)))
	}
	return out
}
