// Package store caches decoded weather reports, station details and user
// settings in a local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/flightbrief/flightbrief/wx"
)

// ErrNotFound is returned when a station has no cached entry.
var ErrNotFound = errors.New("not found")

// Station holds airfield details alongside the cache.
type Station struct {
	ICAO         string    `json:"icao"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Elevation    int       `json:"elevation"`
	Favorite     bool      `json:"favorite"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Settings are the persisted user preferences.
type Settings struct {
	DefaultStations []string `json:"default_stations"`
	WindUnit        string   `json:"wind_unit"`
	TemperatureUnit string   `json:"temperature_unit"`
	PressureUnit    string   `json:"pressure_unit"`
}

// DefaultSettings are used when nothing has been saved yet.
func DefaultSettings() Settings {
	return Settings{
		WindUnit:        "kt",
		TemperatureUnit: "C",
		PressureUnit:    "inHg",
	}
}

// Store wraps a SQLite database holding decoded METAR/TAF records keyed by
// station. Freshness is judged against the injected clock.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
	ttl   time.Duration
}

// Open opens or creates the database at path. Reports older than ttl are
// considered stale. Use ":memory:" for an ephemeral store.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers unblocked while the CLI writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, clock: clockwork.NewRealClock(), ttl: ttl}, nil
}

// SetClock swaps the freshness clock, for tests.
func (s *Store) SetClock(clock clockwork.Clock) {
	s.clock = clock
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS metar_cache (
		station TEXT PRIMARY KEY,
		observation_time TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		decoded_data TEXT NOT NULL,
		flight_category TEXT,
		cached_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS taf_cache (
		station TEXT PRIMARY KEY,
		issue_time TEXT NOT NULL,
		valid_from TEXT NOT NULL,
		valid_to TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		decoded_data TEXT NOT NULL,
		cached_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS stations (
		icao TEXT PRIMARY KEY,
		name TEXT,
		latitude REAL,
		longitude REAL,
		elevation INTEGER,
		is_favorite INTEGER DEFAULT 0,
		last_accessed TEXT
	);
	CREATE TABLE IF NOT EXISTS user_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// SaveMETAR caches a decoded METAR, replacing any previous one for the
// station.
func (s *Store) SaveMETAR(rec *wx.METAR) error {
	decoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode METAR: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO metar_cache
		(station, observation_time, raw_text, decoded_data, flight_category, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(rec.Station),
		rec.ObservationTime.UTC().Format(time.RFC3339),
		rec.Raw,
		string(decoded),
		string(rec.FlightCategory),
		s.clock.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save METAR: %w", err)
	}
	return nil
}

// METAR returns the cached METAR for a station regardless of age, along with
// when it was cached.
func (s *Store) METAR(station string) (*wx.METAR, time.Time, error) {
	var decoded, cachedAt string
	err := s.db.QueryRow(
		"SELECT decoded_data, cached_at FROM metar_cache WHERE station = ?",
		strings.ToUpper(station),
	).Scan(&decoded, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load METAR: %w", err)
	}

	var rec wx.METAR
	if err := json.Unmarshal([]byte(decoded), &rec); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode cached METAR: %w", err)
	}
	at, err := time.Parse(time.RFC3339, cachedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse cache time: %w", err)
	}
	return &rec, at, nil
}

// FreshMETAR returns the cached METAR only when it is younger than the TTL.
func (s *Store) FreshMETAR(station string) (*wx.METAR, error) {
	rec, cachedAt, err := s.METAR(station)
	if err != nil {
		return nil, err
	}
	if s.clock.Now().UTC().Sub(cachedAt) >= s.ttl {
		return nil, ErrNotFound
	}
	return rec, nil
}

// SaveTAF caches a decoded TAF, replacing any previous one for the station.
func (s *Store) SaveTAF(rec *wx.TAF) error {
	decoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode TAF: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO taf_cache
		(station, issue_time, valid_from, valid_to, raw_text, decoded_data, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(rec.Station),
		rec.IssueTime.UTC().Format(time.RFC3339),
		rec.ValidFrom.UTC().Format(time.RFC3339),
		rec.ValidTo.UTC().Format(time.RFC3339),
		rec.Raw,
		string(decoded),
		s.clock.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save TAF: %w", err)
	}
	return nil
}

// TAF returns the cached TAF for a station regardless of age, along with
// when it was cached.
func (s *Store) TAF(station string) (*wx.TAF, time.Time, error) {
	var decoded, cachedAt string
	err := s.db.QueryRow(
		"SELECT decoded_data, cached_at FROM taf_cache WHERE station = ?",
		strings.ToUpper(station),
	).Scan(&decoded, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load TAF: %w", err)
	}

	var rec wx.TAF
	if err := json.Unmarshal([]byte(decoded), &rec); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode cached TAF: %w", err)
	}
	at, err := time.Parse(time.RFC3339, cachedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse cache time: %w", err)
	}
	return &rec, at, nil
}

// FreshTAF returns the cached TAF only when it is younger than the TTL.
func (s *Store) FreshTAF(station string) (*wx.TAF, error) {
	rec, cachedAt, err := s.TAF(station)
	if err != nil {
		return nil, err
	}
	if s.clock.Now().UTC().Sub(cachedAt) >= s.ttl {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Prune drops cache entries older than maxAge.
func (s *Store) Prune(maxAge time.Duration) error {
	cutoff := s.clock.Now().UTC().Add(-maxAge).Format(time.RFC3339)
	for _, table := range []string{"metar_cache", "taf_cache"} {
		if _, err := s.db.Exec(
			"DELETE FROM "+table+" WHERE cached_at < ?", cutoff,
		); err != nil {
			return fmt.Errorf("prune %s: %w", table, err)
		}
	}
	return nil
}

// SaveStation saves or updates airfield details.
func (s *Store) SaveStation(station Station) error {
	favorite := 0
	if station.Favorite {
		favorite = 1
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO stations
		(icao, name, latitude, longitude, elevation, is_favorite, last_accessed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(station.ICAO),
		station.Name,
		station.Latitude,
		station.Longitude,
		station.Elevation,
		favorite,
		station.LastAccessed.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save station: %w", err)
	}
	return nil
}

// Station loads airfield details for an ICAO code.
func (s *Store) Station(icao string) (Station, error) {
	var (
		station      Station
		favorite     int
		lastAccessed string
	)
	err := s.db.QueryRow(
		"SELECT icao, name, latitude, longitude, elevation, is_favorite, last_accessed FROM stations WHERE icao = ?",
		strings.ToUpper(icao),
	).Scan(&station.ICAO, &station.Name, &station.Latitude, &station.Longitude,
		&station.Elevation, &favorite, &lastAccessed)
	if errors.Is(err, sql.ErrNoRows) {
		return Station{}, ErrNotFound
	}
	if err != nil {
		return Station{}, fmt.Errorf("load station: %w", err)
	}
	station.Favorite = favorite != 0
	if at, err := time.Parse(time.RFC3339, lastAccessed); err == nil {
		station.LastAccessed = at
	}
	return station, nil
}

// FavoriteStations lists favorites, most recently accessed first.
func (s *Store) FavoriteStations() ([]Station, error) {
	rows, err := s.db.Query(
		"SELECT icao, name, latitude, longitude, elevation, is_favorite, last_accessed FROM stations WHERE is_favorite = 1 ORDER BY last_accessed DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var (
			station      Station
			favorite     int
			lastAccessed string
		)
		if err := rows.Scan(&station.ICAO, &station.Name, &station.Latitude,
			&station.Longitude, &station.Elevation, &favorite, &lastAccessed); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		station.Favorite = favorite != 0
		if at, err := time.Parse(time.RFC3339, lastAccessed); err == nil {
			station.LastAccessed = at
		}
		stations = append(stations, station)
	}
	return stations, rows.Err()
}

// SaveSettings persists user preferences.
func (s *Store) SaveSettings(settings Settings) error {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO user_settings (key, value) VALUES ('app_settings', ?)",
		string(encoded),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Settings loads user preferences, falling back to defaults when nothing is
// saved.
func (s *Store) Settings() (Settings, error) {
	var encoded string
	err := s.db.QueryRow(
		"SELECT value FROM user_settings WHERE key = 'app_settings'",
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal([]byte(encoded), &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
