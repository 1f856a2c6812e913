// Package persistence provides SQLite-based simulation state storage,
// grounded on the teacher's internal/persistence/db.go: one queryable
// scalar column per entity's natural key, a JSON blob for the rest of
// the struct, full-replace Save methods, and a world_meta table for
// the scalar run bookkeeping (tick, seed) that doesn't deserve its own
// table.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// DB wraps a SQLite connection for simulation state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS countries (
		id INTEGER PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		gdp REAL NOT NULL,
		debt_cents INTEGER NOT NULL,
		legitimacy REAL NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS regions (
		id INTEGER PRIMARY KEY,
		country_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS factions (
		id INTEGER PRIMARY KEY,
		country_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		power REAL NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trade_relations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_country INTEGER NOT NULL,
		to_country INTEGER NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS deposits (
		id INTEGER PRIMARY KEY,
		region_id INTEGER NOT NULL,
		resource INTEGER NOT NULL,
		remaining_reserves REAL NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS extraction_facilities (
		id INTEGER PRIMARY KEY,
		region_id INTEGER NOT NULL,
		deposit_id INTEGER NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS manufacturing_facilities (
		id INTEGER PRIMARY KEY,
		region_id INTEGER NOT NULL,
		output_commodity INTEGER NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cohorts (
		id INTEGER PRIMARY KEY,
		region_id INTEGER NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS formations (
		id INTEGER PRIMARY KEY,
		country_id INTEGER NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS diagnostics (
		id TEXT PRIMARY KEY,
		tick INTEGER NOT NULL,
		severity INTEGER NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_regions_country ON regions(country_id);
	CREATE INDEX IF NOT EXISTS idx_factions_country ON factions(country_id);
	CREATE INDEX IF NOT EXISTS idx_diagnostics_tick ON diagnostics(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveState performs a full-replace save of every entity in state, plus
// the run's scalar metadata. Mirrors the teacher's SaveWorldState: one
// table wipe-and-reinsert per entity kind inside a single transaction
// per table, then the scalar meta row.
func (db *DB) SaveState(state *worldstate.State) error {
	slog.Info("saving simulation state",
		"tick", state.Tick, "countries", len(state.Countries), "regions", len(state.Regions))

	if err := db.saveCountries(state.Countries); err != nil {
		return fmt.Errorf("save countries: %w", err)
	}
	if err := db.saveRegions(state.Regions); err != nil {
		return fmt.Errorf("save regions: %w", err)
	}
	if err := db.saveFactions(state.Factions); err != nil {
		return fmt.Errorf("save factions: %w", err)
	}
	if err := db.saveTradeRelations(state.TradeRelations); err != nil {
		return fmt.Errorf("save trade relations: %w", err)
	}
	if err := db.saveDeposits(state.Deposits); err != nil {
		return fmt.Errorf("save deposits: %w", err)
	}
	if err := db.saveExtractionFacilities(state.ExtractionFacilities); err != nil {
		return fmt.Errorf("save extraction facilities: %w", err)
	}
	if err := db.saveManufacturingFacilities(state.ManufacturingFacilities); err != nil {
		return fmt.Errorf("save manufacturing facilities: %w", err)
	}
	if err := db.saveCohorts(state.Cohorts); err != nil {
		return fmt.Errorf("save cohorts: %w", err)
	}
	if err := db.saveFormations(state.Formations); err != nil {
		return fmt.Errorf("save formations: %w", err)
	}
	if err := db.saveDiagnostics(state.Diagnostics.Entries()); err != nil {
		return fmt.Errorf("save diagnostics: %w", err)
	}

	if err := db.SaveMeta("tick", strconv.FormatUint(state.Tick, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("seed", strconv.FormatInt(state.Seed, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("start_year", strconv.Itoa(state.StartYear)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("run_id", uuid.NewString()); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("simulation state saved")
	return nil
}

func (db *DB) saveCountries(countries []worldstate.Country) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM countries"); err != nil {
		return err
	}
	for _, c := range countries {
		blob, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal country %d: %w", c.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO countries (id, code, name, gdp, debt_cents, legitimacy, data_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Code, c.Name, c.GDP, c.DebtCents, c.Legitimacy, string(blob))
		if err != nil {
			return fmt.Errorf("insert country %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveRegions(regions []worldstate.Region) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM regions"); err != nil {
		return err
	}
	for _, r := range regions {
		blob, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal region %d: %w", r.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO regions (id, country_id, name, data_json) VALUES (?, ?, ?, ?)`,
			r.ID, r.CountryID, r.Name, string(blob))
		if err != nil {
			return fmt.Errorf("insert region %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveFactions(factions []worldstate.Faction) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM factions"); err != nil {
		return err
	}
	for _, f := range factions {
		blob, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal faction %d: %w", f.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO factions (id, country_id, name, power, data_json) VALUES (?, ?, ?, ?, ?)`,
			f.ID, f.CountryID, f.Name, f.Power, string(blob))
		if err != nil {
			return fmt.Errorf("insert faction %d: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveTradeRelations(relations []worldstate.TradeRelation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM trade_relations"); err != nil {
		return err
	}
	for _, r := range relations {
		blob, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal trade relation %d->%d: %w", r.From, r.To, err)
		}
		_, err = tx.Exec(`INSERT INTO trade_relations (from_country, to_country, data_json) VALUES (?, ?, ?)`,
			r.From, r.To, string(blob))
		if err != nil {
			return fmt.Errorf("insert trade relation %d->%d: %w", r.From, r.To, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveDeposits(deposits []worldstate.ResourceDeposit) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deposits"); err != nil {
		return err
	}
	for _, d := range deposits {
		blob, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshal deposit %d: %w", d.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO deposits (id, region_id, resource, remaining_reserves, data_json)
			VALUES (?, ?, ?, ?, ?)`,
			d.ID, d.RegionID, d.Resource, d.RemainingReserves, string(blob))
		if err != nil {
			return fmt.Errorf("insert deposit %d: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveExtractionFacilities(facilities []worldstate.ExtractionFacility) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM extraction_facilities"); err != nil {
		return err
	}
	for _, f := range facilities {
		blob, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal extraction facility %d: %w", f.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO extraction_facilities (id, region_id, deposit_id, data_json)
			VALUES (?, ?, ?, ?)`,
			f.ID, f.RegionID, f.DepositID, string(blob))
		if err != nil {
			return fmt.Errorf("insert extraction facility %d: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveManufacturingFacilities(facilities []worldstate.ManufacturingFacility) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM manufacturing_facilities"); err != nil {
		return err
	}
	for _, f := range facilities {
		blob, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal manufacturing facility %d: %w", f.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO manufacturing_facilities (id, region_id, output_commodity, data_json)
			VALUES (?, ?, ?, ?)`,
			f.ID, f.RegionID, f.OutputCommodity, string(blob))
		if err != nil {
			return fmt.Errorf("insert manufacturing facility %d: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveCohorts(cohorts []worldstate.PopulationCohort) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cohorts"); err != nil {
		return err
	}
	for _, c := range cohorts {
		blob, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal cohort %d: %w", c.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO cohorts (id, region_id, data_json) VALUES (?, ?, ?)`,
			c.ID, c.RegionID, string(blob))
		if err != nil {
			return fmt.Errorf("insert cohort %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveFormations(formations []worldstate.MilitaryFormation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM formations"); err != nil {
		return err
	}
	for _, f := range formations {
		blob, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal formation %d: %w", f.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO formations (id, country_id, data_json) VALUES (?, ?, ?)`,
			f.ID, f.CountryID, string(blob))
		if err != nil {
			return fmt.Errorf("insert formation %d: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

// saveDiagnostics appends (rather than replaces) the diagnostics log,
// since it is itself append-only for the run.
func (db *DB) saveDiagnostics(entries []diagnostics.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.Exec(`INSERT OR IGNORE INTO diagnostics (id, tick, severity, message) VALUES (?, ?, ?, ?)`,
			e.ID, e.Tick, e.Severity, e.Message)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// HasState reports whether a prior run has been saved to this database.
func (db *DB) HasState() bool {
	_, err := db.GetMeta("tick")
	return err == nil
}

// LoadState reconstructs a worldstate.State from the most recent
// full-replace save, the mirror image of SaveState: one query per
// entity table, each row's data_json unmarshaled back into its struct.
// Matrices aren't persisted (they're derived from scenario/MRIO input,
// not simulation state), so callers that need to resume a run must
// reload the originating scenario and graft LoadState's entities and
// meta onto it, or rebuild matrices some other way before scheduling
// further ticks.
func (db *DB) LoadState() (*worldstate.State, error) {
	tick, err := db.GetMeta("tick")
	if err != nil {
		return nil, fmt.Errorf("load meta tick: %w", err)
	}
	startYear, err := db.GetMeta("start_year")
	if err != nil {
		return nil, fmt.Errorf("load meta start_year: %w", err)
	}
	seedStr, err := db.GetMeta("seed")
	if err != nil {
		return nil, fmt.Errorf("load meta seed: %w", err)
	}

	tickVal, err := strconv.ParseUint(tick, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse tick meta: %w", err)
	}
	startYearVal, err := strconv.Atoi(startYear)
	if err != nil {
		return nil, fmt.Errorf("parse start_year meta: %w", err)
	}
	seedVal, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse seed meta: %w", err)
	}

	state := worldstate.New(seedVal, startYearVal)
	state.Tick = tickVal

	if err := loadBlobsInto(db, "SELECT data_json FROM countries ORDER BY id", &state.Countries); err != nil {
		return nil, fmt.Errorf("load countries: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM regions ORDER BY id", &state.Regions); err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM factions ORDER BY id", &state.Factions); err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM trade_relations ORDER BY rowid", &state.TradeRelations); err != nil {
		return nil, fmt.Errorf("load trade relations: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM deposits ORDER BY id", &state.Deposits); err != nil {
		return nil, fmt.Errorf("load deposits: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM extraction_facilities ORDER BY id", &state.ExtractionFacilities); err != nil {
		return nil, fmt.Errorf("load extraction facilities: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM manufacturing_facilities ORDER BY id", &state.ManufacturingFacilities); err != nil {
		return nil, fmt.Errorf("load manufacturing facilities: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM cohorts ORDER BY id", &state.Cohorts); err != nil {
		return nil, fmt.Errorf("load cohorts: %w", err)
	}
	if err := loadBlobsInto(db, "SELECT data_json FROM formations ORDER BY id", &state.Formations); err != nil {
		return nil, fmt.Errorf("load formations: %w", err)
	}

	return state, nil
}

// loadBlobsInto runs query (which must select a single data_json column)
// and unmarshals each row into a fresh element of *out, which must be
// a pointer to a slice. Generic over the element type via a two-pass
// scan: first into raw JSON strings, then json.Unmarshal each into the
// slice's element type.
func loadBlobsInto[T any](db *DB, query string, out *[]T) error {
	var blobs []string
	if err := db.conn.Select(&blobs, query); err != nil {
		return err
	}
	result := make([]T, len(blobs))
	for i, blob := range blobs {
		if err := json.Unmarshal([]byte(blob), &result[i]); err != nil {
			return fmt.Errorf("unmarshal row %d: %w", i, err)
		}
	}
	*out = result
	return nil
}

// RecentDiagnostics returns the most recently recorded diagnostics, tick descending.
func (db *DB) RecentDiagnostics(limit int) ([]diagnosticsRow, error) {
	var rows []diagnosticsRow
	err := db.conn.Select(&rows,
		"SELECT id, tick, severity, message FROM diagnostics ORDER BY tick DESC, rowid DESC LIMIT ?",
		limit,
	)
	return rows, err
}

type diagnosticsRow struct {
	ID       string `db:"id"`
	Tick     uint64 `db:"tick"`
	Severity int    `db:"severity"`
	Message  string `db:"message"`
}
