// Package store persists templates, applications, equipment, and mapping
// decisions in a local SQLite database. The engines themselves never touch
// persistence; callers record results here after the fact.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bacmap/internal/types"
)

// Store manages the bacmap catalog database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the catalog store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// initSchema creates the database schema.
func (s *Store) initSchema() error {
	schema := `
	-- Equipment templates; point slots stored as JSON
	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		equipment_type TEXT NOT NULL,
		category TEXT,
		vendor TEXT,
		model TEXT,
		template_type TEXT NOT NULL,
		is_built_in INTEGER NOT NULL DEFAULT 0,
		is_default INTEGER NOT NULL DEFAULT 0,
		usage_count INTEGER NOT NULL DEFAULT 0,
		success_rate REAL NOT NULL DEFAULT 0,
		effectiveness REAL NOT NULL DEFAULT 0,
		points_json TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_templates_equipment_type ON templates(equipment_type);

	-- Template applications, immutable once recorded
	CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		target_equipment_id TEXT NOT NULL,
		applied_points_json TEXT NOT NULL,
		options_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		is_successful INTEGER NOT NULL,
		applied_at DATETIME NOT NULL,
		applied_by TEXT NOT NULL,
		FOREIGN KEY (template_id) REFERENCES templates(id)
	);
	CREATE INDEX IF NOT EXISTS idx_applications_template ON applications(template_id);

	-- Equipment on either side of the mapping (bacnet or cxalloy)
	CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		side TEXT NOT NULL CHECK (side IN ('bacnet', 'cxalloy')),
		name TEXT NOT NULL,
		equipment_type TEXT,
		location TEXT,
		description TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_equipment_side ON equipment(side);

	-- Recorded auto-mapping decisions, immutable once recorded
	CREATE TABLE IF NOT EXISTS mappings (
		id TEXT PRIMARY KEY,
		bacnet_equipment_id TEXT NOT NULL,
		cxalloy_equipment_id TEXT NOT NULL,
		confidence REAL NOT NULL,
		match_type TEXT NOT NULL,
		reasons_json TEXT,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mappings_bacnet ON mappings(bacnet_equipment_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TEMPLATE OPERATIONS
// =============================================================================

// SaveTemplate inserts or updates a template. CreatedAt is set on first
// save; UpdatedAt always advances.
func (s *Store) SaveTemplate(t *types.EquipmentTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointsJSON, err := json.Marshal(t.Points)
	if err != nil {
		return fmt.Errorf("failed to encode template points: %w", err)
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO templates (id, name, description, equipment_type, category, vendor,
			model, template_type, is_built_in, is_default, usage_count, success_rate,
			effectiveness, points_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			equipment_type = excluded.equipment_type,
			category = excluded.category,
			vendor = excluded.vendor,
			model = excluded.model,
			template_type = excluded.template_type,
			is_built_in = excluded.is_built_in,
			is_default = excluded.is_default,
			usage_count = excluded.usage_count,
			success_rate = excluded.success_rate,
			effectiveness = excluded.effectiveness,
			points_json = excluded.points_json,
			updated_at = excluded.updated_at
	`, t.ID, t.Name, t.Description, t.EquipmentType, t.Category, t.Vendor,
		t.Model, string(t.TemplateType), t.IsBuiltIn, t.IsDefault, t.UsageCount,
		t.SuccessRate, t.Effectiveness, pointsJSON, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

// GetTemplate retrieves one template by ID, or nil when absent.
func (s *Store) GetTemplate(id string) (*types.EquipmentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, description, equipment_type, category, vendor, model,
			template_type, is_built_in, is_default, usage_count, success_rate,
			effectiveness, points_json, created_at, updated_at
		FROM templates WHERE id = ?
	`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return t, nil
}

// ListTemplates returns all templates ordered by name.
func (s *Store) ListTemplates() ([]types.EquipmentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, description, equipment_type, category, vendor, model,
			template_type, is_built_in, is_default, usage_count, success_rate,
			effectiveness, points_json, created_at, updated_at
		FROM templates ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var out []types.EquipmentTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// DeleteTemplate removes a template and its recorded applications.
func (s *Store) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM applications WHERE template_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete applications: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return tx.Commit()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*types.EquipmentTemplate, error) {
	var t types.EquipmentTemplate
	var description, category, vendor, model sql.NullString
	var templateType, pointsJSON string
	err := row.Scan(&t.ID, &t.Name, &description, &t.EquipmentType, &category,
		&vendor, &model, &templateType, &t.IsBuiltIn, &t.IsDefault, &t.UsageCount,
		&t.SuccessRate, &t.Effectiveness, &pointsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Category = category.String
	t.Vendor = vendor.String
	t.Model = model.String
	t.TemplateType = types.TemplateType(templateType)
	if err := json.Unmarshal([]byte(pointsJSON), &t.Points); err != nil {
		return nil, fmt.Errorf("failed to decode template points: %w", err)
	}
	return &t, nil
}

// =============================================================================
// APPLICATION OPERATIONS
// =============================================================================

// RecordApplication persists one application and bumps the template's usage
// counters in the same transaction.
func (s *Store) RecordApplication(a *types.TemplateApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointsJSON, err := json.Marshal(a.AppliedPoints)
	if err != nil {
		return fmt.Errorf("failed to encode applied points: %w", err)
	}
	optionsJSON, err := json.Marshal(a.MatchingOptions)
	if err != nil {
		return fmt.Errorf("failed to encode matching options: %w", err)
	}
	resultsJSON, err := json.Marshal(a.MatchingResults)
	if err != nil {
		return fmt.Errorf("failed to encode matching results: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO applications (id, template_id, target_equipment_id,
			applied_points_json, options_json, results_json, is_successful,
			applied_at, applied_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.TemplateID, a.TargetEquipmentID, pointsJSON, optionsJSON,
		resultsJSON, a.IsSuccessful, a.AppliedAt, a.AppliedBy)
	if err != nil {
		return fmt.Errorf("failed to record application: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE templates SET
			usage_count = usage_count + 1,
			success_rate = (SELECT AVG(is_successful) FROM applications WHERE template_id = ?),
			updated_at = ?
		WHERE id = ?
	`, a.TemplateID, time.Now(), a.TemplateID)
	if err != nil {
		return fmt.Errorf("failed to update template usage: %w", err)
	}
	return tx.Commit()
}

// ListApplications returns applications, optionally filtered by template,
// newest first.
func (s *Store) ListApplications(templateID string) ([]types.TemplateApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, template_id, target_equipment_id, applied_points_json,
			options_json, results_json, is_successful, applied_at, applied_by
		FROM applications`
	args := []any{}
	if templateID != "" {
		query += ` WHERE template_id = ?`
		args = append(args, templateID)
	}
	query += ` ORDER BY applied_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var out []types.TemplateApplication
	for rows.Next() {
		var a types.TemplateApplication
		var pointsJSON, optionsJSON, resultsJSON string
		if err := rows.Scan(&a.ID, &a.TemplateID, &a.TargetEquipmentID,
			&pointsJSON, &optionsJSON, &resultsJSON, &a.IsSuccessful,
			&a.AppliedAt, &a.AppliedBy); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if err := json.Unmarshal([]byte(pointsJSON), &a.AppliedPoints); err != nil {
			return nil, fmt.Errorf("failed to decode applied points: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &a.MatchingOptions); err != nil {
			return nil, fmt.Errorf("failed to decode application options: %w", err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &a.MatchingResults); err != nil {
			return nil, fmt.Errorf("failed to decode application results: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// EQUIPMENT OPERATIONS
// =============================================================================

// EquipmentSide distinguishes the two catalogs an equipment can belong to.
type EquipmentSide string

const (
	SideBacnet  EquipmentSide = "bacnet"
	SideCxAlloy EquipmentSide = "cxalloy"
)

// SaveEquipment inserts or updates an equipment record on the given side.
func (s *Store) SaveEquipment(side EquipmentSide, e *types.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO equipment (id, side, name, equipment_type, location, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			side = excluded.side,
			name = excluded.name,
			equipment_type = excluded.equipment_type,
			location = excluded.location,
			description = excluded.description
	`, e.ID, string(side), e.Name, e.EquipmentType, e.Location, e.Description)
	if err != nil {
		return fmt.Errorf("failed to save equipment: %w", err)
	}
	return nil
}

// ListEquipment returns all equipment on one side ordered by name.
func (s *Store) ListEquipment(side EquipmentSide) ([]types.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, equipment_type, location, description
		FROM equipment WHERE side = ? ORDER BY name
	`, string(side))
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	var out []types.Equipment
	for rows.Next() {
		var e types.Equipment
		var eqType, location, description sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &eqType, &location, &description); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		e.EquipmentType = eqType.String
		e.Location = location.String
		e.Description = description.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEquipment removes an equipment record.
func (s *Store) DeleteEquipment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM equipment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return nil
}

// =============================================================================
// MAPPING OPERATIONS
// =============================================================================

// RecordMappings persists the accepted matches of one auto-mapping pass in
// a single transaction; either all rows land or none do.
func (s *Store) RecordMappings(matches []types.AutoMappingMatch) error {
	if len(matches) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO mappings (id, bacnet_equipment_id, cxalloy_equipment_id,
			confidence, match_type, reasons_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare mapping insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, m := range matches {
		reasonsJSON, err := json.Marshal(m.Reasons)
		if err != nil {
			return fmt.Errorf("failed to encode mapping reasons: %w", err)
		}
		if _, err := stmt.Exec(uuid.NewString(), m.BacnetEquipmentID,
			m.CxAlloyEquipmentID, m.Confidence, string(m.MatchType),
			reasonsJSON, now); err != nil {
			return fmt.Errorf("failed to record mapping: %w", err)
		}
	}
	return tx.Commit()
}

// ListMappings returns all recorded mappings ordered by confidence
// descending.
func (s *Store) ListMappings() ([]types.AutoMappingMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT bacnet_equipment_id, cxalloy_equipment_id, confidence, match_type, reasons_json
		FROM mappings ORDER BY confidence DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	defer rows.Close()

	var out []types.AutoMappingMatch
	for rows.Next() {
		var m types.AutoMappingMatch
		var matchType string
		var reasonsJSON sql.NullString
		if err := rows.Scan(&m.BacnetEquipmentID, &m.CxAlloyEquipmentID,
			&m.Confidence, &matchType, &reasonsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		m.MatchType = types.MatchType(matchType)
		if reasonsJSON.Valid {
			if err := json.Unmarshal([]byte(reasonsJSON.String), &m.Reasons); err != nil {
				return nil, fmt.Errorf("failed to decode mapping reasons: %w", err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
