package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"brandpulse/internal/api"
	"brandpulse/internal/services"
)

// SQLiteStore persists the dashboard behind the same Store interface the
// in-memory store implements.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) InsertPersona(p *services.Persona) (*services.Persona, error) {
	if p == nil {
		return nil, services.NewInvalidError("persona required")
	}
	_, err := s.db.Exec(`INSERT INTO personas (
        id, workspace_id, name, tagline, avatar, demographics,
        goals, frustrations, motivations, behaviors, personality,
        values_json, interests, tags, research_methods,
        research_coverage, validation_score, status, created_at, last_updated
    ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.WorkspaceID, p.Name, p.Tagline, p.Avatar,
		mustJSON(p.Demographics), mustJSON(p.Goals), mustJSON(p.Frustrations),
		mustJSON(p.Motivations), mustJSON(p.Behaviors), p.Personality,
		mustJSON(p.Values), mustJSON(p.Interests), mustJSON(p.Tags),
		mustJSON(p.ResearchMethods), p.ResearchCoverage, p.ValidationScore,
		string(p.Status), formatTime(p.CreatedAt), formatTime(p.LastUpdated))
	if err != nil {
		return nil, fmt.Errorf("insert persona: %w", err)
	}
	return s.GetPersona(p.ID)
}

const personaColumns = `id, workspace_id, name, tagline, avatar, demographics,
    goals, frustrations, motivations, behaviors, personality,
    values_json, interests, tags, research_methods,
    research_coverage, validation_score, status, created_at, last_updated`

func (s *SQLiteStore) GetPersona(id string) (*services.Persona, error) {
	row := s.db.QueryRow(`SELECT `+personaColumns+` FROM personas WHERE id = ?`, id)
	p, err := scanPersona(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *SQLiteStore) UpdatePersona(p *services.Persona) error {
	if p == nil {
		return services.NewInvalidError("persona required")
	}
	res, err := s.db.Exec(`UPDATE personas SET
        workspace_id = ?, name = ?, tagline = ?, avatar = ?, demographics = ?,
        goals = ?, frustrations = ?, motivations = ?, behaviors = ?, personality = ?,
        values_json = ?, interests = ?, tags = ?, research_methods = ?,
        research_coverage = ?, validation_score = ?, status = ?, last_updated = ?
        WHERE id = ?`,
		p.WorkspaceID, p.Name, p.Tagline, p.Avatar, mustJSON(p.Demographics),
		mustJSON(p.Goals), mustJSON(p.Frustrations), mustJSON(p.Motivations),
		mustJSON(p.Behaviors), p.Personality, mustJSON(p.Values),
		mustJSON(p.Interests), mustJSON(p.Tags), mustJSON(p.ResearchMethods),
		p.ResearchCoverage, p.ValidationScore, string(p.Status),
		formatTime(p.LastUpdated), p.ID)
	if err != nil {
		return fmt.Errorf("update persona: %w", err)
	}
	return requireRow(res, "persona not found")
}

func (s *SQLiteStore) DeletePersona(id string) error {
	res, err := s.db.Exec(`DELETE FROM personas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}
	return requireRow(res, "persona not found")
}

func (s *SQLiteStore) ListPersonasByWorkspace(wid string) ([]*services.Persona, error) {
	rows, err := s.db.Query(`SELECT `+personaColumns+` FROM personas WHERE workspace_id = ? ORDER BY id`, wid)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()
	out := []*services.Persona{}
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertAsset(a *services.BrandAsset) (*services.BrandAsset, error) {
	if a == nil {
		return nil, services.NewInvalidError("asset required")
	}
	_, err := s.db.Exec(`INSERT INTO assets (
        id, workspace_id, type, title, content, category, description,
        priority, is_critical, research_methods, research_coverage,
        content_sections, status, validated_at, validated_by, created_at, last_updated
    ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.WorkspaceID, a.Type, a.Title, a.Content, a.Category,
		a.Description, string(a.Priority), boolToInt64(a.IsCritical),
		mustJSON(a.ResearchMethods), a.ResearchCoverage,
		mustJSON(a.ContentSections), string(a.Status),
		nullTime(a.ValidatedAt), a.ValidatedBy,
		formatTime(a.CreatedAt), formatTime(a.LastUpdated))
	if err != nil {
		return nil, fmt.Errorf("insert asset: %w", err)
	}
	return s.GetAsset(a.ID)
}

const assetColumns = `id, workspace_id, type, title, content, category, description,
    priority, is_critical, research_methods, research_coverage,
    content_sections, status, validated_at, validated_by, created_at, last_updated`

func (s *SQLiteStore) GetAsset(id string) (*services.BrandAsset, error) {
	row := s.db.QueryRow(`SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (s *SQLiteStore) UpdateAsset(a *services.BrandAsset) error {
	if a == nil {
		return services.NewInvalidError("asset required")
	}
	res, err := s.db.Exec(`UPDATE assets SET
        workspace_id = ?, type = ?, title = ?, content = ?, category = ?,
        description = ?, priority = ?, is_critical = ?, research_methods = ?,
        research_coverage = ?, content_sections = ?, status = ?,
        validated_at = ?, validated_by = ?, last_updated = ?
        WHERE id = ?`,
		a.WorkspaceID, a.Type, a.Title, a.Content, a.Category, a.Description,
		string(a.Priority), boolToInt64(a.IsCritical), mustJSON(a.ResearchMethods),
		a.ResearchCoverage, mustJSON(a.ContentSections), string(a.Status),
		nullTime(a.ValidatedAt), a.ValidatedBy, formatTime(a.LastUpdated), a.ID)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireRow(res, "asset not found")
}

func (s *SQLiteStore) DeleteAsset(id string) error {
	res, err := s.db.Exec(`DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return requireRow(res, "asset not found")
}

func (s *SQLiteStore) ListAssetsByWorkspace(wid string) ([]*services.BrandAsset, error) {
	rows, err := s.db.Query(`SELECT `+assetColumns+` FROM assets WHERE workspace_id = ? ORDER BY id`, wid)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	out := []*services.BrandAsset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddWorkspace(w *services.Workspace) error {
	if w == nil {
		return services.NewInvalidError("workspace required")
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO workspaces (id, name) VALUES (?, ?)`, w.ID, w.Name)
	if err != nil {
		return fmt.Errorf("add workspace: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	_, err := s.db.Exec(`INSERT INTO users (id, email, pass_hash, workspace_id, created_at) VALUES (?,?,?,?,?)`,
		u.ID, strings.ToLower(u.Email), u.PassHash, u.WorkspaceID, formatTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, workspace_id, created_at FROM users WHERE email = ?`, strings.ToLower(email))
	var u services.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.WorkspaceID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

func (s *SQLiteStore) AddAudit(e services.AuditEntry) {
	_, err := s.db.Exec(`INSERT INTO audit (time, actor, action, target, note) VALUES (?,?,?,?,?)`,
		formatTime(e.Time), e.Actor, e.Action, e.Target, e.Note)
	if err != nil {
		log.Printf("sqlite store: add audit: %v", err)
	}
}

func (s *SQLiteStore) ListAudit() []services.AuditEntry {
	rows, err := s.db.Query(`SELECT time, actor, action, target, note FROM audit ORDER BY time`)
	if err != nil {
		log.Printf("sqlite store: list audit: %v", err)
		return nil
	}
	defer rows.Close()
	out := []services.AuditEntry{}
	for rows.Next() {
		var e services.AuditEntry
		var ts string
		if err := rows.Scan(&ts, &e.Actor, &e.Action, &e.Target, &e.Note); err != nil {
			log.Printf("sqlite store: scan audit: %v", err)
			return out
		}
		e.Time = parseTime(ts)
		out = append(out, e)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPersona(row rowScanner) (*services.Persona, error) {
	var p services.Persona
	var demographics, goals, frustrations, motivations, behaviors sql.NullString
	var values, interests, tags, methods sql.NullString
	var tagline, avatar, personality sql.NullString
	var status, createdAt, lastUpdated string
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.Name, &tagline, &avatar, &demographics,
		&goals, &frustrations, &motivations, &behaviors, &personality,
		&values, &interests, &tags, &methods,
		&p.ResearchCoverage, &p.ValidationScore, &status, &createdAt, &lastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan persona: %w", err)
	}
	p.Tagline = tagline.String
	p.Avatar = avatar.String
	p.Personality = personality.String
	decodeJSON(demographics, &p.Demographics)
	decodeJSON(goals, &p.Goals)
	decodeJSON(frustrations, &p.Frustrations)
	decodeJSON(motivations, &p.Motivations)
	decodeJSON(behaviors, &p.Behaviors)
	decodeJSON(values, &p.Values)
	decodeJSON(interests, &p.Interests)
	decodeJSON(tags, &p.Tags)
	decodeJSON(methods, &p.ResearchMethods)
	p.ResearchMethods = services.MigrateMethods(p.ResearchMethods)
	p.Status = services.PersonaStatus(status)
	p.CreatedAt = parseTime(createdAt)
	p.LastUpdated = parseTime(lastUpdated)
	return &p, nil
}

func scanAsset(row rowScanner) (*services.BrandAsset, error) {
	var a services.BrandAsset
	var content, category, description, priority, validatedBy sql.NullString
	var methods, sections, validatedAt sql.NullString
	var isCritical int64
	var status, createdAt, lastUpdated string
	err := row.Scan(&a.ID, &a.WorkspaceID, &a.Type, &a.Title, &content, &category,
		&description, &priority, &isCritical, &methods, &a.ResearchCoverage,
		&sections, &status, &validatedAt, &validatedBy, &createdAt, &lastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	a.Content = content.String
	a.Category = category.String
	a.Description = description.String
	a.Priority = services.AssetPriority(priority.String)
	a.ValidatedBy = validatedBy.String
	a.IsCritical = isCritical != 0
	decodeJSON(methods, &a.ResearchMethods)
	a.ResearchMethods = services.MigrateMethods(a.ResearchMethods)
	decodeJSON(sections, &a.ContentSections)
	a.Status = services.AssetStatus(status)
	if validatedAt.Valid && validatedAt.String != "" {
		t := parseTime(validatedAt.String)
		a.ValidatedAt = &t
	}
	a.CreatedAt = parseTime(createdAt)
	a.LastUpdated = parseTime(lastUpdated)
	return &a, nil
}

func requireRow(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.NewNotFoundError(msg)
	}
	return nil
}

func mustJSON(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("sqlite store: encode json: %v", err)
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func decodeJSON(ns sql.NullString, out any) {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return
	}
	if err := json.Unmarshal([]byte(ns.String), out); err != nil {
		log.Printf("sqlite store: decode json: %v", err)
	}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
