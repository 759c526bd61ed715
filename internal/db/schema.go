package db

// Schema bootstrap. Nested lists (research methods, content sections,
// profile lists) live in JSON-encoded TEXT columns; timestamps are RFC3339
// TEXT.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS workspaces (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users (
    id           TEXT PRIMARY KEY,
    email        TEXT NOT NULL UNIQUE COLLATE NOCASE,
    pass_hash    BLOB NOT NULL,
    workspace_id TEXT NOT NULL,
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS personas (
    id                TEXT PRIMARY KEY,
    workspace_id      TEXT NOT NULL,
    name              TEXT NOT NULL,
    tagline           TEXT,
    avatar            TEXT,
    demographics      TEXT,
    goals             TEXT,
    frustrations      TEXT,
    motivations       TEXT,
    behaviors         TEXT,
    personality       TEXT,
    values_json       TEXT,
    interests         TEXT,
    tags              TEXT,
    research_methods  TEXT,
    research_coverage INTEGER NOT NULL DEFAULT 0,
    validation_score  INTEGER NOT NULL DEFAULT 0,
    status            TEXT NOT NULL,
    created_at        TEXT NOT NULL,
    last_updated      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_personas_workspace ON personas(workspace_id);

CREATE TABLE IF NOT EXISTS assets (
    id                TEXT PRIMARY KEY,
    workspace_id      TEXT NOT NULL,
    type              TEXT NOT NULL,
    title             TEXT NOT NULL,
    content           TEXT,
    category          TEXT,
    description       TEXT,
    priority          TEXT,
    is_critical       INTEGER NOT NULL DEFAULT 0,
    research_methods  TEXT,
    research_coverage INTEGER NOT NULL DEFAULT 0,
    content_sections  TEXT,
    status            TEXT NOT NULL,
    validated_at      TEXT,
    validated_by      TEXT,
    created_at        TEXT NOT NULL,
    last_updated      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assets_workspace ON assets(workspace_id);

CREATE TABLE IF NOT EXISTS audit (
    time   TEXT NOT NULL,
    actor  TEXT,
    action TEXT NOT NULL,
    target TEXT,
    note   TEXT
);
`
