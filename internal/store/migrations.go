package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS workspaces (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	is_active    INTEGER NOT NULL DEFAULT 1,
	created_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id            TEXT PRIMARY KEY,
	workspace_id  TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	identifier    TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	created_by_id TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL,
	UNIQUE (workspace_id, name),
	UNIQUE (workspace_id, identifier)
);

CREATE TABLE IF NOT EXISTS project_members (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	member_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role       TEXT NOT NULL DEFAULT 'member',
	created_at DATETIME NOT NULL,
	UNIQUE (project_id, member_id)
);

CREATE TABLE IF NOT EXISTS states (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name         TEXT NOT NULL,
	color        TEXT NOT NULL DEFAULT '',
	group_name   TEXT NOT NULL DEFAULT 'backlog',
	created_at   DATETIME NOT NULL,
	UNIQUE (project_id, name)
);

CREATE TABLE IF NOT EXISTS issues (
	id               TEXT PRIMARY KEY,
	workspace_id     TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	state_id         TEXT REFERENCES states(id) ON DELETE SET NULL,
	sequence_id      INTEGER NOT NULL,
	name             TEXT NOT NULL,
	description_html TEXT NOT NULL DEFAULT '',
	priority         TEXT NOT NULL DEFAULT 'none',
	target_date      DATETIME,
	start_date       DATETIME,
	created_by_id    TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL,
	UNIQUE (workspace_id, sequence_id)
);

CREATE TABLE IF NOT EXISTS issue_assignees (
	id           TEXT PRIMARY KEY,
	issue_id     TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
	assignee_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	created_at   DATETIME NOT NULL,
	UNIQUE (issue_id, assignee_id)
);

CREATE TABLE IF NOT EXISTS cycles (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	owned_by_id  TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL,
	UNIQUE (project_id, name)
);

CREATE TABLE IF NOT EXISTS labels (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name         TEXT NOT NULL,
	color        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL,
	UNIQUE (project_id, name)
);

CREATE TABLE IF NOT EXISTS notifications (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
	user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title        TEXT NOT NULL,
	message      TEXT NOT NULL,
	entity_name  TEXT NOT NULL DEFAULT '',
	entity_id    TEXT NOT NULL DEFAULT '',
	read         INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_workspace ON projects(workspace_id);
CREATE INDEX IF NOT EXISTS idx_issues_workspace ON issues(workspace_id);
CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project_id);
CREATE INDEX IF NOT EXISTS idx_states_project ON states(project_id);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_assignees_assignee ON issue_assignees(assignee_id);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(workspace_id, user_id, read);
CREATE INDEX IF NOT EXISTS idx_issues_sequence ON issues(workspace_id, sequence_id);
`,
	},
}
