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

CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT NOT NULL UNIQUE,
	login         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS todolists (
	id         TEXT PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0,
	added_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todolists_user_order ON todolists(user_id, sort_order);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	todolist_id TEXT NOT NULL REFERENCES todolists(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      INTEGER NOT NULL DEFAULT 0 CHECK(status BETWEEN 0 AND 3),
	priority    INTEGER NOT NULL DEFAULT 0 CHECK(priority BETWEEN 0 AND 4),
	start_date  TEXT NOT NULL DEFAULT '',
	deadline    TEXT NOT NULL DEFAULT '',
	sort_order  INTEGER NOT NULL DEFAULT 0,
	added_date  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_todolist_order ON tasks(todolist_id, sort_order);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS login_attempts (
	email    TEXT PRIMARY KEY,
	failures INTEGER NOT NULL DEFAULT 0
);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
