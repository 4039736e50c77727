package sqlite

// Schema DDL. Coordinates are stored as IEEE-754 bit patterns so that NaN
// samples and signed zeros survive a round trip; SQLite turns a NaN REAL
// into NULL.
const (
	createTables = `CREATE TABLE IF NOT EXISTS tables (
    table_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    backend TEXT NOT NULL,
    point_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPoints = `CREATE TABLE IF NOT EXISTS points (
    table_id TEXT NOT NULL,
    idx INTEGER NOT NULL,
    x_bits INTEGER NOT NULL,
    y_bits INTEGER NOT NULL,
    PRIMARY KEY (table_id, idx),
    FOREIGN KEY (table_id) REFERENCES tables(table_id) ON DELETE CASCADE
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTables,
	createPoints,
}

// Queries.
const (
	selectInfoByName = `SELECT table_id, name, backend, point_count, created_at, updated_at
FROM tables WHERE name = ?`

	selectInfoAll = `SELECT table_id, name, backend, point_count, created_at, updated_at
FROM tables ORDER BY name`

	upsertTable = `INSERT INTO tables (table_id, name, backend, point_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    backend = excluded.backend,
    point_count = excluded.point_count,
    updated_at = excluded.updated_at`

	deletePoints = `DELETE FROM points WHERE table_id = ?`

	insertPoint = `INSERT INTO points (table_id, idx, x_bits, y_bits) VALUES (?, ?, ?, ?)`

	selectPoints = `SELECT x_bits, y_bits FROM points WHERE table_id = ? ORDER BY idx`

	deleteTable = `DELETE FROM tables WHERE table_id = ?`
)
