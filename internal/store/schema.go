package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at   TEXT NOT NULL,
    finished_at  TEXT NOT NULL,
    location     TEXT NOT NULL,
    total        INTEGER NOT NULL,
    booked       INTEGER NOT NULL,
    error        TEXT
);

CREATE TABLE IF NOT EXISTS run_results (
    run_id       INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    date         TEXT NOT NULL,
    outcome      TEXT NOT NULL,
    booked       INTEGER NOT NULL,
    PRIMARY KEY (run_id, date)
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
