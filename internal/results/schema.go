package results

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    manifest_path TEXT NOT NULL,
    started_at    TEXT NOT NULL,
    finished_at   TEXT,
    report_path   TEXT NOT NULL DEFAULT '',
    total         INTEGER NOT NULL DEFAULT 0,
    succeeded     INTEGER NOT NULL DEFAULT 0,
    failed        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
    id                     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id                 TEXT NOT NULL REFERENCES runs(id),
    rec_id                 TEXT NOT NULL,
    status                 TEXT NOT NULL,
    der                    REAL NOT NULL DEFAULT 0,
    false_alarm            REAL NOT NULL DEFAULT 0,
    missed_detection       REAL NOT NULL DEFAULT 0,
    confusion              REAL NOT NULL DEFAULT 0,
    detailed               INTEGER NOT NULL DEFAULT 0,
    audio_duration         REAL NOT NULL DEFAULT 0,
    ref_speech_duration    REAL NOT NULL DEFAULT 0,
    hyp_speech_duration    REAL NOT NULL DEFAULT 0,
    missing_speech_seconds REAL NOT NULL DEFAULT 0,
    missing_speech_pct     REAL NOT NULL DEFAULT 0,
    speakers_detected      INTEGER NOT NULL DEFAULT 0,
    speakers_expected      INTEGER NOT NULL DEFAULT 0,
    category               TEXT NOT NULL DEFAULT '',
    error_message          TEXT NOT NULL DEFAULT '',
    created_at             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`
