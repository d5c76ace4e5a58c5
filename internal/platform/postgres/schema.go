// Package postgres holds the relational schema shared by the server and
// the integration test harness.
package postgres

import (
	"context"
	"database/sql"
)

// schemaDDL is applied idempotently at startup. Deployments with managed
// migrations can run the same statements out of band.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS certifications (
	id                 TEXT PRIMARY KEY,
	teacher_id         UUID NOT NULL,
	cert_type          TEXT NOT NULL,
	issue_height       BIGINT NOT NULL,
	expiration_height  BIGINT NOT NULL,
	status             TEXT NOT NULL,
	evidence           TEXT[] NOT NULL DEFAULT '{}',
	metadata           TEXT NOT NULL DEFAULT '',
	renewal_count      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS counters (
	name   TEXT PRIMARY KEY,
	value  BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS revocation_log (
	certification_id   TEXT PRIMARY KEY,
	reason             TEXT NOT NULL,
	revoked_at_height  BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS requirements (
	cert_type            TEXT PRIMARY KEY,
	required_hours       INTEGER NOT NULL,
	required_activities  TEXT[] NOT NULL DEFAULT '{}',
	validity_days        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS role_members (
	role      TEXT NOT NULL,
	actor_id  UUID NOT NULL,
	PRIMARY KEY (role, actor_id)
);

CREATE TABLE IF NOT EXISTS pause_flag (
	id      BOOLEAN PRIMARY KEY DEFAULT TRUE,
	paused  BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS audit_events (
	id                UUID PRIMARY KEY,
	occurred_at       TIMESTAMPTZ NOT NULL,
	height            BIGINT NOT NULL,
	action            TEXT NOT NULL,
	actor_id          TEXT NOT NULL DEFAULT '',
	target_id         TEXT NOT NULL DEFAULT '',
	certification_id  TEXT NOT NULL DEFAULT '',
	teacher_id        TEXT NOT NULL DEFAULT '',
	cert_type         TEXT NOT NULL DEFAULT '',
	role              TEXT NOT NULL DEFAULT '',
	reason            TEXT NOT NULL DEFAULT '',
	request_id        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_audit_events_certification
	ON audit_events (certification_id, occurred_at);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
