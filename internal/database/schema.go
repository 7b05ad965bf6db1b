package database

// Schema is the DDL the store expects. Deployments apply it with their own
// migration tooling; tests and local setups can feed it to psql directly.
const Schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS patients (
    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    org_id        text NOT NULL,
    first_name    text NOT NULL,
    last_name     text NOT NULL,
    phone         text,
    date_of_birth date,
    created_at    timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS patients_org_name_idx
    ON patients (org_id, lower(first_name), lower(last_name));

CREATE TABLE IF NOT EXISTS trips (
    id               uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    patient_id       uuid NOT NULL REFERENCES patients (id),
    org_id           text NOT NULL,
    pickup_address   text NOT NULL,
    dropoff_address  text NOT NULL,
    scheduled_at     timestamp NOT NULL,
    trip_type        text NOT NULL,
    miles            numeric,
    ride_minutes     numeric,
    status           text NOT NULL,
    notes            text,
    external_trip_id text,
    created_at       timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS trips_org_scheduled_idx
    ON trips (org_id, scheduled_at);

CREATE TABLE IF NOT EXISTS import_sessions (
    id          bigserial PRIMARY KEY,
    session_id  uuid NOT NULL,
    template_id text NOT NULL,
    file_name   text NOT NULL,
    org_id      text NOT NULL,
    total_rows  integer NOT NULL,
    inserted    integer NOT NULL,
    skipped     integer NOT NULL,
    created_at  timestamptz NOT NULL DEFAULT now()
);
`
