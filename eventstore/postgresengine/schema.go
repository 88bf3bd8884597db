package postgresengine

import (
	"fmt"
)

// CreateTableSQL returns the DDL for an events table plus the indexes the generated queries rely on.
func CreateTableSQL(tableName string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
    sequence_number BIGSERIAL PRIMARY KEY,
    event_type TEXT NOT NULL,
    occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
    payload JSONB NOT NULL,
    metadata JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);
CREATE INDEX IF NOT EXISTS %[1]s_payload_gin_idx ON %[1]s USING gin (payload jsonb_path_ops);
`, tableName)
}
