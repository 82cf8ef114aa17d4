package models

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

func migrationDDL(t *testing.T) string {
	t.Helper()

	dir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading migrations dir: %v", err)
	}

	var sb strings.Builder
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("reading %s: %v", e.Name(), err)
		}
		sb.Write(raw)
		sb.WriteString("\n")
	}
	return sb.String()
}

func createTableBlock(t *testing.T, ddl, table string) string {
	t.Helper()

	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(ddl, marker)
	if start == -1 {
		t.Fatalf("migrations define no table %q", table)
	}
	end := strings.Index(ddl[start:], ");")
	if end == -1 {
		t.Fatalf("unterminated CREATE TABLE for %q", table)
	}
	return ddl[start : start+end]
}

// Production provisions through cmd/migrate, so every column GORM writes
// has to exist in the SQL schema, not just in AutoMigrate's output.
func TestMigrations_CoverAllModelColumns(t *testing.T) {
	ddl := migrationDDL(t)

	for _, model := range []interface{}{
		&User{},
		&Profile{},
		&Country{},
		&Post{},
		&Photo{},
		&Comment{},
		&Tag{},
		&Vote{},
		&PostLift{},
		&PostLiftLog{},
	} {
		s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parsing %T: %v", model, err)
		}

		block := createTableBlock(t, ddl, s.Table)
		for _, column := range s.DBNames {
			assert.Contains(t, block, column, "table %s is missing column %s", s.Table, column)
		}
	}
}

func TestMigrations_TrackedTimestampsPresent(t *testing.T) {
	ddl := migrationDDL(t)

	// GORM fills these on every INSERT/UPDATE; a schema without them
	// breaks registration, follow toggles and photo inserts.
	assert.Contains(t, createTableBlock(t, ddl, "profiles"), "updated_at")
	assert.Contains(t, createTableBlock(t, ddl, "photos"), "created_at")
}
