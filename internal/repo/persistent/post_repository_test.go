package persistent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm handle that builds SQL without touching a server,
// recording every generated query so tests can assert on its shape.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("opening dry-run db: %v", err)
	}

	captured := &[]string{}
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	})
	if err != nil {
		t.Fatalf("registering capture callback: %v", err)
	}
	return db, captured
}

func TestListFeed_BuildsDistinctUnionQuery(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewPostRepository(db)

	_, err := repo.ListFeed(context.Background(), []uint{4, 9}, []uint{20})
	assert.NoError(t, err)

	if len(*captured) == 0 {
		t.Fatal("no query was generated")
	}
	sql := (*captured)[0]

	// A post matching both the interest-country and the followed-author
	// predicate must come back as one row.
	assert.Contains(t, sql, "DISTINCT")
	assert.Contains(t, sql, "post_countries.country_id IN")
	assert.Contains(t, sql, "OR posts.author_id IN")
	assert.Contains(t, sql, "ORDER BY posts.last_lifted_at DESC")
}

func TestListFeed_CountryPredicateOnly(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewPostRepository(db)

	_, err := repo.ListFeed(context.Background(), []uint{4}, nil)
	assert.NoError(t, err)

	if len(*captured) == 0 {
		t.Fatal("no query was generated")
	}
	sql := (*captured)[0]
	assert.Contains(t, sql, "post_countries.country_id IN")
	assert.NotContains(t, sql, "author_id IN")
}

func TestListFeed_NoPredicatesSkipsQuery(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewPostRepository(db)

	posts, err := repo.ListFeed(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, *captured)
}
