package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
)

// TestMongoStore runs against a live server named by AUTEUR_TEST_MONGO_URI.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("AUTEUR_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("AUTEUR_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "auteur_test_" + board.NewID()[:8]
	s, err := DialMongo(ctx, uri, db)
	require.NoError(t, err)
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close()
	}()

	_, err = s.Load(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	p := sampleProject()
	require.NoError(t, s.Save(ctx, p))
	p.Name = "Renamed"
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Len(t, got.Boards, 2)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.Load(ctx, p.ID)
	assert.True(t, errors.IsNotFound(err))
}
