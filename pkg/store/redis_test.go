package store

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/auteur/pkg/errors"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := DialRedis(ctx, &redis.Options{Addr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(ctx, "nope")
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.True(t, errors.IsNotFound(err))

	p := sampleProject()
	require.NoError(t, s.Save(ctx, p))
	assert.True(t, mr.Exists("auteur:project:"+p.ID))

	got, err := s.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	require.Len(t, got.Boards, 2)
	assert.Equal(t, "INT. DINER - NIGHT", got.Boards[1].ContentString())
	assert.Equal(t, p.Settings, got.Settings)

	other := sampleProject()
	require.NoError(t, s.Save(ctx, other))
	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{p.ID, other.ID}, ids)

	require.NoError(t, s.Delete(ctx, p.ID))
	assert.False(t, mr.Exists("auteur:project:"+p.ID))
	ids, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, ids)
}

func TestRedisStoreClampsOnLoad(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("auteur:project:p",
		`{"id":"p","name":"x","boards":[{"id":"b","type":"IDEABOARD","title":"t","x":0,"y":0,"w":7,"h":30}]}`))

	s, err := DialRedis(ctx, &redis.Options{Addr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()

	p, err := s.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Boards[0].W)
	assert.Equal(t, 10, p.Boards[0].H)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir(), Format: "yaml"})
	require.NoError(t, err)
	fs, ok := s.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, FormatYAML, fs.format)

	s, err = Open(ctx, Config{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Backend: "etcd"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir(), Format: "xml"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
