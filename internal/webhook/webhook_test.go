package webhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
)

type fakeTarget struct {
	upserted [][]byte
	deleted  [][]byte
	err      error
}

func (f *fakeTarget) ApplyUpsert(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, payload)
	return nil
}

func (f *fakeTarget) ApplyDelete(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, payload)
	return nil
}

func TestHandle_WrongSecretRejected(t *testing.T) {
	ing := New("good-secret", nil)
	target := &fakeTarget{}
	ing.Register("games", target)

	err := ing.Handle(context.Background(), "games", "create", "bad-secret", []byte(`{}`))
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, apperr.As(err, &appErr))
	assert.Equal(t, apperr.CodeBadInput, appErr.Code)
}

func TestHandle_UnknownEntity(t *testing.T) {
	ing := New("secret", nil)
	err := ing.Handle(context.Background(), "unknown", "create", "secret", []byte(`{}`))
	require.Error(t, err)
}

func TestHandle_CreateDispatchesUpsert(t *testing.T) {
	ing := New("secret", nil)
	target := &fakeTarget{}
	ing.Register("games", target)

	require.NoError(t, ing.Handle(context.Background(), "games", "create", "secret", []byte(`{"id":1}`)))
	require.Len(t, target.upserted, 1)
}

func TestHandle_UpdateDispatchesUpsert(t *testing.T) {
	ing := New("secret", nil)
	target := &fakeTarget{}
	ing.Register("games", target)

	require.NoError(t, ing.Handle(context.Background(), "games", "update", "secret", []byte(`{"id":1}`)))
	require.Len(t, target.upserted, 1)
}

func TestHandle_DeleteDispatchesDelete(t *testing.T) {
	ing := New("secret", nil)
	target := &fakeTarget{}
	ing.Register("games", target)

	require.NoError(t, ing.Handle(context.Background(), "games", "delete", "secret", []byte(`{"id":1}`)))
	require.Len(t, target.deleted, 1)
}

func TestHandle_UnknownMethod(t *testing.T) {
	ing := New("secret", nil)
	ing.Register("games", &fakeTarget{})

	err := ing.Handle(context.Background(), "games", "bogus", "secret", []byte(`{}`))
	require.Error(t, err)
}
