package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow-app/eventflow-api/pkg/blob"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

type blobStub struct {
	data    []byte
	loadErr error
	saved   [][]byte
	saveErr error
}

func (b *blobStub) Load(context.Context) ([]byte, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.data, nil
}

func (b *blobStub) Save(_ context.Context, data []byte) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	b.saved = append(b.saved, data)
	return nil
}

func TestRestoreLoadsSnapshot(t *testing.T) {
	raw, err := EncodeEvents([]models.Event{
		makeEvent("1", "Standup", "Work"),
		makeEvent("2", "Dentist", "Personal"),
	})
	require.NoError(t, err)

	st := New(nil)
	Restore(context.Background(), st, &blobStub{data: raw}, nil)
	assert.Equal(t, 2, st.Len())
}

func TestRestoreMissingSnapshotStartsEmpty(t *testing.T) {
	st := New(nil)
	Restore(context.Background(), st, &blobStub{loadErr: blob.ErrNotFound}, nil)
	assert.Zero(t, st.Len())
}

func TestRestoreLoadFailureStartsEmpty(t *testing.T) {
	st := New(nil)
	Restore(context.Background(), st, &blobStub{loadErr: errors.New("backend down")}, nil)
	assert.Zero(t, st.Len())
}

func TestRestoreCorruptSnapshotStartsEmpty(t *testing.T) {
	st := New(nil)
	Restore(context.Background(), st, &blobStub{data: []byte(`{"oops":true}`)}, nil)
	assert.Zero(t, st.Len())
}

func TestRestoreKeepsValidRecords(t *testing.T) {
	raw := []byte(`[
		{"id":"keep","title":"Kept","date":"2025-05-15","time":"10:00"},
		{"id":"","title":"dropped","date":"2025-05-15"}
	]`)

	st := New(nil)
	Restore(context.Background(), st, &blobStub{data: raw}, nil)
	require.Equal(t, 1, st.Len())
	_, ok := st.Find("keep")
	assert.True(t, ok)
}
