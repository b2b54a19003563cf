package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
}

func TestLoad_MissingFileIsError(t *testing.T) {
	col := Open[record](filepath.Join(t.TempDir(), "products.json"))
	_, err := col.Load(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStorage)
}

func TestLoad_MissingFileEmptyOnMissing(t *testing.T) {
	col := Open(filepath.Join(t.TempDir(), "cart.json"), WithEmptyOnMissing[record]())
	records, err := col.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSaveLoad_RoundTripKeepsOrder(t *testing.T) {
	col := Open[record](filepath.Join(t.TempDir(), "products.json"))
	in := []record{{UUID: "b", Title: "Second"}, {UUID: "a", Title: "First"}}
	require.NoError(t, col.Save(context.Background(), in))

	out, err := col.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestSave_StableIndentedFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	col := Open[record](path)
	require.NoError(t, col.Save(context.Background(), []record{{UUID: "a", Title: "Pen"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "[\n  {\n"), "expected two-space indented array, got %q", string(data))
}

func TestLoad_CorruptBlobIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open[record](path).Load(context.Background())
	require.ErrorIs(t, err, ErrStorage)
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	col := Open(filepath.Join(t.TempDir(), "cart.json"), WithEmptyOnMissing[record]())
	ctx := context.Background()

	err := col.Update(ctx, func(records []record) ([]record, error) {
		return append(records, record{UUID: "a", Title: "Pen"}), nil
	})
	require.NoError(t, err)
	err = col.Update(ctx, func(records []record) ([]record, error) {
		return append(records, record{UUID: "b", Title: "Ink"}), nil
	})
	require.NoError(t, err)

	records, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "a", records[0].UUID)
	require.Equal(t, "b", records[1].UUID)
}

func TestUpdate_MutatorErrorLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	col := Open[record](path)
	ctx := context.Background()
	require.NoError(t, col.Save(ctx, []record{{UUID: "a", Title: "Pen"}}))

	boom := os.ErrInvalid
	err := col.Update(ctx, func(records []record) ([]record, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	records, err := col.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []record{{UUID: "a", Title: "Pen"}}, records)
}

func TestUpdate_ConcurrentAppendsLoseNothing(t *testing.T) {
	col := Open(filepath.Join(t.TempDir(), "cart.json"), WithEmptyOnMissing[record]())
	ctx := context.Background()

	const writers = 16
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			done <- col.Update(ctx, func(records []record) ([]record, error) {
				return append(records, record{UUID: "x"}), nil
			})
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	records, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, writers)
}
