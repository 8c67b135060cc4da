package sheetdev

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "threadly.xlsx"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_SeedsSheets(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	for _, sheet := range []string{"users", "posts", "comments"} {
		rows, page, totalPages, err := store.Query(sheet, "", "", 0, 0)
		require.NoError(t, err, sheet)
		require.Empty(t, rows)
		require.Equal(t, 1, page)
		require.Equal(t, 1, totalPages)
	}
}

func TestOpen_Reopens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "threadly.xlsx")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Create("users", map[string]string{"id": "u1", "name": "Ada"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, _, _, err := reopened.Query("users", "id", "u1", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Ada", rows[0]["name"])
}

func TestQuery_Filter(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	require.NoError(t, store.Create("users", map[string]string{"id": "u1", "email": "a@x.com"}))
	require.NoError(t, store.Create("users", map[string]string{"id": "u2", "email": "b@x.com"}))

	rows, _, _, err := store.Query("users", "email", "b@x.com", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "u2", rows[0]["id"])

	rows, _, _, err = store.Query("users", "email", "missing@x.com", 0, 0)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestQuery_Pagination(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	for i := 1; i <= 7; i++ {
		require.NoError(t, store.Create("posts", map[string]string{
			"id":    strconv.Itoa(i),
			"title": "post " + strconv.Itoa(i),
		}))
	}

	rows, page, totalPages, err := store.Query("posts", "", "", 5, 1)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	require.Equal(t, 1, page)
	require.Equal(t, 2, totalPages)

	rows, page, totalPages, err = store.Query("posts", "", "", 5, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2, page)
	require.Equal(t, 2, totalPages)

	// a page past the end is empty, not an error
	rows, _, totalPages, err = store.Query("posts", "", "", 5, 9)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.Equal(t, 2, totalPages)
}

func TestCreate_ExtendsHeader(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	require.NoError(t, store.Create("posts", map[string]string{
		"id":     "p1",
		"pinned": "true", // not part of the seeded header
	}))

	rows, _, _, err := store.Query("posts", "id", "p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "true", rows[0]["pinned"])
}

func TestUpdate_RewritesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	require.NoError(t, store.Create("posts", map[string]string{
		"id":            "p1",
		"title":         "hello",
		"comment_count": "0",
	}))

	require.NoError(t, store.Update("posts", "p1", map[string]string{"comment_count": "3"}))

	rows, _, _, err := store.Query("posts", "id", "p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "hello", rows[0]["title"])
	require.Equal(t, "3", rows[0]["comment_count"])
}

func TestUpdate_MissingRow(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	err := store.Update("posts", "ghost", map[string]string{"title": "x"})
	require.ErrorIs(t, err, ErrRowNotFound)
}

func TestQuery_UnknownSheet(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	_, _, _, err := store.Query("nope", "", "", 0, 0)
	require.ErrorIs(t, err, ErrUnknownSheet)
}
