package sheetdev

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := Open(filepath.Join(t.TempDir(), "threadly.xlsx"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewServer(store, "sheet-1").Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body map[string]any) map[string]any {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func getJSON(t *testing.T, url string) map[string]any {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func TestServer_CreateThenQuery(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	created := postJSON(t, srv.URL, map[string]any{
		"method":  "create",
		"sheetId": "sheet-1",
		"sheet":   "users",
		"id":      "u1",
		"name":    "Ada",
		"email":   "ada@x.com",
	})
	require.Equal(t, true, created["success"])

	res := getJSON(t, srv.URL+"?sheetId=sheet-1&sheet=users&filterKey=email&filterValue=ada@x.com")
	require.Equal(t, true, res["success"])

	message := res["message"].(map[string]any)
	data := message["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "Ada", data[0].(map[string]any)["name"])
}

func TestServer_Update(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	postJSON(t, srv.URL, map[string]any{
		"method": "create", "sheetId": "sheet-1", "sheet": "posts",
		"id": "p1", "title": "hello", "comment_count": "0",
	})

	updated := postJSON(t, srv.URL, map[string]any{
		"method": "update", "sheetId": "sheet-1", "sheet": "posts",
		"id": "p1", "comment_count": 1,
	})
	require.Equal(t, true, updated["success"])

	res := getJSON(t, srv.URL+"?sheetId=sheet-1&sheet=posts&filterKey=id&filterValue=p1")
	message := res["message"].(map[string]any)
	data := message["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "1", data[0].(map[string]any)["comment_count"])
}

func TestServer_RejectsWrongSheetID(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	res := getJSON(t, srv.URL+"?sheetId=other&sheet=users")
	require.Equal(t, false, res["success"])
}

func TestServer_UnknownMethod(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	res := postJSON(t, srv.URL, map[string]any{
		"method": "delete", "sheetId": "sheet-1", "sheet": "users", "id": "u1",
	})
	require.Equal(t, false, res["success"])
}
