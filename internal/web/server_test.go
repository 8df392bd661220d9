package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minirel/minirel/internal/minirel"
)

func newTestServer(t *testing.T) (*Server, *minirel.Database) {
	t.Helper()
	db := minirel.NewDatabase(zap.NewNop())
	require.NoError(t, DeclareTables(context.Background(), db))
	require.NoError(t, Seed(context.Background(), db))
	return NewServer(db, zap.NewNop()), db
}

func doForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestServer_Index(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "users")
	assert.Contains(t, recorder.Body.String(), "orders")
}

func TestServer_IndexConcurrentWithWrites(t *testing.T) {
	t.Parallel()

	server, db := newTestServer(t)
	handler := server.Handler()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		}()
		go func(i int) {
			defer wg.Done()
			doForm(t, handler, "/users/add", url.Values{
				"email": {fmt.Sprintf("user-%d@example.com", i)},
				"name":  {fmt.Sprintf("User %d", i)},
				"age":   {"30"},
			})
		}(i)
	}
	wg.Wait()

	sizes := db.TableSizes(context.Background())
	assert.Equal(t, 23, sizes["users"])
}

func TestServer_ListUsers(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "Bob")
	assert.Contains(t, body, "Carol")
}

func TestServer_AddUser(t *testing.T) {
	t.Parallel()

	server, db := newTestServer(t)
	recorder := doForm(t, server.Handler(), "/users/add", url.Values{
		"email": {"dave@example.com"},
		"name":  {"Dave"},
		"age":   {"41"},
	})

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	aTable, ok := db.GetTable("users")
	require.True(t, ok)
	assert.Equal(t, 4, aTable.NumRows())
}

func TestServer_AddUserDuplicateEmailFails(t *testing.T) {
	t.Parallel()

	server, db := newTestServer(t)
	recorder := doForm(t, server.Handler(), "/users/add", url.Values{
		"email": {"alice@example.com"},
		"name":  {"Impostor"},
		"age":   {"99"},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "unique")
	aTable, ok := db.GetTable("users")
	require.True(t, ok)
	assert.Equal(t, 3, aTable.NumRows())
}

func TestServer_EditUser(t *testing.T) {
	t.Parallel()

	server, db := newTestServer(t)
	recorder := doForm(t, server.Handler(), "/users/edit", url.Values{
		"id":  {"2"},
		"age": {"26"},
	})

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	result, err := db.ExecuteStatement(context.Background(), minirel.Statement{
		Kind:       minirel.Select,
		TableNames: []string{"users"},
		Fields:     []minirel.Field{{Name: "age"}},
		Conditions: minirel.OneOrMore{
			{minirel.FieldIsEqual("id", minirel.NewInteger(2))},
		},
	})
	require.NoError(t, err)
	require.True(t, result.Rows.Next(context.Background()))
	assert.Equal(t, minirel.NewInteger(26), result.Rows.Row().Values[0])
}

func TestServer_DeleteUser(t *testing.T) {
	t.Parallel()

	server, db := newTestServer(t)
	recorder := doForm(t, server.Handler(), "/users/delete", url.Values{"id": {"1"}})

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	aTable, ok := db.GetTable("users")
	require.True(t, ok)
	assert.Equal(t, 2, aTable.NumRows())
}

func TestServer_OrdersJoin(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders/join", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "keyboard")
	assert.Contains(t, body, "mouse")
	assert.Contains(t, body, "monitor")
	assert.Contains(t, body, "desk")
}

func TestServer_AddOrderInvalidAmountFails(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	recorder := doForm(t, server.Handler(), "/orders/add", url.Values{
		"user_id": {"1"},
		"product": {"lamp"},
		"amount":  {"not-a-number"},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
