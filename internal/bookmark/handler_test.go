// AngelaMos | 2026
// handler_test.go

package bookmark

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/records-api/internal/core"
	"github.com/carterperez-dev/templates/records-api/internal/middleware"
	"github.com/carterperez-dev/templates/records-api/internal/resource"
)

const (
	aliceID    = "9a1f0c4e-2b7d-4a55-8e3c-6d2f1b0a9e77"
	bookmarkID = "c4d5e6f7-0a1b-4c2d-8e3f-4a5b6c7d8e9f"
)

var bookmarkColumns = []string{
	"id", "owner_id", "title", "description", "link",
	"created_at", "updated_at", "deleted_at",
}

type tokenTable map[string]string

func (tt tokenTable) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	id, ok := tt[token]
	if !ok {
		return nil, core.ErrTokenInvalid
	}
	return &middleware.AccessTokenClaims{UserID: id}, nil
}

func setup(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := resource.NewRepository[Bookmark](sqlx.NewDb(db, "sqlmock"), Schema)
	svc := resource.NewService[Bookmark](Schema, repo, nil, nil)

	r := chi.NewRouter()
	NewHandler(svc, 0).RegisterRoutes(r, middleware.Authenticator(tokenTable{
		"alice": aliceID,
		"bogus": "not-a-uuid",
	}))
	return r, mock
}

func call(h http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func row(description any) *sqlmock.Rows {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookmarkColumns).
		AddRow(bookmarkID, aliceID, "Go blog", description, "https://go.dev/blog", now, now, nil)
}

func TestCreate_AbsentDescriptionMatchesNull(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectQuery(`SELECT .* FROM bookmarks WHERE description IS NULL AND link = \$1 AND owner_id = \$2 AND title = \$3 AND deleted_at IS NULL`).
		WithArgs("https://go.dev/blog", aliceID, "Go blog").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO bookmarks \(id, description, link, owner_id, title\)`).
		WithArgs(sqlmock.AnyArg(), nil, "https://go.dev/blog", aliceID, "Go blog").
		WillReturnRows(row(nil))

	rec := call(h, "alice", http.MethodPost, "/bookmarks",
		`{"title":"Go blog","link":"https://go.dev/blog"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data BookmarkResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, aliceID, resp.Data.OwnerID)
	assert.Nil(t, resp.Data.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RepeatReturnsSameRow(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectQuery(`SELECT .* FROM bookmarks WHERE description = \$1`).
		WithArgs("weekly", "https://go.dev/blog", aliceID, "Go blog").
		WillReturnRows(row("weekly"))

	rec := call(h, "alice", http.MethodPost, "/bookmarks",
		`{"title":"Go blog","description":"weekly","link":"https://go.dev/blog"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), bookmarkID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsBadLink(t *testing.T) {
	h, mock := setup(t)

	rec := call(h, "alice", http.MethodPost, "/bookmarks", `{"title":"x","link":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "link must be a valid URL")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_ForeignRowLooksMissing(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectQuery(`WHERE id = \$1 AND owner_id = \$2 AND deleted_at IS NULL`).
		WithArgs(bookmarkID, aliceID).
		WillReturnError(sql.ErrNoRows)

	rec := call(h, "alice", http.MethodGet, "/bookmarks/"+bookmarkID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookmark not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerIDMustBeValid(t *testing.T) {
	h, mock := setup(t)

	rec := call(h, "bogus", http.MethodGet, "/bookmarks", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyPageHasEmptyResults(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookmarks WHERE owner_id = \$1 AND deleted_at IS NULL`).
		WithArgs(aliceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`LIMIT \$2 OFFSET \$3`).
		WithArgs(aliceID, resource.DefaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(bookmarkColumns))
	mock.ExpectCommit()

	rec := call(h, "alice", http.MethodGet, "/bookmarks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":true,"data":{"total":0,"page_size":10,"page":1,"results":[]}}`,
		rec.Body.String(),
	)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_StorageFaultIsGeneric(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	rec := call(h, "alice", http.MethodGet, "/bookmarks", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NullDescriptionClearsIt(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectQuery(`SELECT .* FROM bookmarks WHERE id = \$1 AND owner_id = \$2 AND deleted_at IS NULL`).
		WithArgs(bookmarkID, aliceID).
		WillReturnRows(row("weekly"))
	mock.ExpectQuery(`UPDATE bookmarks SET description = \$1, updated_at = NOW\(\) WHERE id = \$2 AND owner_id = \$3`).
		WithArgs(nil, bookmarkID, aliceID).
		WillReturnRows(row(nil))

	rec := call(h, "alice", http.MethodPatch, "/bookmarks/"+bookmarkID, `{"description":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"description":null`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	h, mock := setup(t)

	mock.ExpectExec(`UPDATE bookmarks SET deleted_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$1 AND owner_id = \$2 AND deleted_at IS NULL`).
		WithArgs(bookmarkID, aliceID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := call(h, "alice", http.MethodDelete, "/bookmarks/"+bookmarkID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
