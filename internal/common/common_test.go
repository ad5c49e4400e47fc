package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	e := ErrNotFound.WithDetails("User not found")
	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, "User not found", e.Details)
	assert.True(t, errors.Is(e, ErrNotFound))
	assert.False(t, errors.Is(e, ErrConflict))

	wrapped := fmt.Errorf("wrapped: %w", ErrNotFound.WithMessage("Blood request not found"))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	apiErr, ok := IsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Blood request not found", apiErr.Message)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(41, 3, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.CurrentPage)

	p = NewPagination(0, 0, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, DefaultPage, p.CurrentPage)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}

func TestGetPageQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
		offset    int
	}{
		{"", 1, 20, 0},
		{"page=2&limit=10", 2, 10, 10},
		{"page=-1&limit=abc", 1, 20, 0},
		{"page=3&limit=1000", 3, MaxPageSize, 200},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		pq := GetPageQuery(c)
		assert.Equal(t, tc.wantPage, pq.Page, tc.query)
		assert.Equal(t, tc.wantLimit, pq.Limit, tc.query)
		assert.Equal(t, tc.offset, pq.Offset(), tc.query)
	}
}

func TestFlexInt_Unmarshal(t *testing.T) {
	var body struct {
		Units FlexInt `json:"units"`
	}
	for in, want := range map[string]int{`{"units":3}`: 3, `{"units":"4"}`: 4, `{"units":" 5 "}`: 5, `{"units":2.7}`: 2} {
		require.NoError(t, json.Unmarshal([]byte(in), &body), in)
		assert.True(t, body.Units.Set, in)
		assert.Equal(t, want, body.Units.Value, in)
	}

	body.Units = FlexInt{}
	require.NoError(t, json.Unmarshal([]byte(`{"units":""}`), &body))
	assert.False(t, body.Units.Set)

	for _, in := range []string{`{"units":"two"}`, `{"units":"2.5"}`, `{"units":true}`, `{"units":1e30}`, `{"units":-1e30}`, `{"units":99999999999999999999}`} {
		err := json.Unmarshal([]byte(in), &body)
		assert.ErrorIs(t, err, ErrInvalidInteger, in)
	}
}

func TestGetTokenFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer abc":  "abc",
		"Basic abc":   "",
		"Bearer":      "",
		"":            "",
		"Bearer a b":  "",
	}
	for header, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set(AuthorizationHeader, header)
		}
		assert.Equal(t, want, GetTokenFromContext(c), header)
	}
}

func TestRespondWithError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondWithError(c, ErrNotFound.WithMessage("User not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "User not found", body["error"])
	assert.Equal(t, "NOT_FOUND", body["code"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondWithError(c, errors.New("db down"), "Failed to fetch user")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch user", body["error"])
	assert.NotContains(t, w.Body.String(), "db down")
}
