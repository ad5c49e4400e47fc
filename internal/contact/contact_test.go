package contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/platform/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmit_Validation(t *testing.T) {
	db, err := database.NewInMemorySQLite(&Message{})
	require.NoError(t, err)
	defer database.CloseGORMDB(db)
	svc := NewService(NewGORMRepository(db), zap.NewNop())

	for _, req := range []CreateRequest{
		{Email: "a@b.c", Message: "hi"},
		{Name: "A", Message: "hi"},
		{Name: "A", Email: "a@b.c", Message: "   "},
	} {
		_, err := svc.Submit(context.Background(), req)
		apiErr, ok := common.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, MsgRequiredFields, apiErr.Message)
	}

	m, err := svc.Submit(context.Background(), CreateRequest{Name: "A", Email: "a@b.c", Message: "Where can I donate?"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.NewInMemorySQLite(&Message{})
	require.NoError(t, err)
	defer database.CloseGORMDB(db)

	h := NewHandler(NewService(NewGORMRepository(db), zap.NewNop()), zap.NewNop())
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	h.RegisterAdminRoutes(r.Group("/api/admin"))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"name":"A","email":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), MsgRequiredFields)

	w = post(`{"name":"A","email":"a@b.c","message":"Hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Message received. We will reply soon."}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"message":"Hello"`)
}
