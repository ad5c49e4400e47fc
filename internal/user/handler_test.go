package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"

	"blood_bank_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const testUserHeader = "X-Test-User"

// fakeAuth trusts a numeric user id from a test header.
func fakeAuth(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader(testUserHeader), 10, 64)
	if err != nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	c.Set(common.UserIDKey, uint(id))
	c.Next()
}

func newTestRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	common.RegisterValidators()

	h := NewHandler(service, zap.NewNop())
	router := gin.New()
	api := router.Group("/api")
	h.RegisterRoutes(api, fakeAuth)
	admin := api.Group("/admin", fakeAuth)
	h.RegisterAdminRoutes(admin)
	return router
}

func (s *UserTestSuite) do(method, path string, asUser uint, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asUser != 0 {
		req.Header.Set(testUserHeader, strconv.FormatUint(uint64(asUser), 10))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func (s *UserTestSuite) TestGetMe() {
	u := s.seed("Me", "me@example.com", "A+", "")
	w, body := s.do(http.MethodGet, "/api/me", u.ID, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["ok"])
	me := body["user"].(map[string]interface{})
	s.Equal("me@example.com", me["email"])
	s.Equal("user", me["role"])
	s.NotContains(me, "password")
	s.NotContains(me, "PasswordHash")

	w, body = s.do(http.MethodGet, "/api/me", 4242, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("User not found", body["error"])
}

func (s *UserTestSuite) TestUpdateMe() {
	u := s.seed("Me", "me@example.com", "", "")
	w, body := s.do(http.MethodPut, "/api/me", u.ID, map[string]string{"phone": "9800000001", "bloodGroup": "B-"})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Profile updated successfully", body["message"])
	me := body["user"].(map[string]interface{})
	s.Equal("9800000001", me["phone"])
	s.Equal("B-", me["bloodGroup"])
	s.Equal("Me", me["name"])
}

func (s *UserTestSuite) TestSearchDonorsHandler() {
	s.seed("Donor", "donor@example.com", "O+", "Bagmati")

	w, body := s.do(http.MethodGet, "/api/donors/search", 0, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, body["ok"])
	s.Equal(MsgBloodGroupRequired, body["error"])

	q := url.Values{"bloodGroup": {"O+"}, "province": {"Bagmati"}}
	w, body = s.do(http.MethodGet, "/api/donors/search?"+q.Encode(), 0, nil)
	s.Equal(http.StatusOK, w.Code)
	donors := body["donors"].([]interface{})
	s.Require().Len(donors, 1)

	var keys []string
	for k := range donors[0].(map[string]interface{}) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.Equal([]string{"bloodGroup", "email", "id", "name", "phone", "province"}, keys)

	// An unescaped plus decodes to a space and still matches.
	w, body = s.do(http.MethodGet, "/api/donors/search?bloodGroup=O+", 0, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(body["donors"], 1)
}

func (s *UserTestSuite) TestAdminUsers() {
	admin := s.seed("Admin", "admin@example.com", "", "")
	target := s.seed("Target", "target@example.com", "", "")

	w, body := s.do(http.MethodGet, "/api/admin/users?limit=1&page=2", admin.ID, nil)
	s.Equal(http.StatusOK, w.Code)
	s.EqualValues(2, body["total"])
	s.EqualValues(2, body["page"])
	s.EqualValues(1, body["limit"])
	s.EqualValues(2, body["totalPages"])
	s.Len(body["users"], 1)

	w, body = s.do(http.MethodPatch, "/api/admin/users/"+strconv.Itoa(int(target.ID))+"/role", admin.ID, map[string]string{"role": "admin"})
	s.Equal(http.StatusOK, w.Code, body)
	s.Equal("admin", body["user"].(map[string]interface{})["role"])

	w, _ = s.do(http.MethodPatch, "/api/admin/users/"+strconv.Itoa(int(target.ID))+"/role", admin.ID, map[string]string{"role": "root"})
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/admin/users/"+strconv.Itoa(int(admin.ID)), admin.ID, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/admin/users/abc", admin.ID, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodDelete, "/api/admin/users/"+strconv.Itoa(int(target.ID)), admin.ID, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("User deleted", body["message"])

	w, _ = s.do(http.MethodDelete, "/api/admin/users/"+strconv.Itoa(int(target.ID)), admin.ID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}
