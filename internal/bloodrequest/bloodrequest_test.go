package bloodrequest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/platform/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testUserHeader = "X-Test-User"

func identify(c *gin.Context) bool {
	id, err := strconv.ParseUint(c.GetHeader(testUserHeader), 10, 64)
	if err != nil {
		return false
	}
	c.Set(common.UserIDKey, uint(id))
	return true
}

func fakeAuth(c *gin.Context) {
	if !identify(c) {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	c.Next()
}

func fakeOptionalAuth(c *gin.Context) {
	identify(c)
	c.Next()
}

type BloodRequestTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    Repository
	service Service
	router  *gin.Engine
	ctx     context.Context
}

func TestBloodRequestTestSuite(t *testing.T) {
	suite.Run(t, new(BloodRequestTestSuite))
}

func (s *BloodRequestTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	common.RegisterValidators()

	db, err := database.NewInMemorySQLite(&BloodRequest{})
	s.Require().NoError(err)
	s.db = db
	s.repo = NewGORMRepository(db)
	s.service = NewService(s.repo, zap.NewNop())
	s.ctx = context.Background()

	h := NewHandler(s.service, zap.NewNop())
	s.router = gin.New()
	api := s.router.Group("/api")
	h.RegisterRoutes(api, fakeAuth, fakeOptionalAuth)
	h.RegisterAdminRoutes(api.Group("/admin", fakeAuth))
}

func (s *BloodRequestTestSuite) TearDownTest() {
	database.CloseGORMDB(s.db)
}

func (s *BloodRequestTestSuite) do(method, path string, asUser uint, body interface{}) (int, map[string]interface{}) {
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
	return w.Code, out
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"patientName":  "Maya",
		"bloodGroup":   "A+",
		"unitsNeeded":  "2",
		"hospital":     "Bir Hospital",
		"province":     "Bagmati",
		"contactPhone": "9800000000",
	}
}

func (s *BloodRequestTestSuite) seed(bloodGroup, province string, urgency Urgency, status Status, userID *uint) *BloodRequest {
	p := province
	r := &BloodRequest{
		PatientName:  "Patient",
		BloodGroup:   bloodGroup,
		UnitsNeeded:  1,
		Hospital:     "Hospital",
		Province:     &p,
		ContactPhone: "9800000000",
		Urgency:      urgency,
		Status:       status,
		UserID:       userID,
	}
	s.Require().NoError(s.repo.Create(s.ctx, r))
	return r
}

func (s *BloodRequestTestSuite) TestCreate_Anonymous() {
	code, body := s.do(http.MethodPost, "/api/blood-requests", 0, validBody())
	s.Require().Equal(http.StatusCreated, code, body)
	s.Equal(true, body["ok"])
	s.Equal("Blood request submitted successfully", body["message"])

	req := body["request"].(map[string]interface{})
	s.EqualValues(2, req["unitsNeeded"])
	s.Equal("Normal", req["urgency"])
	s.Equal("Pending", req["status"])
	s.Nil(req["userId"])
	s.Nil(req["city"])
	s.NotEmpty(req["createdAt"])
}

func (s *BloodRequestTestSuite) TestCreate_SignedInRecordsUser() {
	b := validBody()
	b["unitsNeeded"] = 3
	b["urgency"] = "Emergency"
	code, body := s.do(http.MethodPost, "/api/blood-requests", 42, b)
	s.Require().Equal(http.StatusCreated, code, body)
	req := body["request"].(map[string]interface{})
	s.EqualValues(42, req["userId"])
	s.EqualValues(3, req["unitsNeeded"])
	s.Equal("Emergency", req["urgency"])
}

func (s *BloodRequestTestSuite) TestCreate_Validation() {
	for _, field := range []string{"patientName", "bloodGroup", "unitsNeeded", "hospital", "contactPhone"} {
		b := validBody()
		delete(b, field)
		code, body := s.do(http.MethodPost, "/api/blood-requests", 0, b)
		s.Equal(http.StatusBadRequest, code, field)
		s.Equal(MsgRequiredFields, body["error"], field)
	}

	cases := map[string]interface{}{"unitsNeeded": "0", "urgency": "Whenever", "bloodGroup": "C+"}
	for field, value := range cases {
		b := validBody()
		b[field] = value
		code, _ := s.do(http.MethodPost, "/api/blood-requests", 0, b)
		s.Equal(http.StatusBadRequest, code, field)
	}

	for _, units := range []interface{}{"two", "2.5", 1e30} {
		b := validBody()
		b["unitsNeeded"] = units
		code, body := s.do(http.MethodPost, "/api/blood-requests", 0, b)
		s.Equal(http.StatusBadRequest, code, units)
		s.Equal(MsgInvalidUnits, body["error"], units)
	}

	total, err := s.repo.Count(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *BloodRequestTestSuite) TestList_FiltersAndOrder() {
	first := s.seed("O+", "Koshi", UrgencyNormal, StatusPending, nil)
	s.seed("O+", "Bagmati", UrgencyUrgent, StatusPending, nil)
	s.seed("A-", "Koshi", UrgencyNormal, StatusCompleted, nil)
	last := s.seed("O+", "Koshi", UrgencyEmergency, StatusPending, nil)

	code, body := s.do(http.MethodGet, "/api/blood-requests", 0, nil)
	s.Equal(http.StatusOK, code)
	all := body["requests"].([]interface{})
	s.Require().Len(all, 4)
	s.EqualValues(last.ID, all[0].(map[string]interface{})["id"])
	s.EqualValues(first.ID, all[3].(map[string]interface{})["id"])

	q := url.Values{"bloodGroup": {"O+"}, "province": {"Koshi"}}
	_, body = s.do(http.MethodGet, "/api/blood-requests?"+q.Encode(), 0, nil)
	s.Len(body["requests"], 2)

	q.Set("urgency", "Emergency")
	_, body = s.do(http.MethodGet, "/api/blood-requests?"+q.Encode(), 0, nil)
	s.Len(body["requests"], 1)

	q = url.Values{"status": {"Completed"}}
	_, body = s.do(http.MethodGet, "/api/blood-requests?"+q.Encode(), 0, nil)
	s.Len(body["requests"], 1)

	q = url.Values{"status": {"Unknown"}}
	_, body = s.do(http.MethodGet, "/api/blood-requests?"+q.Encode(), 0, nil)
	s.Len(body["requests"], 0)
}

func (s *BloodRequestTestSuite) TestList_Capped() {
	for i := 0; i < common.PublicListCap+3; i++ {
		s.seed("B+", "Karnali", UrgencyNormal, StatusPending, nil)
	}
	_, body := s.do(http.MethodGet, "/api/blood-requests", 0, nil)
	s.Len(body["requests"], common.PublicListCap)
}

func (s *BloodRequestTestSuite) TestGet() {
	r := s.seed("AB-", "Madhesh", UrgencyNormal, StatusPending, nil)

	code, body := s.do(http.MethodGet, fmt.Sprintf("/api/blood-requests/%d", r.ID), 0, nil)
	s.Equal(http.StatusOK, code)
	s.Equal("AB-", body["request"].(map[string]interface{})["bloodGroup"])

	code, body = s.do(http.MethodGet, "/api/blood-requests/9999", 0, nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal(MsgRequestNotFound, body["error"])

	code, _ = s.do(http.MethodGet, "/api/blood-requests/abc", 0, nil)
	s.Equal(http.StatusBadRequest, code)
}

func (s *BloodRequestTestSuite) TestUpdateStatus() {
	r := s.seed("O-", "Gandaki", UrgencyUrgent, StatusPending, nil)
	path := fmt.Sprintf("/api/blood-requests/%d", r.ID)

	code, _ := s.do(http.MethodPatch, path, 0, map[string]string{"status": "Completed"})
	s.Equal(http.StatusUnauthorized, code)

	code, body := s.do(http.MethodPatch, path, 1, map[string]string{})
	s.Equal(http.StatusBadRequest, code)
	s.Equal(MsgStatusRequired, body["error"])

	code, body = s.do(http.MethodPatch, path, 1, map[string]string{"status": "Done"})
	s.Equal(http.StatusBadRequest, code)
	s.Equal(MsgInvalidStatus, body["error"])

	code, _ = s.do(http.MethodPatch, "/api/blood-requests/9999", 1, map[string]string{"status": "Completed"})
	s.Equal(http.StatusNotFound, code)

	// Any status may follow any other, including back to Pending.
	for _, next := range []Status{StatusCompleted, StatusPending, StatusInProgress, StatusCancelled} {
		code, body = s.do(http.MethodPatch, path, 1, map[string]string{"status": string(next), "patientName": "Changed"})
		s.Require().Equal(http.StatusOK, code, body)
		s.Equal("Status updated", body["message"])
		s.Equal(string(next), body["request"].(map[string]interface{})["status"])
	}

	stored, err := s.repo.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(StatusCancelled, stored.Status)
	s.Equal("Patient", stored.PatientName)
	s.Equal(UrgencyUrgent, stored.Urgency)
}

func (s *BloodRequestTestSuite) TestListMine() {
	mine, other := uint(5), uint(6)
	s.seed("A+", "Koshi", UrgencyNormal, StatusPending, &mine)
	s.seed("A+", "Koshi", UrgencyNormal, StatusPending, &other)
	newest := s.seed("B+", "Koshi", UrgencyNormal, StatusPending, &mine)
	s.seed("A+", "Koshi", UrgencyNormal, StatusPending, nil)

	code, _ := s.do(http.MethodGet, "/api/me/blood-requests", 0, nil)
	s.Equal(http.StatusUnauthorized, code)

	code, body := s.do(http.MethodGet, "/api/me/blood-requests", mine, nil)
	s.Equal(http.StatusOK, code)
	requests := body["requests"].([]interface{})
	s.Require().Len(requests, 2)
	s.EqualValues(newest.ID, requests[0].(map[string]interface{})["id"])
}

func (s *BloodRequestTestSuite) TestAdminListAndDelete() {
	for i := 0; i < 5; i++ {
		s.seed("O+", "Lumbini", UrgencyNormal, StatusPending, nil)
	}
	target := s.seed("O+", "Lumbini", UrgencyNormal, StatusCompleted, nil)

	code, body := s.do(http.MethodGet, "/api/admin/blood-requests?page=2&limit=4", 1, nil)
	s.Equal(http.StatusOK, code)
	s.EqualValues(6, body["total"])
	s.EqualValues(2, body["totalPages"])
	s.Len(body["requests"], 2)

	_, body = s.do(http.MethodGet, "/api/admin/blood-requests?status=Completed", 1, nil)
	s.EqualValues(1, body["total"])

	code, body = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/blood-requests/%d", target.ID), 1, nil)
	s.Equal(http.StatusOK, code)
	s.Equal("Blood request deleted", body["message"])

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/blood-requests/%d", target.ID), 1, nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *BloodRequestTestSuite) TestOpenRequestDigest() {
	s.seed("O+", "Koshi", UrgencyEmergency, StatusPending, nil)
	s.seed("O+", "Koshi", UrgencyEmergency, StatusInProgress, nil)
	s.seed("O+", "Koshi", UrgencyUrgent, StatusPending, nil)
	s.seed("O+", "Koshi", UrgencyNormal, StatusCompleted, nil)
	s.seed("O+", "Koshi", UrgencyNormal, StatusCancelled, nil)

	digest, err := s.service.OpenRequestDigest(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[Urgency]int64{UrgencyEmergency: 2, UrgencyUrgent: 1, UrgencyNormal: 0}, digest)

	pending, err := s.service.Count(s.ctx, Filter{Status: string(StatusPending)})
	s.Require().NoError(err)
	s.EqualValues(2, pending)
}
