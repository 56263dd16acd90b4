package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	attendanceerrors "github.com/psyoonchild719/online-library-dashboard/internal/attendance/errors"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	recordRes   LogResponse
	recordErr   error
	recordedFor string
	summaryRes  SummaryResponse
	summaryErr  error
	deleteErr   error
	deletedID   string
}

func (f *fakeAttendanceService) RecordEvent(ctx context.Context, memberID string, req RecordEventRequest) (LogResponse, error) {
	f.recordedFor = memberID
	return f.recordRes, f.recordErr
}

func (f *fakeAttendanceService) GetRecent(ctx context.Context, limit int) ([]ActivityResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) GetMemberSessions(ctx context.Context, memberID string, limit int) ([]SessionResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) GetSummary(ctx context.Context) (SummaryResponse, error) {
	return f.summaryRes, f.summaryErr
}

func (f *fakeAttendanceService) DeleteLog(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeAttendanceService) RefreshMemberStats(ctx context.Context, memberID string) error {
	return nil
}

func newTestContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func authenticate(c *gin.Context, memberID string) {
	ctx := contextutil.WithMemberID(c.Request.Context(), memberID)
	c.Request = c.Request.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestRecordEventHandler_UsesAuthenticatedMember(t *testing.T) {
	svc := &fakeAttendanceService{
		recordRes: LogResponse{ID: "log-1", MemberID: testMemberID.String(), Action: ActionEnter},
	}
	h := NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/attendance/events", `{"action":"enter"}`)
	authenticate(c, testMemberID.String())

	h.RecordEvent(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testMemberID.String(), svc.recordedFor)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["ok"])
}

func TestRecordEventHandler_RequiresAuth(t *testing.T) {
	svc := &fakeAttendanceService{}
	h := NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/attendance/events", `{"action":"enter"}`)

	h.RecordEvent(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.recordedFor)
}

func TestRecordEventHandler_RejectsUnknownAction(t *testing.T) {
	svc := &fakeAttendanceService{}
	h := NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/attendance/events", `{"action":"pause"}`)
	authenticate(c, testMemberID.String())

	h.RecordEvent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.recordedFor)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["ok"])
}

func TestRecordEventHandler_MapsServiceError(t *testing.T) {
	svc := &fakeAttendanceService{recordErr: attendanceerrors.ErrInvalidMemberID}
	h := NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/attendance/events", `{"action":"exit"}`)
	authenticate(c, testMemberID.String())

	h.RecordEvent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSummaryHandler_ServiceUnavailable(t *testing.T) {
	svc := &fakeAttendanceService{
		summaryErr: apperror.New(apperror.CodeServiceUnavailable, "Attendance records are unavailable", http.StatusServiceUnavailable),
	}
	h := NewHandler(svc)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/attendance/summary", "")

	h.GetSummary(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["ok"])
	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeServiceUnavailable, errObj["code"])
}

func TestDeleteLogHandler_NotFound(t *testing.T) {
	svc := &fakeAttendanceService{deleteErr: attendanceerrors.ErrLogNotFound}
	h := NewHandler(svc)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/attendance/logs/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.DeleteLog(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "abc", svc.deletedID)
}
