package attendance

import (
	"net/http"
	"strconv"

	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RecordEvent handles POST /attendance/events. The member is always the
// authenticated caller; clients cannot log attendance for someone else.
func (h *Handler) RecordEvent(c *gin.Context) {
	memberID := contextutil.GetMemberID(c.Request.Context())
	if memberID == "" {
		httpErr := apperror.ToHTTP(apperror.New(apperror.CodeUnauthorized, "Authentication required", http.StatusUnauthorized))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	res, err := h.service.RecordEvent(c.Request.Context(), memberID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) GetRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	res, err := h.service.GetRecent(c.Request.Context(), limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GetMemberSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	res, err := h.service.GetMemberSessions(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GetSummary(c *gin.Context) {
	res, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) DeleteLog(c *gin.Context) {
	if err := h.service.DeleteLog(c.Request.Context(), c.Param("id")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
