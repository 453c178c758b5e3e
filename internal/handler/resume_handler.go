package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain/dto"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/middleware"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/service"
)

type ResumeHandler struct {
	resumeService service.ResumeService
}

func NewResumeHandler(resumeService service.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
	}
}

// RegisterRoutes mounts the resume endpoints on an authenticated group.
func (h *ResumeHandler) RegisterRoutes(group *gin.RouterGroup) {
	resumes := group.Group("/resumes")
	{
		resumes.GET("", h.ListResumes)
		resumes.GET("/:id", h.GetResume)
		resumes.POST("", h.CreateResume)
		resumes.PUT("", h.UpdateResume)
		resumes.DELETE("/:id", h.DeleteResume)
	}
}

// CreateResume handles POST /api/v1/resumes
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	resume, err := h.resumeService.CreateResume(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err, "Failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"resume": (&dto.ResumeResponse{}).FromDomain(resume),
	})
}

// UpdateResume handles PUT /api/v1/resumes. The resume is named by the id in the body.
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	resume, err := h.resumeService.UpdateResume(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err, "Failed to update resume")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resume": (&dto.ResumeResponse{}).FromDomain(resume),
	})
}

// ListResumes handles GET /api/v1/resumes
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	resumes, err := h.resumeService.ListResumes(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve resumes")
		return
	}

	c.JSON(http.StatusOK, dto.NewResumesListResponse(resumes))
}

// GetResume handles GET /api/v1/resumes/:id
func (h *ResumeHandler) GetResume(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	resumeID, ok := resumeIDParam(c)
	if !ok {
		return
	}

	resume, err := h.resumeService.GetResume(c.Request.Context(), ownerID, resumeID)
	if err != nil {
		respondError(c, err, "Failed to retrieve resume")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resume": (&dto.ResumeResponse{}).FromDomain(resume),
	})
}

// DeleteResume handles DELETE /api/v1/resumes/:id
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	resumeID, ok := resumeIDParam(c)
	if !ok {
		return
	}

	if err := h.resumeService.DeleteResume(c.Request.Context(), ownerID, resumeID); err != nil {
		respondError(c, err, "Failed to delete resume")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume deleted successfully",
	})
}

func ownerFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.OwnerIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	ownerID, ok := value.(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return ownerID, true
}

func resumeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resume ID format",
		})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error, fallback string) {
	var validationErrs domain.ValidationErrors
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": validationErrs,
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"field":   validationErr.Field,
			"message": validationErr.Message,
			"type":    validationErr.Type,
		})
	case errors.Is(err, domain.ErrResumeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
	case errors.Is(err, domain.ErrResumeForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, domain.ErrResumeLimitReached):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
