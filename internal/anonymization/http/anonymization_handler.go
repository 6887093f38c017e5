// Package http provides HTTP handlers for anonymization runs and their audit trail.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/anonymization/http/dto"
	anonymizationUseCase "github.com/allisson/anonymizer/internal/anonymization/usecase"
	"github.com/allisson/anonymizer/internal/httputil"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	customValidation "github.com/allisson/anonymizer/internal/validation"
)

// AnonymizationHandler handles HTTP requests that anonymize record sets.
// The secret is obtained once at startup and shared by all requests.
type AnonymizationHandler struct {
	anonymizationUseCase anonymizationUseCase.AnonymizationUseCase
	auditUseCase         anonymizationUseCase.AuditUseCase
	secret               keysDomain.Secret
	defaults             domain.Options
	logger               *slog.Logger
}

// NewAnonymizationHandler creates a new anonymization handler. auditUseCase may be
// nil, in which case runs are not recorded.
func NewAnonymizationHandler(
	anonymizationUseCase anonymizationUseCase.AnonymizationUseCase,
	auditUseCase anonymizationUseCase.AuditUseCase,
	secret keysDomain.Secret,
	defaults domain.Options,
	logger *slog.Logger,
) *AnonymizationHandler {
	return &AnonymizationHandler{
		anonymizationUseCase: anonymizationUseCase,
		auditUseCase:         auditUseCase,
		secret:               secret,
		defaults:             defaults,
		logger:               logger,
	}
}

// AnonymizeHandler anonymizes the target columns of the posted records.
// POST /v1/anonymize
// Returns 200 OK with the anonymized records in input order.
func (h *AnonymizationHandler) AnonymizeHandler(c *gin.Context) {
	var req dto.AnonymizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	opts, err := req.ToOptions(h.defaults)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	table, err := req.ToTable()
	if err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.anonymizationUseCase.Anonymize(c.Request.Context(), table, h.secret, opts)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var run *domain.AuditRun
	if h.auditUseCase != nil {
		run, err = h.auditUseCase.Record(c.Request.Context(), opts.Mode, result)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	response, err := dto.MapResultToResponse(result, req.IncludeMappings, run)
	if err != nil {
		httputil.HandleErrorGin(c, fmt.Errorf("failed to encode records: %w", err), h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AuditHandler serves recorded anonymization runs.
type AuditHandler struct {
	auditUseCase anonymizationUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditUseCase anonymizationUseCase.AuditUseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// GetRunHandler returns one page of the record mappings of a run.
// GET /v1/runs/:id?offset=0&limit=50
func (h *AuditHandler) GetRunHandler(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid run id: %w", err), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	run, err := h.auditUseCase.Get(c.Request.Context(), runID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	page := httputil.Page(run.Mappings, offset, limit)
	c.JSON(http.StatusOK, dto.MapRunToResponse(run, page, offset, limit))
}
