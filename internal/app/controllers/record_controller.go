package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/gradesphere/internal/app/models/dto"
	"github.com/yigit/gradesphere/internal/app/services"
	"github.com/yigit/gradesphere/internal/middleware"
	"github.com/yigit/gradesphere/internal/pkg/apperrors"
	"github.com/yigit/gradesphere/internal/pkg/gpa"
)

// RecordController exposes the per-user academic record operations. The
// acting user id always comes from the validated token, never from the
// request body.
type RecordController struct {
	recordService *services.RecordService
	logger        zerolog.Logger
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService *services.RecordService, logger zerolog.Logger) *RecordController {
	return &RecordController{
		recordService: recordService,
		logger:        logger,
	}
}

// GetMyRecord returns the acting user's record, creating it on first access
// @Summary Get my academic record
// @Tags records
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /records/me [get]
func (c *RecordController) GetMyRecord(ctx *gin.Context) {
	userID := middleware.ActingUserID(ctx)

	record, err := c.recordService.Get(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
}

// AddSemester appends a semester to the acting user's record
// @Summary Add a semester
// @Tags records
// @Accept json
// @Produce json
// @Param request body dto.AddSemesterRequest true "Semester number and subjects"
// @Success 201 {object} dto.APIResponse{data=models.StudentRecord} "Updated record"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Semester number already exists"
// @Security BearerAuth
// @Router /records/me/semesters [post]
func (c *RecordController) AddSemester(ctx *gin.Context) {
	var req dto.AddSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid add semester payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := middleware.ActingUserID(ctx)

	record, err := c.recordService.AddSemester(ctx.Request.Context(), userID, req.Number, req.Subjects)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(record))
}

// UpdateSemester replaces the subjects of a semester
// @Summary Update a semester
// @Tags records
// @Accept json
// @Produce json
// @Param semesterId path string true "Semester id"
// @Param request body dto.UpdateSemesterRequest true "Replacement subjects"
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Updated record"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Security BearerAuth
// @Router /records/me/semesters/{semesterId} [put]
func (c *RecordController) UpdateSemester(ctx *gin.Context) {
	var req dto.UpdateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update semester payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := middleware.ActingUserID(ctx)
	semesterID := ctx.Param("semesterId")

	record, err := c.recordService.UpdateSemester(ctx.Request.Context(), userID, semesterID, req.Subjects)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
}

// DeleteSemester removes a semester. Deleting a semester that is already
// gone succeeds with the unchanged record, making the endpoint idempotent;
// the core still reports the miss and the choice to ignore it is made here.
// @Summary Delete a semester
// @Tags records
// @Produce json
// @Param semesterId path string true "Semester id"
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Updated record"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /records/me/semesters/{semesterId} [delete]
func (c *RecordController) DeleteSemester(ctx *gin.Context) {
	userID := middleware.ActingUserID(ctx)
	semesterID := ctx.Param("semesterId")

	record, err := c.recordService.DeleteSemester(ctx.Request.Context(), userID, semesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSemesterNotFound) {
			current, getErr := c.recordService.Get(ctx.Request.Context(), userID)
			if getErr != nil {
				middleware.HandleAPIError(ctx, getErr)
				return
			}
			ctx.JSON(http.StatusOK, dto.NewAPIResponse(current))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
}

// GradeScale returns the fixed grade table and credit options
// @Summary Grade scale
// @Tags records
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GradeScaleResponse}
// @Router /grade-scale [get]
func (c *RecordController) GradeScale(ctx *gin.Context) {
	points := make(map[string]int)
	for _, grade := range gpa.Grades() {
		points[grade] = gpa.Points(grade)
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.GradeScaleResponse{
		Grades:        gpa.Grades(),
		Points:        points,
		CreditOptions: gpa.CreditOptions(),
	}))
}
