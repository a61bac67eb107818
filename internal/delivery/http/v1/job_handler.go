package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - no authentication required
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)        // Active jobs with filters
		publicJobs.GET("/:id", handler.GetByID) // Job details
	}

	// PROTECTED routes - authentication required
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.GET("/my/posted", handler.ListMine)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}
}

type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Company     string   `json:"company" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Salary      string   `json:"salary" binding:"required"`
	Description string   `json:"description" binding:"required"`
	JobType     string   `json:"job_type" binding:"required"`
	Tags        []string `json:"tags"`
}

// Create godoc
// @Summary      Create a new job
// @Description  Create a new job posting (Recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.JobWithPoster}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	// 1. Role Check
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can post jobs"))
		return
	}

	// 2. Bind JSON
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job := &domain.Job{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Description: req.Description,
		JobType:     req.JobType,
		Tags:        req.Tags,
	}

	created, err := h.jobUC.CreateJob(c.Request.Context(), currentUser(c), job)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", created)
}

// List godoc
// @Summary      List active jobs (public)
// @Description  Get active jobs, newest first, optionally filtered
// @Tags         jobs
// @Produce      json
// @Param        search    query     string  false  "Substring match on title or company"
// @Param        location  query     string  false  "Substring match on location"
// @Param        job_type  query     string  false  "Exact job type"
// @Param        tags      query     string  false  "Comma-separated tags; matches any"
// @Success      200       {object}  response.Response{data=[]domain.JobWithPoster}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		JobType:  c.Query("job_type"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

// GetByID godoc
// @Summary      Get job details (public)
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobWithPoster}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// ListMine godoc
// @Summary      List own posted jobs
// @Description  All jobs posted by the logged-in recruiter, including inactive ones
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobWithPoster}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/my/posted [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can access this"))
		return
	}

	jobs, err := h.jobUC.ListMyJobs(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Posted jobs", jobs)
}

// Update godoc
// @Summary      Update a job
// @Description  Partial update of an existing posting (owning recruiter only); supplied fields overwrite, omitted fields are untouched
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int               true  "Job ID"
// @Param        job  body      domain.JobUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.JobWithPoster}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var update domain.JobUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), currentUser(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Permanently delete a posting and its applications (owning recruiter only)
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), currentUser(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
