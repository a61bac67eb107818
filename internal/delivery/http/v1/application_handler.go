package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		// Candidate routes
		applications.POST("", handler.Submit)
		applications.GET("/my", handler.ListMine)

		// Recruiter routes
		applications.GET("/job/:jobId", handler.ListForJob)
		applications.PUT("/:id/status", handler.SetStatus)
	}
}

// SubmitApplicationRequest is the request payload for applying to a job
type SubmitApplicationRequest struct {
	JobID       int64  `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

// Submit godoc
// @Summary      Apply to a job
// @Description  Submit an application (Candidate only); at most one application per candidate per job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitApplicationRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Submit(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can apply to jobs"))
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	app, err := h.applicationUC.Submit(c.Request.Context(), currentUser(c), req.JobID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// ListMine godoc
// @Summary      Get my applications
// @Description  All applications submitted by the current candidate, newest first, with job summaries
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /applications/my [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can access this"))
		return
	}

	applications, err := h.applicationUC.ListMine(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ListForJob godoc
// @Summary      List applications for a job
// @Description  All applications for one of the caller's postings, newest first, with candidate summaries
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      403    {object}  response.Response
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can view job applications"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	applications, err := h.applicationUC.ListForJob(c.Request.Context(), currentUser(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// SetStatusRequest is the request payload for updating application status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus godoc
// @Summary      Update application status
// @Description  Set an application to pending, reviewed, accepted, or rejected (owning recruiter only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Application ID"
// @Param        body  body      SetStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can update application status"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	app, err := h.applicationUC.SetStatus(c.Request.Context(), currentUser(c), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}
