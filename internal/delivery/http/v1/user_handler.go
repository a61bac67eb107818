package v1

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

// NewUserHandler registers user directory routes
func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := protected.Group("/users")
	{
		users.POST("/complete-profile", handler.CompleteProfile)
		users.GET("/me", handler.GetMe)
	}
}

type CompleteProfileRequest struct {
	Role    string `json:"role" binding:"required"`
	Company string `json:"company"`
}

// CompleteProfile godoc
// @Summary      Complete user profile
// @Description  Create or overwrite the caller's directory record with role and company
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      CompleteProfileRequest  true  "Profile data"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /users/complete-profile [post]
// @Security     BearerAuth
func (h *UserHandler) CompleteProfile(c *gin.Context) {
	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Role is required. Company is also required for recruiters."))
		return
	}

	ident := domain.Identity{
		SubjectID: c.GetString(string(domain.KeySubjectID)),
		Email:     c.GetString(string(domain.KeyUserEmail)),
		FirstName: c.GetString(string(domain.KeyFirstName)),
		LastName:  c.GetString(string(domain.KeyLastName)),
	}

	user, err := h.userUC.CompleteProfile(c.Request.Context(), ident, req.Role, req.Company)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile completed", user)
}

// GetMe godoc
// @Summary      Get current user
// @Description  Get the caller's directory record; 404 until the profile has been completed
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userUC.GetBySubject(c.Request.Context(), c.GetString(string(domain.KeySubjectID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current user", user)
}

// currentUser returns the caller's directory record attached by the
// auth middleware, or nil before profile completion.
func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(string(domain.KeyUser))
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// bindError turns a gin binding failure into a readable 400
func bindError(err error) *apperror.AppError {
	return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), ". "))
}
