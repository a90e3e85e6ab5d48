package handlers

import (
	"github.com/adintl/catalog-api/internal/identity"
	"github.com/adintl/catalog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles registration, login and role management
type AccountHandler struct {
	Identity *identity.Service
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type changeRoleRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register handles POST /api/account/register
// @Summary Register a user
// @Tags Account
// @Accept json
// @Produce json
// @Param account body identity.RegisterInput true "Account"
// @Success 201 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /account/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var input identity.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "register")
	}

	user, err := h.Identity.Register(input)
	if err != nil {
		return serviceError(c, err, "An error occurred while registering the user", "register")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "User registered successfully.",
		"userId":    user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
}

// Login handles POST /api/account/login
// @Summary Log in
// @Description Authenticate by username or email and issue a bearer token
// @Tags Account
// @Accept json
// @Produce json
// @Param credentials body handlers.loginRequest true "Credentials"
// @Success 200 {object} handlers.loginResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /account/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "login")
	}

	user, err := h.Identity.Authenticate(req.Username, req.Email, req.Password)
	if err != nil {
		return serviceError(c, err, "An error occurred while logging in", "login")
	}

	token, err := h.Identity.IssueToken(user)
	if err != nil {
		return serviceError(c, err, "An error occurred while logging in", "login")
	}

	return c.Status(fiber.StatusOK).JSON(loginResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
	})
}

// ChangeRole handles POST /api/account/change-role
// @Summary Replace a user's role
// @Tags Account
// @Accept json
// @Produce json
// @Param change body handlers.changeRoleRequest true "Role change"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /account/change-role [post]
func (h *AccountHandler) ChangeRole(c *fiber.Ctx) error {
	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "changeRole")
	}

	if err := h.Identity.ChangeRole(req.Username, req.Role); err != nil {
		return serviceError(c, err, "An error occurred while changing the role", "changeRole")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role updated successfully.",
	})
}

// GetUserRoles handles GET /api/account/user-roles/:username
// @Summary List a user's roles
// @Tags Account
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string][]string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /account/user-roles/{username} [get]
func (h *AccountHandler) GetUserRoles(c *fiber.Ctx) error {
	username := c.Params("username")

	roles, err := h.Identity.Roles(username)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving roles", "getUserRoles")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"username": username,
		"roles":    roles,
	})
}
