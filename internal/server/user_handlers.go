package server

import (
	"postboard/internal/models"
	"postboard/internal/service"
	"postboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /users
// @Summary Create user
// @Description Register a new user. The password is never echoed back.
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers handles GET /users
// @Summary List users
// @Description Render one page of users ordered by id.
// @Tags users
// @Produce html
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size (max 100)" default(100)
// @Success 200 {string} string "users_list page"
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext(), parsePagination(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Render(views.UsersList, fiber.Map{
		"Title":   "Users",
		"Request": views.NewRequestInfo(c),
		"Users":   users,
	})
}

// EditUserForm handles GET /users/edit/:id
// @Summary Edit user form
// @Tags users
// @Produce html
// @Param id path int true "User ID"
// @Success 200 {string} string "edit_user page"
// @Failure 404 {string} string "not_found page"
// @Router /users/edit/{id} [get]
func (s *Server) EditUserForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return renderNotFound(c, err, "/users")
		}
		return s.respondError(c, err)
	}

	return c.Render(views.EditUser, fiber.Map{
		"Title":   "Edit user",
		"Request": views.NewRequestInfo(c),
		"User":    user,
	})
}

// UpdateUserEmail handles PUT /users/:id
// @Summary Update user email
// @Description Replace the email of a user. Responds with null when the user does not exist.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param new_email query string true "New email address"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (s *Server) UpdateUserEmail(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	email, err := requireParam(c, "new_email")
	if err != nil {
		return nil
	}

	user, err := s.userService.UpdateEmail(c.UserContext(), id, service.UpdateEmailInput{
		Email: email,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	if user == nil {
		return c.JSON(nil)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
// @Summary Delete user
// @Description Delete a user and all of its posts in one transaction.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// GetUserPosts handles GET /users/:id/posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size (max 100)" default(100)
// @Success 200 {array} models.Post
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListUserPosts(c.UserContext(), id, parsePagination(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(posts)
}
