package server

import (
	"postboard/internal/models"
	"postboard/internal/service"
	"postboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts?user_id=
// @Summary Create post
// @Description Create a post owned by the user given in the query string.
// @Tags posts
// @Accept json
// @Produce json
// @Param user_id query int true "Owner user ID"
// @Param request body object{title=string,content=string} true "New post"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := parseQueryID(c, "user_id", "user ID")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title" form:"title"`
		Content string `json:"content" form:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}); err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Post created successfully"})
}

// ListPosts handles GET /posts
// @Summary List posts
// @Description Render one page of posts ordered by id.
// @Tags posts
// @Produce html
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size (max 100)" default(100)
// @Success 200 {string} string "posts_list page"
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext(), parsePagination(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Render(views.PostsList, fiber.Map{
		"Title":   "Posts",
		"Request": views.NewRequestInfo(c),
		"Posts":   posts,
	})
}

// CreatePostForm handles GET /posts/create
// @Summary New post form
// @Tags posts
// @Produce html
// @Success 200 {string} string "create_post page"
// @Router /posts/create [get]
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	return c.Render(views.CreatePost, fiber.Map{
		"Title":   "New post",
		"Request": views.NewRequestInfo(c),
	})
}

// EditPostForm handles GET /posts/edit/:id
// @Summary Edit post form
// @Tags posts
// @Produce html
// @Param id path int true "Post ID"
// @Success 200 {string} string "edit_post page"
// @Failure 404 {string} string "not_found page"
// @Router /posts/edit/{id} [get]
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return renderNotFound(c, err, "/posts")
		}
		return s.respondError(c, err)
	}

	return c.Render(views.EditPost, fiber.Map{
		"Title":   "Edit post",
		"Request": views.NewRequestInfo(c),
		"Post":    post,
	})
}

// UpdatePostContent handles PUT /posts/:id
// @Summary Update post content
// @Description Replace the content of a post. Responds with null when the post does not exist.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param content query string true "New content"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePostContent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	content, err := requireParam(c, "content")
	if err != nil {
		return nil
	}

	post, err := s.postService.UpdateContent(c.UserContext(), id, service.UpdateContentInput{
		Content: content,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	if post == nil {
		return c.JSON(nil)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
