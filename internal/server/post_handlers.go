package server

import (
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts?page=&tag=&username=
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	page, err := s.parsePage(c)
	if err != nil {
		return nil
	}

	filter := repository.PostFilter{
		Tag:      c.Query("tag"),
		Username: c.Query("username"),
	}

	posts, total, err := s.postRepo.List(ctx, filter, postsPerPage, (page-1)*postsPerPage)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	lastPage := (total + postsPerPage - 1) / postsPerPage
	c.Set("Last-Page", strconv.FormatInt(lastPage, 10))

	for _, post := range posts {
		post.TruncateBody(models.PreviewBodyLimit)
	}

	filtered := "no"
	if filter.Tag != "" || filter.Username != "" {
		filtered = "yes"
	}
	observability.PostsListed.WithLabelValues(filtered).Inc()

	return c.JSON(posts)
}

// ReadPost handles the final step of GET /api/posts/:id. LoadPost has already
// resolved the identifier and attached the post.
func (s *Server) ReadPost(c *fiber.Ctx) error {
	post := c.Locals("post").(*models.Post)
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title string      `json:"title"`
		Body  string      `json:"body"`
		Tags  models.Tags `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if req.Body == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Body is required"))
	}
	if req.Tags == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Tags are required"))
	}

	post := &models.Post{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		UserID: userID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Reload to include owner data in the response
	post, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id. Only provided fields change; an
// empty diff is legal. The response carries the post state after
// modification.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	post := c.Locals("post").(*models.Post)

	var req struct {
		Title *string      `json:"title"`
		Body  *string      `json:"body"`
		Tags  *models.Tags `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil && *req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title cannot be empty"))
	}
	if req.Body != nil && *req.Body == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Body cannot be empty"))
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	post := c.Locals("post").(*models.Post)

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
