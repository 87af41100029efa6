package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "safepost/internal/delivery/context"
	"safepost/internal/delivery/http/response"
	"safepost/internal/domain/entity"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PostHandler holds dependencies for post-related handlers.
type PostHandler struct {
	uc     usecase.PostUsecase
	likeUC usecase.LikeUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler, injected by Fx.
func NewPostHandler(uc usecase.PostUsecase, likeUC usecase.LikeUsecase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		uc:     uc,
		likeUC: likeUC,
		logger: logger,
	}
}

type postRequest struct {
	Title      string      `json:"title" validate:"required"`
	Content    string      `json:"content" validate:"required"`
	Status     string      `json:"status" validate:"required,oneof=DRAFT PUBLISHED"`
	CategoryID uuid.UUID   `json:"categoryId" validate:"required"`
	TagIDs     []uuid.UUID `json:"tagIds"`

	CoverImage *coverImageRequest `json:"coverImage"`
}

type coverImageRequest struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, response.BadRequest(c, "INVALID_ID", "Invalid identifier in path")
	}

	return id, nil
}

// listFilter reads the shared published-listing query parameters.
func listFilter(c echo.Context) (*usecase.ListPostsInput, error) {
	input := &usecase.ListPostsInput{}

	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, response.BadRequest(c, "INVALID_ID", "Invalid categoryId query parameter")
		}
		input.CategoryID = &id
	}

	if raw := c.QueryParam("tagId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, response.BadRequest(c, "INVALID_ID", "Invalid tagId query parameter")
		}
		input.TagID = &id
	}

	return input, nil
}

// ListPublished handles the published-post listing, optionally narrowed by
// category or tag.
func (h *PostHandler) ListPublished(c echo.Context) error {
	input, err := listFilter(c)
	if err != nil || input == nil {
		return err
	}

	posts, err := h.uc.ListPublished(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPostViews(posts), "")
}

// Search handles full-text search over published posts.
func (h *PostHandler) Search(c echo.Context) error {
	input, err := listFilter(c)
	if err != nil || input == nil {
		return err
	}
	input.Query = c.QueryParam("q")

	posts, err := h.uc.ListPublished(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPostViews(posts), "")
}

// ListDrafts returns the caller's own drafts.
func (h *PostHandler) ListDrafts(c echo.Context) error {
	posts, err := h.uc.ListDrafts(c.Request().Context(), deliverycontext.GetActor(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPostViews(posts), "")
}

// GetPost returns a single post. Published reads count a view; drafts are
// only visible to their author or an admin.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	post, err := h.uc.GetPost(c.Request().Context(), id, deliverycontext.GetActor(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPostView(post), "")
}

// CreatePost handles post creation.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.uc.CreatePost(c.Request().Context(), deliverycontext.GetActor(c), createInput(&req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewPostView(post), "Post created successfully")
}

// UpdatePost handles full replacement of a post. Only the author or an admin
// may update.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := createInput(&req)
	post, err := h.uc.UpdatePost(c.Request().Context(), deliverycontext.GetActor(c), id, &usecase.UpdatePostInput{
		Title:                 input.Title,
		Content:               input.Content,
		Status:                input.Status,
		CategoryID:            input.CategoryID,
		TagIDs:                input.TagIDs,
		CoverImageURL:         input.CoverImageURL,
		CoverImageFilename:    input.CoverImageFilename,
		CoverImageSize:        input.CoverImageSize,
		CoverImageContentType: input.CoverImageContentType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPostView(post), "Post updated successfully")
}

// DeletePost handles post deletion. Only the author or an admin may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	if err := h.uc.DeletePost(c.Request().Context(), deliverycontext.GetActor(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Post deleted successfully")
}

// ToggleLike flips the caller's like on a post.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	status, err := h.likeUC.ToggleLike(c.Request().Context(), deliverycontext.GetActor(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewLikeStatusView(status), "")
}

// GetLikeStatus returns the like state of a post for the caller. Anonymous
// viewers always see liked=false.
func (h *PostHandler) GetLikeStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	status, err := h.likeUC.GetLikeStatus(c.Request().Context(), deliverycontext.GetActor(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewLikeStatusView(status), "")
}

func createInput(req *postRequest) *usecase.CreatePostInput {
	input := &usecase.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Status:     entity.PostStatus(req.Status),
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	}
	if req.CoverImage != nil {
		input.CoverImageURL = req.CoverImage.URL
		input.CoverImageFilename = req.CoverImage.Filename
		input.CoverImageSize = req.CoverImage.Size
		input.CoverImageContentType = req.CoverImage.ContentType
	}

	return input
}
