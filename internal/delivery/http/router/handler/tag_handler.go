package handler

import (
	"log/slog"
	"net/http"

	"safepost/internal/delivery/http/response"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TagHandler holds dependencies for tag handlers.
type TagHandler struct {
	uc     usecase.TagUsecase
	logger *slog.Logger
}

// NewTagHandler is the constructor for TagHandler, injected by Fx.
func NewTagHandler(uc usecase.TagUsecase, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		uc:     uc,
		logger: logger,
	}
}

type createTagsRequest struct {
	Names []string `json:"names" validate:"required,min=1"`
}

// ListTags returns all tags with post counts.
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.uc.ListTags(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewTagViewsFromPtrs(tags), "")
}

// CreateTags ensures a tag exists for each given name and returns the full
// resulting set. Existing names are reused rather than duplicated.
func (h *TagHandler) CreateTags(c echo.Context) error {
	var req createTagsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tag input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tags, err := h.uc.CreateTags(c.Request().Context(), &usecase.CreateTagsInput{Names: req.Names})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewTagViews(tags), "Tags created successfully")
}

// DeleteTag removes a tag. Refused while posts still use it.
func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	if err := h.uc.DeleteTag(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tag deleted successfully")
}
