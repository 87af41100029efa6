package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "safepost/internal/delivery/context"
	"safepost/internal/delivery/http/response"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for public-profile handlers.
type UserHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	AvatarURL   *string `json:"avatarUrl"`
	TwitterURL  *string `json:"twitterUrl"`
	GithubURL   *string `json:"githubUrl"`
	LinkedinURL *string `json:"linkedinUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
}

// GetPublicProfile returns a user's public profile, including the derived
// post count. The email is never included.
func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil || id == uuid.Nil {
		return err
	}

	user, err := h.uc.GetPublicProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewUserView(user, false), "")
}

// UpdateProfile updates the caller's own profile. Absent fields are left
// unchanged.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), deliverycontext.GetActor(c), &usecase.UpdateProfileInput{
		Name:        req.Name,
		Bio:         req.Bio,
		Location:    req.Location,
		AvatarURL:   req.AvatarURL,
		TwitterURL:  req.TwitterURL,
		GithubURL:   req.GithubURL,
		LinkedinURL: req.LinkedinURL,
		WebsiteURL:  req.WebsiteURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewUserView(user, true), "Profile updated successfully")
}
