// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"safepost/internal/domain/entity"
	"safepost/internal/usecase"

	"github.com/google/uuid"
)

// --- Response views ---
// Entities are never serialized directly: the user entity carries the
// credential hash, so every response goes through one of these views.

// UserView is the public projection of an account.
type UserView struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email,omitempty"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	Bio                string     `json:"bio,omitempty"`
	Location           string     `json:"location,omitempty"`
	AvatarURL          string     `json:"avatarUrl,omitempty"`
	TwitterURL         string     `json:"twitterUrl,omitempty"`
	GithubURL          string     `json:"githubUrl,omitempty"`
	LinkedinURL        string     `json:"linkedinUrl,omitempty"`
	WebsiteURL         string     `json:"websiteUrl,omitempty"`
	ProfileCompletedAt *time.Time `json:"profileCompletedAt,omitempty"`
	PostCount          int        `json:"postCount"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// NewUserView maps a user entity to its API projection. The email is only
// included for the account owner's own views.
func NewUserView(user *entity.User, includeEmail bool) *UserView {
	if user == nil {
		return nil
	}

	view := &UserView{
		ID:                 user.ID,
		Name:               user.Name,
		Role:               user.Role.String(),
		Bio:                user.Bio,
		Location:           user.Location,
		AvatarURL:          user.AvatarURL,
		TwitterURL:         user.TwitterURL,
		GithubURL:          user.GithubURL,
		LinkedinURL:        user.LinkedinURL,
		WebsiteURL:         user.WebsiteURL,
		ProfileCompletedAt: user.ProfileCompletedAt,
		PostCount:          user.PostCount,
		CreatedAt:          user.CreatedAt,
	}
	if includeEmail {
		view.Email = user.Email
	}

	return view
}

// AuthView is the login/registration response body.
type AuthView struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	User      *UserView `json:"user"`
}

// NewAuthView maps an auth result to its API projection.
func NewAuthView(output *usecase.AuthOutput) *AuthView {
	return &AuthView{
		Token:     output.Token,
		ExpiresIn: output.ExpiresIn,
		User:      NewUserView(output.User, true),
	}
}

// CategoryView is the API projection of a category.
type CategoryView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PostCount int       `json:"postCount"`
}

// NewCategoryView maps a category entity to its API projection.
func NewCategoryView(category *entity.Category) *CategoryView {
	if category == nil {
		return nil
	}

	return &CategoryView{
		ID:        category.ID,
		Name:      category.Name,
		PostCount: category.PostCount,
	}
}

// NewCategoryViews maps a category slice to API projections.
func NewCategoryViews(categories []*entity.Category) []*CategoryView {
	views := make([]*CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, NewCategoryView(category))
	}

	return views
}

// TagView is the API projection of a tag.
type TagView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PostCount int       `json:"postCount"`
}

// NewTagView maps a tag entity to its API projection.
func NewTagView(tag entity.Tag) *TagView {
	return &TagView{
		ID:        tag.ID,
		Name:      tag.Name,
		PostCount: tag.PostCount,
	}
}

// NewTagViews maps a tag slice to API projections.
func NewTagViews(tags []entity.Tag) []*TagView {
	views := make([]*TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, NewTagView(tag))
	}

	return views
}

// NewTagViewsFromPtrs maps a pointer tag slice to API projections.
func NewTagViewsFromPtrs(tags []*entity.Tag) []*TagView {
	views := make([]*TagView, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		views = append(views, NewTagView(*tag))
	}

	return views
}

// CoverImageView is the cover image metadata carried on a post.
type CoverImageView struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// PostView is the API projection of a post.
type PostView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Status      string          `json:"status"`
	ReadingTime int             `json:"readingTime"`
	ViewCount   int             `json:"viewCount"`
	LikesCount  int             `json:"likesCount"`
	CoverImage  *CoverImageView `json:"coverImage,omitempty"`
	Author      *UserView       `json:"author,omitempty"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Category    *CategoryView   `json:"category,omitempty"`
	Tags        []*TagView      `json:"tags"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewPostView maps a post entity to its API projection.
func NewPostView(post *entity.Post) *PostView {
	if post == nil {
		return nil
	}

	view := &PostView{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		Status:      post.Status.String(),
		ReadingTime: post.ReadingTime,
		ViewCount:   post.ViewCount,
		LikesCount:  post.LikesCount,
		Author:      NewUserView(post.Author, false),
		CategoryID:  post.CategoryID,
		Category:    NewCategoryView(post.Category),
		Tags:        NewTagViews(post.Tags),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.CoverImageURL != "" {
		view.CoverImage = &CoverImageView{
			URL:         post.CoverImageURL,
			Filename:    post.CoverImageFilename,
			Size:        post.CoverImageSize,
			ContentType: post.CoverImageContentType,
		}
	}

	return view
}

// NewPostViews maps a post slice to API projections.
func NewPostViews(posts []*entity.Post) []*PostView {
	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, NewPostView(post))
	}

	return views
}

// LikeStatusView is the like state of a post for the requesting viewer.
type LikeStatusView struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// NewLikeStatusView maps a like status to its API projection.
func NewLikeStatusView(output *usecase.LikeStatusOutput) *LikeStatusView {
	return &LikeStatusView{
		Liked:      output.Liked,
		LikesCount: output.LikesCount,
	}
}

// UploadView is the response body of a successful file upload.
type UploadView struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
