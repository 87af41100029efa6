package impl

import (
	"context"
	"log/slog"
	"strings"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// wordsPerMinute is the reading speed used to derive the reading time shown
// on post cards.
const wordsPerMinute = 200

// postService implements the PostUsecase interface.
type postService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.PostUsecase {
	return &postService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetPost returns one post. Drafts are only visible to their author or an
// admin; published reads increment the view counter.
func (srv *postService) GetPost(ctx context.Context, id uuid.UUID, actor *usecase.Actor) (*entity.Post, error) {
	var post *entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.NewPostRepository()

		found, err := postRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound.WrapMessage("post lookup failed")
			}

			return errors.Wrap(err, "failed to find post")
		}

		if found.Status == entity.PostStatusDraft && !canModify(actor, found.AuthorID) {
			// A hidden draft looks identical to a missing post.
			return domainerrors.ErrPostNotFound.WrapMessage("draft not visible")
		}

		if found.Status == entity.PostStatusPublished {
			if err := postRepo.IncrementViewCount(ctx, id); err != nil {
				return errors.Wrap(err, "failed to increment view count")
			}
			found.ViewCount++
		}
		post = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get post")
	}

	return post, nil
}

// ListPublished lists published posts matching the filter, newest first.
func (srv *postService) ListPublished(ctx context.Context, input *usecase.ListPostsInput) ([]*entity.Post, error) {
	var posts []*entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewPostRepository().FindPublished(ctx, input.Filter())
		if err != nil {
			return errors.Wrap(err, "failed to list published posts")
		}
		posts = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// ListDrafts lists the actor's own draft posts, newest first.
func (srv *postService) ListDrafts(ctx context.Context, actor *usecase.Actor) ([]*entity.Post, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("drafts require a signed-in author")
	}

	var posts []*entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewPostRepository().FindDraftsByAuthor(ctx, actor.ID)
		if err != nil {
			return errors.Wrap(err, "failed to list drafts")
		}
		posts = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list drafts")
	}

	return posts, nil
}

// CreatePost creates a post authored by the actor.
func (srv *postService) CreatePost(ctx context.Context, actor *usecase.Actor, input *usecase.CreatePostInput) (*entity.Post, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("posting requires a signed-in author")
	}
	srv.logger.Info("Creating post", "authorID", actor.ID, "status", input.Status)

	var post *entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// 1. The category must exist.
		if _, err := repoFactory.NewCategoryRepository().FindByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound.WrapMessage("post creation failed")
			}

			return errors.Wrap(err, "failed to find category")
		}

		// 2. Every referenced tag must exist. The IDs are a set: a repeated
		// ID must not read as a missing tag.
		tags, err := repoFactory.NewTagRepository().FindByIDs(ctx, dedupeTagIDs(input.TagIDs))
		if err != nil {
			if errors.Is(err, repository.ErrTagNotFound) {
				return domainerrors.ErrTagNotFound.WrapMessage("post creation failed")
			}

			return errors.Wrap(err, "failed to find tags")
		}

		newPost := &entity.Post{
			Title:                 strings.TrimSpace(input.Title),
			Content:               input.Content,
			Status:                input.Status,
			ReadingTime:           estimateReadingTime(input.Content),
			CoverImageURL:         input.CoverImageURL,
			CoverImageFilename:    input.CoverImageFilename,
			CoverImageSize:        input.CoverImageSize,
			CoverImageContentType: input.CoverImageContentType,
			AuthorID:              actor.ID,
			CategoryID:            input.CategoryID,
			Tags:                  tags,
		}

		if err := repoFactory.NewPostRepository().Create(ctx, newPost); err != nil {
			return errors.WithStack(err)
		}
		post = newPost

		return nil
	})

	if err != nil {
		srv.logger.Warn("Post creation failed", "authorID", actor.ID, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute post creation transaction")
	}

	return srv.reload(ctx, post.ID)
}

// UpdatePost replaces a post's content. Only the author or an admin may update.
func (srv *postService) UpdatePost(ctx context.Context, actor *usecase.Actor, id uuid.UUID, input *usecase.UpdatePostInput) (*entity.Post, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("editing requires a signed-in author")
	}
	srv.logger.Info("Updating post", "postID", id, "actorID", actor.ID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.NewPostRepository()

		// 1. Load and gate on ownership.
		post, err := postRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound.WrapMessage("post update failed")
			}

			return errors.Wrap(err, "failed to find post")
		}
		if !canModify(actor, post.AuthorID) {
			return domainerrors.ErrNotPostAuthor.WrapMessage("post update denied")
		}

		// 2. Validate the new category and tag references.
		if _, err := repoFactory.NewCategoryRepository().FindByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound.WrapMessage("post update failed")
			}

			return errors.Wrap(err, "failed to find category")
		}
		tags, err := repoFactory.NewTagRepository().FindByIDs(ctx, dedupeTagIDs(input.TagIDs))
		if err != nil {
			if errors.Is(err, repository.ErrTagNotFound) {
				return domainerrors.ErrTagNotFound.WrapMessage("post update failed")
			}

			return errors.Wrap(err, "failed to find tags")
		}

		// 3. Apply the replacement.
		post.Title = strings.TrimSpace(input.Title)
		post.Content = input.Content
		post.Status = input.Status
		post.ReadingTime = estimateReadingTime(input.Content)
		post.CategoryID = input.CategoryID
		post.Tags = tags
		post.CoverImageURL = input.CoverImageURL
		post.CoverImageFilename = input.CoverImageFilename
		post.CoverImageSize = input.CoverImageSize
		post.CoverImageContentType = input.CoverImageContentType

		if err := postRepo.Update(ctx, post); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Post update failed", "postID", id, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute post update transaction")
	}

	return srv.reload(ctx, id)
}

// DeletePost removes a post. Only the author or an admin may delete.
func (srv *postService) DeletePost(ctx context.Context, actor *usecase.Actor, id uuid.UUID) error {
	if actor == nil {
		return domainerrors.ErrUnauthenticated.WrapMessage("deleting requires a signed-in author")
	}
	srv.logger.Info("Deleting post", "postID", id, "actorID", actor.ID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.NewPostRepository()

		post, err := postRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound.WrapMessage("post deletion failed")
			}

			return errors.Wrap(err, "failed to find post")
		}
		if !canModify(actor, post.AuthorID) {
			return domainerrors.ErrNotPostAuthor.WrapMessage("post deletion denied")
		}

		if err := postRepo.Delete(ctx, id); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Post deletion failed", "postID", id, "error", err.Error())

		return errors.Wrap(err, "failed to execute post deletion transaction")
	}

	return nil
}

// reload fetches a post with all associations preloaded, for returning the
// complete representation after a write.
func (srv *postService) reload(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post *entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewPostRepository().FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to reload post")
		}
		post = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to reload post")
	}

	return post, nil
}

// canModify implements the ownership gate: the author may touch their own
// post, an admin may touch any post.
func canModify(actor *usecase.Actor, authorID uuid.UUID) bool {
	if actor == nil {
		return false
	}

	return actor.ID == authorID || actor.IsAdmin()
}

// dedupeTagIDs collapses repeated IDs while keeping first-seen order, so the
// existence check compares against the number of distinct tags requested.
func dedupeTagIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}

// estimateReadingTime derives the reading time in minutes from the content
// length, rounding up and never reporting zero.
func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}

	return minutes
}
