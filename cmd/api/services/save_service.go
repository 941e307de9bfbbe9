package services

import (
	"context"
	"errors"

	"blog-fusion/engagement"
	"blog-fusion/models"
	"blog-fusion/repositories"
)

// SavedStore 는 저장 목록 조작에 필요한 저장소 동작이다.
type SavedStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetSavedBlogIDs(ctx context.Context, id string, savedIDs []string) error
}

// SavedBlogFinder 는 저장 목록을 블로그 문서로 확장한다.
type SavedBlogFinder interface {
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Blog, error)
}

// SaveService 는 사용자별 저장(북마크) 목록을 관리한다.
// 저장 관계는 사용자 문서에만 존재하며 블로그 문서는 건드리지 않는다.
type SaveService struct {
	users SavedStore
	blogs SavedBlogFinder
}

func NewSaveService(users SavedStore, blogs SavedBlogFinder) *SaveService {
	return &SaveService{users: users, blogs: blogs}
}

// Toggle 은 blogID 의 저장 여부를 토글하고, 토글 후 저장 상태를 반환한다.
func (s *SaveService) Toggle(ctx context.Context, userID, blogID string) (saved bool, err error) {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrBlogNotFound
		}
		return false, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	next := engagement.ApplySave(user.SavedBlogIDs, blogID)
	if err := s.users.SetSavedBlogIDs(ctx, userID, next); err != nil {
		return false, err
	}

	for _, id := range next {
		if id == blogID {
			return true, nil
		}
	}
	return false, nil
}

// Unsave 는 blogID 를 저장 목록에서 제거한다. 목록에 없어도 에러가 아니다.
func (s *SaveService) Unsave(ctx context.Context, userID, blogID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	next := engagement.RemoveSave(user.SavedBlogIDs, blogID)
	if len(next) == len(user.SavedBlogIDs) {
		return nil
	}
	return s.users.SetSavedBlogIDs(ctx, userID, next)
}

// ListSaved 는 저장한 블로그 문서를 반환한다. 삭제된 블로그는 건너뛴다.
func (s *SaveService) ListSaved(ctx context.Context, userID string) ([]models.Blog, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if len(user.SavedBlogIDs) == 0 {
		return []models.Blog{}, nil
	}
	return s.blogs.FindByIDs(ctx, user.SavedBlogIDs)
}
