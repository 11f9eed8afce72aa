package posts

import (
	"context"
	"fmt"
)

// Service orchestrates post CRUD over a Store. Mutations run in one
// transaction each.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (uint, error) {
	post := req.toEntity()
	err := s.store.Transaction(ctx, func(tx Store) error {
		return tx.Save(ctx, post)
	})
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return post.ID, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (PostView, error) {
	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		return PostView{}, fmt.Errorf("get post: %w", err)
	}
	return newPostView(post), nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (PostView, error) {
	post, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return PostView{}, fmt.Errorf("get post: %w", err)
	}
	return newPostView(post), nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (uint, error) {
	err := s.store.Transaction(ctx, func(tx Store) error {
		post, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		post.Update(req.Title, req.Content, req.Author)
		return tx.Save(ctx, post)
	})
	if err != nil {
		return 0, fmt.Errorf("update post: %w", err)
	}
	return id, nil
}

func (s *Service) ListAllDescending(ctx context.Context) ([]PostListView, error) {
	list, err := s.store.FindAllDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	views := make([]PostListView, 0, len(list))
	for i := range list {
		views = append(views, newPostListView(&list[i]))
	}
	return views, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx Store) error {
		post, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return tx.Delete(ctx, post)
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
