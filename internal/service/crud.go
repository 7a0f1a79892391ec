package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"youwatch-api/internal/domain"
)

// Prepare 写入前的校验/改写（哈希、外键存在性等）
type Prepare[T any] func(ctx context.Context, m *T) error

// Crud 五个标准操作；UpdateResult 在这里翻译成领域错误
type Crud[T any, P interface {
	*T
	domain.Entity
}] struct {
	store   domain.Store[T]
	prepare Prepare[T]
	log     *zap.Logger
}

func NewCrud[T any, P interface {
	*T
	domain.Entity
}](store domain.Store[T], prepare Prepare[T], l *zap.Logger) *Crud[T, P] {
	if l == nil {
		l = zap.NewNop()
	}
	return &Crud[T, P]{store: store, prepare: prepare, log: l}
}

func (s *Crud[T, P]) List(ctx context.Context) ([]T, error) { return s.store.List(ctx) }

func (s *Crud[T, P]) Get(ctx context.Context, id uint) (*T, error) { return s.store.Get(ctx, id) }

func (s *Crud[T, P]) Exists(ctx context.Context, id uint) (bool, error) {
	return s.store.Exists(ctx, id)
}

func (s *Crud[T, P]) Create(ctx context.Context, m *T) error {
	if s.prepare != nil {
		if err := s.prepare(ctx, m); err != nil {
			return err
		}
	}
	return s.store.Create(ctx, m)
}

// Update 路径 id 必须等于 payload id，否则不写库
func (s *Crud[T, P]) Update(ctx context.Context, id uint, m *T) error {
	if got := P(m).Base().ID; got != id {
		return fmt.Errorf("%w: path id %d does not match payload id %d", domain.ErrValidation, id, got)
	}
	if s.prepare != nil {
		if err := s.prepare(ctx, m); err != nil {
			return err
		}
	}
	res, err := s.store.Update(ctx, id, m)
	if err != nil {
		return err
	}
	switch res {
	case domain.UpdateNotFound:
		return fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
	case domain.UpdateConflict:
		// 不重试，不合并
		s.log.Error("concurrent modification",
			zap.Uint("id", id),
			zap.String("type", fmt.Sprintf("%T", m)),
		)
		return fmt.Errorf("id %d: %w", id, domain.ErrConflict)
	}
	return nil
}

func (s *Crud[T, P]) Delete(ctx context.Context, id uint) error { return s.store.Delete(ctx, id) }
