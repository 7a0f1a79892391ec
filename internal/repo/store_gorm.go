package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"youwatch-api/internal/domain"
)

// gormStore 通用 CRUD；P 约束保证 *T 带 domain.Model
type gormStore[T any, P interface {
	*T
	domain.Entity
}] struct {
	db      *gorm.DB
	preload []string
	// cascade 在同一事务内、删除主记录之前执行
	cascade func(tx *gorm.DB, id uint) error
}

func (s *gormStore[T, P]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preload {
		q = q.Preload(p)
	}
	return q
}

func (s *gormStore[T, P]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := s.query(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormStore[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	var m T
	err := s.query(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *gormStore[T, P]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *gormStore[T, P]) Create(ctx context.Context, m *T) error {
	b := P(m).Base()
	b.ID, b.Version = 0, 1
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error)
}

// Update 全量更新 + 乐观锁：UPDATE ... WHERE id = ? AND version = ?
// payload 的 version 为 0 时以当前读到的版本为准
func (s *gormStore[T, P]) Update(ctx context.Context, id uint, m *T) (domain.UpdateResult, error) {
	db := s.db.WithContext(ctx)

	var cur T
	err := db.Select("id", "version", "created_at").Where("id = ?", id).First(&cur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UpdateNotFound, nil
	}
	if err != nil {
		return 0, err
	}

	b, cb := P(m).Base(), P(&cur).Base()
	expected := b.Version
	if expected == 0 {
		expected = cb.Version
	}
	b.ID = id
	b.Version = expected + 1
	b.CreatedAt = cb.CreatedAt

	res := db.Model(m).
		Where("version = ?", expected).
		Select("*").
		Omit(clause.Associations).
		Updates(m)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return domain.UpdateSuccess, nil
	}

	// 版本不匹配：记录还在 -> 冲突；已被删 -> NotFound
	ok, err := s.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return domain.UpdateNotFound, nil
	}
	return domain.UpdateConflict, nil
}

func (s *gormStore[T, P]) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.cascade != nil {
			if err := s.cascade(tx, id); err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(new(T))
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

// translate 把约束错误映射为领域错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey) || isDupKey(err):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated) || isFKViolation(err):
		return fmt.Errorf("%w: referenced record does not exist", domain.ErrValidation)
	}
	return err
}

func isDupKey(err error) bool {
	// 不完全依赖 gorm.ErrDuplicatedKey，部分驱动不做翻译
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func isFKViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "violates foreign key")
}
