package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"youwatch-api/internal/domain"
)

type UsuarioRepo struct {
	gormStore[domain.Usuario, *domain.Usuario]
}

func NewUsuarioRepo(db *gorm.DB) *UsuarioRepo {
	return &UsuarioRepo{gormStore[domain.Usuario, *domain.Usuario]{
		db: db,
		// 删除用户时级联删除其 playlist 及条目
		cascade: func(tx *gorm.DB, id uint) error {
			owned := tx.Model(&domain.Playlist{}).Select("id").Where("usuario_id = ?", id)
			if err := tx.Where("playlist_id IN (?)", owned).Delete(&domain.ItemPlaylist{}).Error; err != nil {
				return err
			}
			return tx.Where("usuario_id = ?", id).Delete(&domain.Playlist{}).Error
		},
	}}
}

func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id").First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
