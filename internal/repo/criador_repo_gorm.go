package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"youwatch-api/internal/domain"
)

type CriadorRepo struct {
	gormStore[domain.Criador, *domain.Criador]
}

func NewCriadorRepo(db *gorm.DB) *CriadorRepo {
	return &CriadorRepo{gormStore[domain.Criador, *domain.Criador]{
		db: db,
		cascade: func(tx *gorm.DB, id uint) error {
			owned := tx.Model(&domain.Conteudo{}).Select("id").Where("criador_id = ?", id)
			if err := tx.Where("conteudo_id IN (?)", owned).Delete(&domain.ItemPlaylist{}).Error; err != nil {
				return err
			}
			return tx.Where("criador_id = ?", id).Delete(&domain.Conteudo{}).Error
		},
	}}
}

func (r *CriadorRepo) FindByEmail(ctx context.Context, email string) (*domain.Criador, error) {
	var c domain.Criador
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
