package repo

import (
	"gorm.io/gorm"

	"youwatch-api/internal/domain"
)

type ConteudoRepo struct {
	gormStore[domain.Conteudo, *domain.Conteudo]
}

func NewConteudoRepo(db *gorm.DB) *ConteudoRepo {
	return &ConteudoRepo{gormStore[domain.Conteudo, *domain.Conteudo]{
		db:      db,
		preload: []string{"Criador"},
		cascade: func(tx *gorm.DB, id uint) error {
			return tx.Where("conteudo_id = ?", id).Delete(&domain.ItemPlaylist{}).Error
		},
	}}
}
