package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"youwatch-api/internal/domain"
)

type ItemPlaylistRepo struct{ db *gorm.DB }

func NewItemPlaylistRepo(db *gorm.DB) *ItemPlaylistRepo { return &ItemPlaylistRepo{db: db} }

func (r *ItemPlaylistRepo) ListByPlaylist(ctx context.Context, playlistID uint) ([]domain.ItemPlaylist, error) {
	out := make([]domain.ItemPlaylist, 0)
	err := r.db.WithContext(ctx).
		Preload("Conteudo").
		Where("playlist_id = ?", playlistID).
		Order("conteudo_id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ItemPlaylistRepo) Get(ctx context.Context, playlistID, conteudoID uint) (*domain.ItemPlaylist, error) {
	var it domain.ItemPlaylist
	err := r.db.WithContext(ctx).
		Preload("Conteudo").
		Where("playlist_id = ? AND conteudo_id = ?", playlistID, conteudoID).
		First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item (%d, %d): %w", playlistID, conteudoID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Add 复合主键保证同一 (playlist, conteudo) 只出现一次
func (r *ItemPlaylistRepo) Add(ctx context.Context, item *domain.ItemPlaylist) error {
	row := domain.ItemPlaylist{PlaylistID: item.PlaylistID, ConteudoID: item.ConteudoID}
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *ItemPlaylistRepo) Remove(ctx context.Context, playlistID, conteudoID uint) error {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND conteudo_id = ?", playlistID, conteudoID).
		Delete(&domain.ItemPlaylist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item (%d, %d): %w", playlistID, conteudoID, domain.ErrNotFound)
	}
	return nil
}
