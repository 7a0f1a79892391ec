package repo

import (
	"gorm.io/gorm"

	"youwatch-api/internal/domain"
)

type PlaylistRepo struct {
	gormStore[domain.Playlist, *domain.Playlist]
}

func NewPlaylistRepo(db *gorm.DB) *PlaylistRepo {
	return &PlaylistRepo{gormStore[domain.Playlist, *domain.Playlist]{
		db:      db,
		preload: []string{"ItemPlaylists.Conteudo"},
		cascade: func(tx *gorm.DB, id uint) error {
			return tx.Where("playlist_id = ?", id).Delete(&domain.ItemPlaylist{}).Error
		},
	}}
}
