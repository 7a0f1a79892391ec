package service

import (
	"context"
	"fmt"

	"youwatch-api/internal/domain"
)

type ItemPlaylistService struct {
	itens     domain.ItemPlaylistRepository
	playlists existence
	conteudos existence
}

func NewItemPlaylistService(itens domain.ItemPlaylistRepository, playlists, conteudos existence) *ItemPlaylistService {
	return &ItemPlaylistService{itens: itens, playlists: playlists, conteudos: conteudos}
}

func (s *ItemPlaylistService) playlist(ctx context.Context, id uint) error {
	ok, err := s.playlists.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("playlist %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *ItemPlaylistService) List(ctx context.Context, playlistID uint) ([]domain.ItemPlaylist, error) {
	if err := s.playlist(ctx, playlistID); err != nil {
		return nil, err
	}
	return s.itens.ListByPlaylist(ctx, playlistID)
}

// Add playlist 不存在 -> NotFound；conteudo 不存在 -> Validation；重复 -> Duplicate
func (s *ItemPlaylistService) Add(ctx context.Context, playlistID, conteudoID uint) (*domain.ItemPlaylist, error) {
	if err := s.playlist(ctx, playlistID); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, s.conteudos, "conteudoId", conteudoID); err != nil {
		return nil, err
	}
	if err := s.itens.Add(ctx, &domain.ItemPlaylist{PlaylistID: playlistID, ConteudoID: conteudoID}); err != nil {
		return nil, err
	}
	return s.itens.Get(ctx, playlistID, conteudoID)
}

func (s *ItemPlaylistService) Remove(ctx context.Context, playlistID, conteudoID uint) error {
	if err := s.playlist(ctx, playlistID); err != nil {
		return err
	}
	return s.itens.Remove(ctx, playlistID, conteudoID)
}
