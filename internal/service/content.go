package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"youwatch-api/internal/domain"
)

// existence 只需要 Exists 的依赖
type existence interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// mustExist 被引用的记录不存在时返回 ErrValidation
func mustExist(ctx context.Context, s existence, what string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, what)
	}
	ok, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d does not exist", domain.ErrValidation, what, id)
	}
	return nil
}

type (
	ConteudoService = Crud[domain.Conteudo, *domain.Conteudo]
	PlaylistService = Crud[domain.Playlist, *domain.Playlist]
)

// NewConteudoService 每个 Conteudo 必须指向已存在的 Criador
func NewConteudoService(r domain.ConteudoRepository, criadores existence, l *zap.Logger) *ConteudoService {
	return NewCrud[domain.Conteudo, *domain.Conteudo](r, func(ctx context.Context, m *domain.Conteudo) error {
		m.Criador = nil
		m.ItemPlaylists = nil
		return mustExist(ctx, criadores, "criadorId", m.CriadorID)
	}, l)
}

// NewPlaylistService 每个 Playlist 必须指向已存在的 Usuario
func NewPlaylistService(r domain.PlaylistRepository, usuarios existence, l *zap.Logger) *PlaylistService {
	return NewCrud[domain.Playlist, *domain.Playlist](r, func(ctx context.Context, m *domain.Playlist) error {
		m.Usuario = nil
		m.ItemPlaylists = nil
		return mustExist(ctx, usuarios, "usuarioId", m.UsuarioID)
	}, l)
}
