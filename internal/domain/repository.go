package domain

import "context"

// Store 每个带代理主键的实体统一的存取契约
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, m *T) error
	Update(ctx context.Context, id uint, m *T) (UpdateResult, error)
	Delete(ctx context.Context, id uint) error
}

// CredentialStore 按邮箱查找主体；找不到返回 (nil, nil)
type CredentialStore[T any] interface {
	FindByEmail(ctx context.Context, email string) (*T, error)
}

type UsuarioRepository interface {
	Store[Usuario]
	CredentialStore[Usuario]
}

type CriadorRepository interface {
	Store[Criador]
	CredentialStore[Criador]
}

type ConteudoRepository interface {
	Store[Conteudo]
}

type PlaylistRepository interface {
	Store[Playlist]
}

type ItemPlaylistRepository interface {
	ListByPlaylist(ctx context.Context, playlistID uint) ([]ItemPlaylist, error)
	Get(ctx context.Context, playlistID, conteudoID uint) (*ItemPlaylist, error)
	Add(ctx context.Context, item *ItemPlaylist) error
	Remove(ctx context.Context, playlistID, conteudoID uint) error
}
