package router

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/core/cache"
	"youwatch-api/internal/core/config"
	"youwatch-api/internal/repo"
	"youwatch-api/internal/service"
	"youwatch-api/pkg/utils"
)

// Deps API engine 的全部依赖；DB 句柄显式传入
type Deps struct {
	Log    *zap.Logger
	DB     *gorm.DB
	JWT    *auth.JWTer
	Policy auth.Policy
	HTTP   config.HTTP
	Name   string

	Auth      *service.AuthService
	Usuarios  *service.UsuarioService
	Criadores *service.CriadorService
	Conteudos *service.ConteudoService
	Playlists *service.PlaylistService
	Itens     *service.ItemPlaylistService

	LoginRPS   float64
	LoginBurst int
}

// BuildDeps 组装 repo -> service
func BuildDeps(cfg *config.Config, db *gorm.DB, jwter *auth.JWTer, attempts cache.Counter, l *zap.Logger) (*Deps, error) {
	h := utils.NewHasher(cfg.Auth.BcryptCost)

	usuarios := repo.NewUsuarioRepo(db)
	criadores := repo.NewCriadorRepo(db)
	conteudos := repo.NewConteudoRepo(db)
	playlists := repo.NewPlaylistRepo(db)
	itens := repo.NewItemPlaylistRepo(db)

	authSvc, err := service.NewAuthService(usuarios, criadores, h, jwter, attempts, service.AuthOptions{
		MaxFailed: cfg.Auth.MaxFailedLogins,
		Window:    time.Duration(cfg.Auth.LoginWindowMin) * time.Minute,
	}, l.Named("auth"))
	if err != nil {
		return nil, err
	}

	return &Deps{
		Log:    l,
		DB:     db,
		JWT:    jwter,
		Policy: auth.DefaultPolicy(),
		HTTP:   cfg.App.HTTP,
		Name:   cfg.App.Name,

		Auth:      authSvc,
		Usuarios:  service.NewUsuarioService(usuarios, h, l),
		Criadores: service.NewCriadorService(criadores, h, l),
		Conteudos: service.NewConteudoService(conteudos, criadores, l),
		Playlists: service.NewPlaylistService(playlists, usuarios, l),
		Itens:     service.NewItemPlaylistService(itens, playlists, conteudos),

		LoginRPS:   cfg.Auth.LoginRPS,
		LoginBurst: cfg.Auth.LoginBurst,
	}, nil
}

// NewJWTer 由配置构造签发器
func NewJWTer(c config.JWT) *auth.JWTer {
	return &auth.JWTer{
		Secret:   []byte(c.Secret),
		Issuer:   c.Issuer,
		Audience: c.Audience,
		TTL:      time.Duration(c.AccessTokenTTLMin) * time.Minute,
	}
}
