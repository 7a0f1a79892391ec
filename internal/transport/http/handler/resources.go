package handler

import (
	"context"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/domain"
	"youwatch-api/internal/service"
	httpez "youwatch-api/internal/transport/http/ez"
)

// Resources 四个标准 CRUD 资源
type Resources struct {
	Usuarios  *service.UsuarioService
	Criadores *service.CriadorService
	Conteudos *service.ConteudoService
	Playlists *service.PlaylistService
}

func scrub(c *domain.Conta) { c.Senha = "" }

func (r *Resources) Mount(e httpez.EZ) {
	httpez.Crud[domain.Usuario, *domain.Usuario](e, httpez.CrudConfig[domain.Usuario]{
		Resource: "usuarios",
		Service:  r.Usuarios,
		Hooks: httpez.CrudHooks[domain.Usuario]{
			Own: func(ctx context.Context, id uint, p auth.Principal) error {
				return r.Usuarios.Owns(ctx, id, p.Email)
			},
			AfterGet: func(m *domain.Usuario) { scrub(&m.Conta) },
		},
	})

	httpez.Crud[domain.Criador, *domain.Criador](e, httpez.CrudConfig[domain.Criador]{
		Resource: "criadores",
		Service:  r.Criadores,
		Hooks: httpez.CrudHooks[domain.Criador]{
			Own: func(ctx context.Context, id uint, p auth.Principal) error {
				return r.Criadores.Owns(ctx, id, p.Email)
			},
			AfterGet: func(m *domain.Criador) { scrub(&m.Conta) },
		},
	})

	httpez.Crud[domain.Conteudo, *domain.Conteudo](e, httpez.CrudConfig[domain.Conteudo]{
		Resource: "conteudos",
		Service:  r.Conteudos,
		Hooks: httpez.CrudHooks[domain.Conteudo]{
			AfterGet: func(m *domain.Conteudo) {
				if m.Criador != nil {
					scrub(&m.Criador.Conta)
				}
			},
		},
	})

	httpez.Crud[domain.Playlist, *domain.Playlist](e, httpez.CrudConfig[domain.Playlist]{
		Resource: "playlists",
		Service:  r.Playlists,
	})
}
