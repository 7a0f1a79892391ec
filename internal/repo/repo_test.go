package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youwatch-api/internal/domain"
	"youwatch-api/internal/testutils"
)

var (
	_ domain.UsuarioRepository      = (*UsuarioRepo)(nil)
	_ domain.CriadorRepository      = (*CriadorRepo)(nil)
	_ domain.ConteudoRepository     = (*ConteudoRepo)(nil)
	_ domain.PlaylistRepository     = (*PlaylistRepo)(nil)
	_ domain.ItemPlaylistRepository = (*ItemPlaylistRepo)(nil)
)

type fixture struct {
	usuarios  *UsuarioRepo
	criadores *CriadorRepo
	conteudos *ConteudoRepo
	playlists *PlaylistRepo
	itens     *ItemPlaylistRepo
}

func newFixture(t *testing.T) fixture {
	db := testutils.OpenTestDB(t)
	return fixture{
		usuarios:  NewUsuarioRepo(db),
		criadores: NewCriadorRepo(db),
		conteudos: NewConteudoRepo(db),
		playlists: NewPlaylistRepo(db),
		itens:     NewItemPlaylistRepo(db),
	}
}

// seed Criador -> Conteudo, Usuario -> Playlist -> Item
func (f fixture) seed(t *testing.T) (*domain.Criador, *domain.Conteudo, *domain.Usuario, *domain.Playlist) {
	t.Helper()
	ctx := context.Background()
	cr := &domain.Criador{Conta: domain.Conta{Nome: "Ana", Email: "ana@x.com", Senha: "digest"}}
	require.NoError(t, f.criadores.Create(ctx, cr))
	ct := &domain.Conteudo{Titulo: "Video 1", Tipo: "video", CriadorID: cr.ID}
	require.NoError(t, f.conteudos.Create(ctx, ct))
	u := &domain.Usuario{Conta: domain.Conta{Nome: "Bia", Email: "bia@x.com", Senha: "digest"}}
	require.NoError(t, f.usuarios.Create(ctx, u))
	pl := &domain.Playlist{Nome: "Favoritos", UsuarioID: u.ID}
	require.NoError(t, f.playlists.Create(ctx, pl))
	require.NoError(t, f.itens.Add(ctx, &domain.ItemPlaylist{PlaylistID: pl.ID, ConteudoID: ct.ID}))
	return cr, ct, u, pl
}

func TestCreateAssignsIDAndVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := &domain.Usuario{Model: domain.Model{ID: 99, Version: 7}, Conta: domain.Conta{Nome: "Bia", Email: "bia@x.com", Senha: "digest"}}
	require.NoError(t, f.usuarios.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, uint(99), u.ID)
	assert.Equal(t, uint(1), u.Version)

	got, err := f.usuarios.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bia@x.com", got.Email)
	assert.Equal(t, uint(1), got.Version)
}

func TestGetMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.conteudos.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPreloads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cr, ct, _, pl := f.seed(t)

	cs, err := f.conteudos.List(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.NotNil(t, cs[0].Criador)
	assert.Equal(t, cr.Email, cs[0].Criador.Email)

	ps, err := f.playlists.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, pl.ID, ps[0].ID)
	require.Len(t, ps[0].ItemPlaylists, 1)
	require.NotNil(t, ps[0].ItemPlaylists[0].Conteudo)
	assert.Equal(t, ct.Titulo, ps[0].ItemPlaylists[0].Conteudo.Titulo)
}

func TestListEmpty(t *testing.T) {
	f := newFixture(t)
	out, err := f.criadores.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestUpdateOptimistic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, ct, _, _ := f.seed(t)

	// 当前版本
	upd := &domain.Conteudo{Model: domain.Model{ID: ct.ID, Version: 1}, Titulo: "Novo", Tipo: "audio", CriadorID: ct.CriadorID}
	res, err := f.conteudos.Update(ctx, ct.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateSuccess, res)

	got, err := f.conteudos.Get(ctx, ct.ID)
	require.NoError(t, err)
	assert.Equal(t, "Novo", got.Titulo)
	assert.Equal(t, "audio", got.Tipo)
	assert.Equal(t, uint(2), got.Version)
	assert.False(t, got.CreatedAt.IsZero())

	// 过期版本 -> 冲突，数据不变
	stale := &domain.Conteudo{Model: domain.Model{ID: ct.ID, Version: 1}, Titulo: "Velho", CriadorID: ct.CriadorID}
	res, err = f.conteudos.Update(ctx, ct.ID, stale)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateConflict, res)

	got, err = f.conteudos.Get(ctx, ct.ID)
	require.NoError(t, err)
	assert.Equal(t, "Novo", got.Titulo)

	// 未带版本号按当前版本处理
	noVer := &domain.Conteudo{Model: domain.Model{ID: ct.ID}, Titulo: "Sem versao", CriadorID: ct.CriadorID}
	res, err = f.conteudos.Update(ctx, ct.ID, noVer)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateSuccess, res)
	assert.Equal(t, uint(3), noVer.Version)
}

func TestUpdateMissing(t *testing.T) {
	f := newFixture(t)
	res, err := f.usuarios.Update(context.Background(), 7, &domain.Usuario{Model: domain.Model{ID: 7}, Conta: domain.Conta{Email: "x@x.com", Senha: "digest"}})
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateNotFound, res)
}

func TestDeleteMissing(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.playlists.Delete(context.Background(), 5), domain.ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()

	t.Run("conteudo removes items", func(t *testing.T) {
		f := newFixture(t)
		_, ct, _, pl := f.seed(t)
		require.NoError(t, f.conteudos.Delete(ctx, ct.ID))
		items, err := f.itens.ListByPlaylist(ctx, pl.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("criador removes conteudos", func(t *testing.T) {
		f := newFixture(t)
		cr, ct, _, pl := f.seed(t)
		require.NoError(t, f.criadores.Delete(ctx, cr.ID))
		_, err := f.conteudos.Get(ctx, ct.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		items, err := f.itens.ListByPlaylist(ctx, pl.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("usuario removes playlists", func(t *testing.T) {
		f := newFixture(t)
		_, ct, u, pl := f.seed(t)
		require.NoError(t, f.usuarios.Delete(ctx, u.ID))
		_, err := f.playlists.Get(ctx, pl.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		// 内容本身不受影响
		_, err = f.conteudos.Get(ctx, ct.ID)
		assert.NoError(t, err)
	})
}

func TestFindByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cr, _, u, _ := f.seed(t)

	gotU, err := f.usuarios.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.NotNil(t, gotU)
	assert.Equal(t, u.ID, gotU.ID)

	gotC, err := f.criadores.FindByEmail(ctx, cr.Email)
	require.NoError(t, err)
	require.NotNil(t, gotC)

	none, err := f.usuarios.FindByEmail(ctx, cr.Email)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestItemPlaylist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, ct, _, pl := f.seed(t)

	it, err := f.itens.Get(ctx, pl.ID, ct.ID)
	require.NoError(t, err)
	require.NotNil(t, it.Conteudo)

	err = f.itens.Add(ctx, &domain.ItemPlaylist{PlaylistID: pl.ID, ConteudoID: ct.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, f.itens.Remove(ctx, pl.ID, ct.ID))
	assert.ErrorIs(t, f.itens.Remove(ctx, pl.ID, ct.ID), domain.ErrNotFound)

	_, err = f.itens.Get(ctx, pl.ID, ct.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
