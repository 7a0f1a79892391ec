package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/domain"
	"youwatch-api/internal/service"
	httpez "youwatch-api/internal/transport/http/ez"
)

const resourceItens = "itens"

// ItemHandler /playlists/:id/itens 下的关联条目
type ItemHandler struct {
	svc *service.ItemPlaylistService
}

func NewItemHandler(svc *service.ItemPlaylistService) *ItemHandler { return &ItemHandler{svc: svc} }

type addItemIn struct {
	ConteudoID uint `json:"conteudoId" binding:"required"`
}

func (h *ItemHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction[struct{}, []domain.ItemPlaylist](e, httpez.Action[struct{}, []domain.ItemPlaylist]{
		Method:   http.MethodGet,
		Path:     "/playlists/:id/itens",
		Binder:   httpez.BindNone,
		Resource: resourceItens,
		Op:       auth.OpList,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.ItemPlaylist, error) {
			pid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.List(c.Request.Context(), pid)
		},
	})

	httpez.RegisterAction[addItemIn, *domain.ItemPlaylist](e, httpez.Action[addItemIn, *domain.ItemPlaylist]{
		Method:   http.MethodPost,
		Path:     "/playlists/:id/itens",
		Binder:   httpez.BindJSON,
		Resource: resourceItens,
		Op:       auth.OpCreate,
		Status:   http.StatusCreated,
		Handler: func(c *gin.Context, in *addItemIn) (*domain.ItemPlaylist, error) {
			pid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			it, err := h.svc.Add(c.Request.Context(), pid, in.ConteudoID)
			if err != nil {
				return nil, err
			}
			c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, it.ConteudoID))
			if it.Conteudo != nil {
				it.Conteudo.Criador = nil
			}
			return it, nil
		},
	})

	httpez.RegisterAction[struct{}, struct{}](e, httpez.Action[struct{}, struct{}]{
		Method:   http.MethodDelete,
		Path:     "/playlists/:id/itens/:conteudoId",
		Binder:   httpez.BindNone,
		Resource: resourceItens,
		Op:       auth.OpDelete,
		Status:   http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			pid, err := httpez.ParamID(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			cid, err := httpez.ParamID(c, "conteudoId")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Remove(c.Request.Context(), pid, cid)
		},
	})
}
