package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"youwatch-api/internal/service"
	httpez "youwatch-api/internal/transport/http/ez"
	mdw "youwatch-api/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc        *service.AuthService
	loginRPS   float64
	loginBurst int
}

func NewAuthHandler(svc *service.AuthService, rps float64, burst int) *AuthHandler {
	return &AuthHandler{svc: svc, loginRPS: rps, loginBurst: burst}
}

func (h *AuthHandler) Priority() int { return 10 }

type loginIn struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginOut struct {
	Token string `json:"token"`
}

// Mount POST /login：公开；空字段 400，凭证错误 401，失败过多 429
func (h *AuthHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction[loginIn, loginOut](e, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Use:    []gin.HandlerFunc{mdw.RateLimitPerIP(rate.Limit(h.loginRPS), h.loginBurst)},
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			tok, err := h.svc.Login(c.Request.Context(), in.Email, in.Senha, c.ClientIP())
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Token: tok}, nil
		},
	})
}
