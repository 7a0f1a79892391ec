package ez

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/domain"
	mdw "youwatch-api/internal/transport/http/middleware"
)

// Service 标准 CRUD 依赖（由 service.Crud / service.AccountService 实现）
type Service[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, m *T) error
	Update(ctx context.Context, id uint, m *T) error
	Delete(ctx context.Context, id uint) error
}

// Hook
type CrudHooks[T any] struct {
	// Own policy 规则要求 Own 时调用：主体必须拥有 id 对应的记录
	Own func(ctx context.Context, id uint, p auth.Principal) error
	// AfterGet 写响应前调用（去掉敏感字段）
	AfterGet func(m *T)
}

type CrudConfig[T any] struct {
	Resource string // policy 资源名，同时是路径 /<resource>
	Service  Service[T]
	Hooks    CrudHooks[T]
}

// Crud 注册 list/get/create/update/delete 五个路由，每个路由按 policy 单独鉴权
func Crud[T any, P interface {
	*T
	domain.Entity
}](e EZ, cfg CrudConfig[T]) {
	path := "/" + strings.Trim(cfg.Resource, "/")
	svc := cfg.Service

	after := func(m *T) *T {
		if cfg.Hooks.AfterGet != nil {
			cfg.Hooks.AfterGet(m)
		}
		return m
	}
	// own 在规则要求时校验归属
	own := func(c *gin.Context, rule auth.Rule, id uint) error {
		if !rule.Own || cfg.Hooks.Own == nil {
			return nil
		}
		p, _ := mdw.PrincipalFrom(c)
		return cfg.Hooks.Own(c.Request.Context(), id, p)
	}

	// List
	_, g := e.guard(cfg.Resource, auth.OpList)
	e.g.GET(path, g, func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			e.Fail(c, err)
			return
		}
		for i := range items {
			after(&items[i])
		}
		c.JSON(http.StatusOK, items)
	})

	// Get
	_, g = e.guard(cfg.Resource, auth.OpGet)
	e.g.GET(path+"/:id", g, func(c *gin.Context) {
		id, err := ParamID(c, "id")
		if err != nil {
			e.Fail(c, err)
			return
		}
		m, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			e.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, after(m))
	})

	// Create
	_, g = e.guard(cfg.Resource, auth.OpCreate)
	e.g.POST(path, g, func(c *gin.Context) {
		m := new(T)
		if err := c.ShouldBindJSON(m); err != nil {
			e.Fail(c, bindErr(err))
			return
		}
		if err := svc.Create(c.Request.Context(), m); err != nil {
			e.Fail(c, err)
			return
		}
		c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimRight(c.Request.URL.Path, "/"), P(m).Base().ID))
		c.JSON(http.StatusCreated, after(m))
	})

	// Update（全量）
	rule, g := e.guard(cfg.Resource, auth.OpUpdate)
	e.g.PUT(path+"/:id", g, func(c *gin.Context) {
		id, err := ParamID(c, "id")
		if err != nil {
			e.Fail(c, err)
			return
		}
		if err := own(c, rule, id); err != nil {
			e.Fail(c, err)
			return
		}
		m := new(T)
		if err := c.ShouldBindJSON(m); err != nil {
			e.Fail(c, bindErr(err))
			return
		}
		if err := svc.Update(c.Request.Context(), id, m); err != nil {
			e.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Delete
	rule, g = e.guard(cfg.Resource, auth.OpDelete)
	e.g.DELETE(path+"/:id", g, func(c *gin.Context) {
		id, err := ParamID(c, "id")
		if err != nil {
			e.Fail(c, err)
			return
		}
		if err := own(c, rule, id); err != nil {
			e.Fail(c, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			e.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
