package ez

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/domain"
	mdw "youwatch-api/internal/transport/http/middleware"
	resp "youwatch-api/internal/transport/http/response"
)

// EZ 路由分组 + 鉴权所需依赖
type EZ struct {
	g      *gin.RouterGroup
	jwt    *auth.JWTer
	policy auth.Policy
	log    *zap.Logger
}

func New(g *gin.RouterGroup, j *auth.JWTer, p auth.Policy, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, jwt: j, policy: p, log: l}
}

// guard 把 policy 里 (resource, op) 的规则变成中间件；未配置的组合直接 panic（启动期错误）
func (e EZ) guard(resource string, op auth.Op) (auth.Rule, gin.HandlerFunc) {
	rule, err := e.policy.Rule(resource, op)
	if err != nil {
		panic(err)
	}
	return rule, mdw.AuthJWT(e.jwt, rule)
}

/* ================== Action（非 CRUD 一行注册） ================== */

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 从 JSON 绑定
	BindNone Binder = "none" // 不绑定，自己从 c.Param 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// classify 领域错误 -> HTTP 错误
func classify(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case mdw.IsBodyTooLarge(err):
		return &AErr{Code: resp.CodeTooLarge, Msg: "request body too large", Err: err}
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMissingCredentials):
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &AErr{Code: resp.CodeUnauthorized, Msg: domain.ErrInvalidCredentials.Error(), Err: err}
	case errors.Is(err, domain.ErrForbidden):
		return &AErr{Code: resp.CodeForbidden, Msg: "forbidden", Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return &AErr{Code: resp.CodeNotFound, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrDuplicate):
		return &AErr{Code: resp.CodeConflict, Msg: domain.ErrDuplicate.Error(), Err: err}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return &AErr{Code: resp.CodeTooManyRequests, Msg: err.Error(), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &AErr{Code: resp.CodeTimeout, Msg: "timeout", Err: err}
	}
	// ErrConflict 及其它未分类错误：500，不向客户端暴露细节
	return Internal("internal error", err).(*AErr)
}

// Fail 统一错误出口；5xx 记 error 日志
func (e EZ) Fail(c *gin.Context, err error) {
	ae := classify(err)
	if ae.Code >= 500 {
		e.log.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	resp.Abort(c, ae.Code, ae.Error())
}

// ParamID 解析路径里的无符号 id；非法时返回 400
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || n == 0 {
		return 0, BadRequest(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return uint(n), nil
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method   string  // "GET" | "POST" | "PUT" | "DELETE"
	Path     string  // 例："/login"、"/playlists/:id/itens"
	Binder   Binder  // 绑定方式
	Resource string  // policy 资源名；为空表示公开
	Op       auth.Op // policy 操作
	Status   int     // 成功状态码，默认 200；204 不写 body
	Use      []gin.HandlerFunc
	Handler  func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	chain := make([]gin.HandlerFunc, 0, len(a.Use)+2)
	if a.Resource != "" {
		_, g := e.guard(a.Resource, a.Op)
		chain = append(chain, g)
	}
	chain = append(chain, a.Use...)

	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	chain = append(chain, func(c *gin.Context) {
		var in I
		if a.Binder == BindJSON {
			if err := c.ShouldBindJSON(&in); err != nil {
				e.Fail(c, bindErr(err))
				return
			}
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			e.Fail(c, err)
			return
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, out)
	})

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, chain...)
	case http.MethodPut:
		e.g.PUT(a.Path, chain...)
	case http.MethodDelete:
		e.g.DELETE(a.Path, chain...)
	default: // 默认 POST
		e.g.POST(a.Path, chain...)
	}
}

func bindErr(err error) error {
	if mdw.IsBodyTooLarge(err) {
		return err
	}
	return &AErr{Code: resp.CodeBadRequest, Msg: err.Error(), Err: fmt.Errorf("%w: %v", domain.ErrValidation, err)}
}
