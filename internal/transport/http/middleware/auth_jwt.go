package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"youwatch-api/internal/core/auth"
	resp "youwatch-api/internal/transport/http/response"
)

const KeyPrincipal = "principal"

// AuthJWT 按规则放行：匿名规则直接通过；否则要求有效 Bearer 令牌且角色匹配
func AuthJWT(j *auth.JWTer, rule auth.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rule.Anonymous() {
			c.Next()
			return
		}
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		p := auth.Principal{Role: claims.Role, Email: claims.Email}
		if !p.Is(rule.Role) {
			resp.Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(KeyPrincipal, p)
		c.Next()
	}
}

// PrincipalFrom 取 AuthJWT 写入的主体；匿名路由上为零值
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
