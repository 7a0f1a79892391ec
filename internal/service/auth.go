package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/core/cache"
	"youwatch-api/internal/domain"
	"youwatch-api/pkg/utils"
)

var loginTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "youwatch_login_attempts_total", Help: "Login attempts by result"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(loginTotal) }

type AuthOptions struct {
	MaxFailed int           // <=0 不限制
	Window    time.Duration // 失败计数窗口
}

type AuthService struct {
	usuarios  domain.CredentialStore[domain.Usuario]
	criadores domain.CredentialStore[domain.Criador]
	hasher    *utils.Hasher
	jwter     *auth.JWTer
	attempts  cache.Counter
	opt       AuthOptions
	log       *zap.Logger

	// 邮箱不存在时也做一次比对，响应时间不暴露账号是否存在
	dummy string
}

func NewAuthService(
	usuarios domain.CredentialStore[domain.Usuario],
	criadores domain.CredentialStore[domain.Criador],
	h *utils.Hasher,
	j *auth.JWTer,
	attempts cache.Counter,
	opt AuthOptions,
	l *zap.Logger,
) (*AuthService, error) {
	if l == nil {
		l = zap.NewNop()
	}
	if opt.Window <= 0 {
		opt.Window = 15 * time.Minute
	}
	dummy, err := h.Hash("youwatch-placeholder")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		usuarios:  usuarios,
		criadores: criadores,
		hasher:    h,
		jwter:     j,
		attempts:  attempts,
		opt:       opt,
		log:       l,
		dummy:     dummy,
	}, nil
}

// Authenticate 先查 Usuario 再查 Criador；两种失败对外都是 ErrInvalidCredentials
func (s *AuthService) Authenticate(ctx context.Context, email, senha string) (auth.Principal, error) {
	if email == "" || senha == "" {
		return auth.Principal{}, domain.ErrMissingCredentials
	}

	u, err := s.usuarios.FindByEmail(ctx, email)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("lookup usuario: %w", err)
	}
	if u != nil && s.hasher.Check(senha, u.Senha) {
		return auth.Principal{Role: auth.RoleUsuario, Email: u.Email}, nil
	}

	c, err := s.criadores.FindByEmail(ctx, email)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("lookup criador: %w", err)
	}
	if c != nil && s.hasher.Check(senha, c.Senha) {
		return auth.Principal{Role: auth.RoleCriador, Email: c.Email}, nil
	}

	if u == nil && c == nil {
		_ = s.hasher.Check(senha, s.dummy)
	}
	return auth.Principal{}, domain.ErrInvalidCredentials
}

// Login 限流检查 + Authenticate + 签发令牌；失败次数按 (email, clientKey) 计
func (s *AuthService) Login(ctx context.Context, email, senha, clientKey string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || senha == "" {
		loginTotal.WithLabelValues("missing").Inc()
		return "", domain.ErrMissingCredentials
	}
	key := attemptKey(email, clientKey)

	if s.throttled(ctx, key) {
		loginTotal.WithLabelValues("throttled").Inc()
		return "", domain.ErrTooManyAttempts
	}

	p, err := s.Authenticate(ctx, email, senha)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			loginTotal.WithLabelValues("invalid").Inc()
			s.fail(ctx, key)
		}
		return "", err
	}

	s.reset(ctx, key)
	tok, err := s.jwter.Issue(p.Email, p.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	loginTotal.WithLabelValues("ok").Inc()
	s.log.Info("login", zap.String("email", p.Email), zap.String("role", string(p.Role)))
	return tok, nil
}

func attemptKey(email, clientKey string) string {
	return "login:fail:" + strings.ToLower(email) + ":" + clientKey
}

// 计数器故障不阻断登录
func (s *AuthService) throttled(ctx context.Context, key string) bool {
	if s.attempts == nil || s.opt.MaxFailed <= 0 {
		return false
	}
	n, err := s.attempts.Get(ctx, key)
	if err != nil {
		s.log.Warn("login counter get", zap.Error(err))
		return false
	}
	return n >= int64(s.opt.MaxFailed)
}

func (s *AuthService) fail(ctx context.Context, key string) {
	if s.attempts == nil || s.opt.MaxFailed <= 0 {
		return
	}
	if _, err := s.attempts.Incr(ctx, key, s.opt.Window); err != nil {
		s.log.Warn("login counter incr", zap.Error(err))
	}
}

func (s *AuthService) reset(ctx context.Context, key string) {
	if s.attempts == nil {
		return
	}
	if err := s.attempts.Reset(ctx, key); err != nil {
		s.log.Warn("login counter reset", zap.Error(err))
	}
}
