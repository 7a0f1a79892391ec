package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"youwatch-api/internal/domain"
	"youwatch-api/pkg/utils"
)

// AccountService Usuario / Criador：明文 senha 只在这里出现，落库前统一哈希
type AccountService[T any, P interface {
	*T
	domain.Account
}] struct {
	*Crud[T, P]
}

func NewAccountService[T any, P interface {
	*T
	domain.Account
}](store domain.Store[T], h *utils.Hasher, l *zap.Logger) *AccountService[T, P] {
	prepare := func(_ context.Context, m *T) error {
		acc := P(m).Account()
		acc.Email = strings.TrimSpace(acc.Email)
		// 摘要原样提交会被二次哈希，直接拒绝
		if utils.IsHashed(acc.Senha) {
			return fmt.Errorf("%w: senha must be plaintext", domain.ErrValidation)
		}
		digest, err := h.Hash(acc.Senha)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: senha longer than 72 bytes", domain.ErrValidation)
		}
		if err != nil {
			return fmt.Errorf("hash senha: %w", err)
		}
		acc.Senha = digest
		return nil
	}
	return &AccountService[T, P]{Crud: NewCrud[T, P](store, prepare, l)}
}

// Owns 目标账号必须属于 email 对应的主体
func (s *AccountService[T, P]) Owns(ctx context.Context, id uint, email string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(P(m).Account().Email, email) {
		return fmt.Errorf("account %d: %w", id, domain.ErrForbidden)
	}
	return nil
}

type (
	UsuarioService = AccountService[domain.Usuario, *domain.Usuario]
	CriadorService = AccountService[domain.Criador, *domain.Criador]
)

func NewUsuarioService(r domain.UsuarioRepository, h *utils.Hasher, l *zap.Logger) *UsuarioService {
	return NewAccountService[domain.Usuario, *domain.Usuario](r, h, l)
}

func NewCriadorService(r domain.CriadorRepository, h *utils.Hasher, l *zap.Logger) *CriadorService {
	return NewAccountService[domain.Criador, *domain.Criador](r, h, l)
}
