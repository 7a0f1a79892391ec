package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin/binding"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"youwatch-api/internal/core/auth"
	"youwatch-api/internal/core/config"
	"youwatch-api/internal/core/database"
	"youwatch-api/internal/domain"
	"youwatch-api/internal/repo"
	"youwatch-api/internal/service"
	"youwatch-api/internal/transport/http/router"
	"youwatch-api/pkg/utils"
)

// admin 子命令共享的配置与懒加载的 DB
type admin struct {
	cfg     *config.Config
	log     *zap.Logger
	cleanup func()
	db      *gorm.DB
	out     io.Writer
}

func (a *admin) open() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             a.cfg.DB.Driver,
		DSN:                a.cfg.DB.DSN,
		Username:           a.cfg.DB.Username,
		Password:           a.cfg.DB.Password,
		MaxOpenConns:       a.cfg.DB.MaxOpenConns,
		MaxIdleConns:       a.cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: a.cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           a.cfg.DB.LogLevel,
	}, a.log)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	a.db = db
	return db, nil
}

func (a *admin) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.db = nil
	}
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

func (a *admin) Migrate(ctx context.Context, _ *cli.Command) error {
	db, err := a.open()
	if err != nil {
		return err
	}
	if err := database.Migrate(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.log.Info("migrate done", zap.String("driver", a.cfg.DB.Driver))
	return nil
}

func conta(cmd *cli.Command) (domain.Conta, error) {
	c := domain.Conta{Nome: cmd.String("nome"), Email: cmd.String("email"), Senha: cmd.String("senha")}
	// 与 HTTP 入参同一套校验规则
	if err := binding.Validator.ValidateStruct(&c); err != nil {
		return c, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return c, nil
}

func (a *admin) CreateUsuario(ctx context.Context, cmd *cli.Command) error {
	c, err := conta(cmd)
	if err != nil {
		return err
	}
	db, err := a.open()
	if err != nil {
		return err
	}
	u := &domain.Usuario{Conta: c}
	svc := service.NewUsuarioService(repo.NewUsuarioRepo(db), utils.NewHasher(a.cfg.Auth.BcryptCost), a.log)
	if err := svc.Create(ctx, u); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "usuario %d created (%s)\n", u.ID, u.Email)
	return nil
}

func (a *admin) CreateCriador(ctx context.Context, cmd *cli.Command) error {
	c, err := conta(cmd)
	if err != nil {
		return err
	}
	db, err := a.open()
	if err != nil {
		return err
	}
	cr := &domain.Criador{Conta: c}
	svc := service.NewCriadorService(repo.NewCriadorRepo(db), utils.NewHasher(a.cfg.Auth.BcryptCost), a.log)
	if err := svc.Create(ctx, cr); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "criador %d created (%s)\n", cr.ID, cr.Email)
	return nil
}

// IssueToken 角色按登录同样的顺序决定：Usuario 优先
func (a *admin) IssueToken(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	db, err := a.open()
	if err != nil {
		return err
	}

	var role auth.Role
	if u, err := repo.NewUsuarioRepo(db).FindByEmail(ctx, email); err != nil {
		return err
	} else if u != nil {
		role = auth.RoleUsuario
	} else if c, err := repo.NewCriadorRepo(db).FindByEmail(ctx, email); err != nil {
		return err
	} else if c != nil {
		role = auth.RoleCriador
	}
	if !role.Valid() {
		return fmt.Errorf("%s: %w", email, domain.ErrNotFound)
	}

	tok, err := router.NewJWTer(a.cfg.JWT).Issue(email, role)
	if err != nil {
		return err
	}
	a.log.Info("token issued", zap.String("email", email), zap.String("role", string(role)))
	fmt.Fprintln(a.out, tok)
	return nil
}
