package cli

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/bootstrap"
	"github.com/yigit/projecthub/internal/config"
)

// Operations are the maintenance tasks the commands run
type Operations interface {
	Migrate(ctx context.Context) error
	Seed(ctx context.Context) error
	CreateAdmin(ctx context.Context, name, email, password string) (*models.Staff, error)
	ResetLink(ctx context.Context, userID int64, role models.Role) (*dto.ResetLinkResponse, error)
	Close()
}

// Opener builds Operations from a configuration file
type Opener func(ctx context.Context, configPath string) (Operations, error)

type dbOperations struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	deps *bootstrap.Dependencies
}

// OpenDatabase connects to the configured database and builds the services
func OpenDatabase(ctx context.Context, configPath string) (Operations, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}
	pool, err := bootstrap.ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps, err := bootstrap.BuildDependencies(cfg, pool, lgr)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &dbOperations{cfg: cfg, pool: pool, deps: deps}, nil
}

func (o *dbOperations) Migrate(ctx context.Context) error {
	return bootstrap.RunMigrations(ctx, o.cfg, o.pool, o.deps.Logger)
}

func (o *dbOperations) Seed(ctx context.Context) error {
	return bootstrap.SeedDefaults(ctx, o.cfg, o.deps)
}

func (o *dbOperations) CreateAdmin(ctx context.Context, name, email, password string) (*models.Staff, error) {
	return o.deps.Services.User.CreateStaff(ctx, &dto.CreateStaffRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
}

func (o *dbOperations) ResetLink(ctx context.Context, userID int64, role models.Role) (*dto.ResetLinkResponse, error) {
	return o.deps.Services.PasswordReset.CreateResetLink(ctx, userID, role)
}

func (o *dbOperations) Close() {
	o.deps.Close()
	o.pool.Close()
}
