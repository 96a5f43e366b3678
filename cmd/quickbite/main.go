// Command quickbite runs the QuickBite restaurant API.
//
// @title                       QuickBite API
// @version                     1.0
// @description                 Restaurant and menu management with stateless JWT authentication and role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token returned by /api/login, e.g. "Bearer eyJ..."
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/api"
	"github.com/dimermichel/quickbite/internal/api/handler"
	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
	"github.com/dimermichel/quickbite/internal/core/service"
	"github.com/dimermichel/quickbite/internal/infrastructure/config"
	"github.com/dimermichel/quickbite/internal/infrastructure/db/memory"
	"github.com/dimermichel/quickbite/internal/infrastructure/db/postgres"
	"github.com/dimermichel/quickbite/internal/infrastructure/db/redis"
	"github.com/dimermichel/quickbite/internal/infrastructure/security"
	"github.com/dimermichel/quickbite/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	users       ports.UserRepository
	restaurants ports.RestaurantRepository
	menuItems   ports.MenuItemRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "quickbite"})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "quickbite",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("quickbite stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("quickbite stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		repos     repositories
		readiness []handler.Dependency
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		if cfg.Database.Migrate {
			if err := postgres.RunMigrations(cfg.Database.URL, log); err != nil {
				return err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		repos = postgresRepositories(pool)
		readiness = append(readiness, handler.Dependency{Name: "postgres", Ping: pool.Ping})
	default:
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		store := memory.New()
		repos = repositories{users: store.Users(), restaurants: store.Restaurants(), menuItems: store.MenuItems()}
	}

	var cache ports.RestaurantCache
	if cfg.Redis.Enabled {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		cache = redis.NewRestaurantCache(client, cfg.Redis.TTL)
		readiness = append(readiness, handler.Dependency{Name: "redis", Ping: pingRedis(client)})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("restaurant cache enabled")
	}

	codec, err := security.NewTokenCodec(cfg.Security.Prefix, cfg.Security.Key)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)

	users := service.NewUserService(repos.users, hasher, log)
	if err := ensureAdmin(ctx, users, cfg.Admin, log); err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Tokens:      codec,
		Auth:        service.NewAuthService(repos.users, hasher, codec, cfg.Security.TokenTTL(), log),
		Users:       users,
		Restaurants: service.NewRestaurantService(repos.restaurants, repos.users, cache, log),
		MenuItems:   service.NewMenuItemService(repos.menuItems, repos.restaurants, repos.users, log),
		Readiness:   readiness,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Driver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		users:       postgres.NewUserRepository(pool),
		restaurants: postgres.NewRestaurantRepository(pool),
		menuItems:   postgres.NewMenuItemRepository(pool),
	}
}

func pingRedis(client *goredis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// ensureAdmin creates the configured ADMIN account unless the name is taken.
func ensureAdmin(ctx context.Context, users ports.UserService, cfg config.AdminConfig, log zerolog.Logger) error {
	if cfg.Username == "" {
		return nil
	}
	_, err := users.Create(ctx, ports.CreateUserInput{
		Name:     "Administrator",
		Email:    cfg.Email,
		Username: cfg.Username,
		Password: cfg.Password,
		RoleIDs:  []int64{domain.RoleAdmin.ID()},
	})
	if errors.Is(err, domain.ErrDuplicateIdentity) {
		log.Debug().Str("username", cfg.Username).Msg("admin account already present")
		return nil
	}
	return err
}
