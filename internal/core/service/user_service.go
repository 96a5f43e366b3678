package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, logger: logger}
}

// Register creates a self-service account. It always gets the USER role and
// starts enabled.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	addr, err := newAddress(input.Address)
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(domain.NewUserParams{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
		Address:  addr,
	}, s.hasher.Hash)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, user)
}

// Create is the administrative variant of Register with explicit roles and
// enabled flag.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	addr, err := newAddress(input.Address)
	if err != nil {
		return nil, err
	}
	roles, err := rolesFromIDs(input.RoleIDs)
	if err != nil {
		return nil, err
	}
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	user, err := domain.NewUserWithRoles(domain.NewUserParams{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
		Address:  addr,
	}, roles, enabled, s.hasher.Hash)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) (ports.Page[*domain.User], error) {
	if err := input.PageRequest.Validate(); err != nil {
		return ports.Page[*domain.User]{}, err
	}
	filter := ports.UserFilter{PageRequest: input.PageRequest}
	if input.RoleID != 0 {
		role, err := domain.RoleFromID(input.RoleID)
		if err != nil {
			return ports.Page[*domain.User]{}, err
		}
		filter.Role = role
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.User]{}, err
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return ports.Page[*domain.User]{}, err
	}
	return ports.NewPage(users, input.PageRequest, total), nil
}

// Update applies an administrative change. The role set is replaced as a
// whole when RoleIDs is non-empty.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(input.Email); email != "" && !strings.EqualFold(email, user.Email()) {
		taken, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateIdentity
		}
	}

	addr, err := newAddress(input.Address)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(input.Name, input.Email, addr); err != nil {
		return nil, err
	}
	if input.Password != "" {
		if err := user.ChangePassword(input.Password, s.hasher.Hash); err != nil {
			return nil, err
		}
	}
	if len(input.RoleIDs) > 0 {
		roles, err := rolesFromIDs(input.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := user.ReplaceRoles(roles); err != nil {
			return nil, err
		}
	}
	if input.Enabled != nil {
		if *input.Enabled {
			user.Enable()
		} else {
			user.Disable()
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID()).Msg("failed to update user")
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID()).Msg("user updated")
	return user, nil
}

// Delete removes a user. Owners of restaurants are refused with
// *domain.UserHasDependentsError.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		var dependents *domain.UserHasDependentsError
		if errors.As(err, &dependents) {
			s.logger.Warn().Int64("user_id", id).Int64("restaurants", dependents.Count).Msg("user delete blocked")
		}
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.ensureUnique(ctx, user.Username(), user.Email()); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrDuplicateIdentity) {
			s.logger.Error().Err(err).Str("username", user.Username()).Msg("failed to create user")
		}
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID()).Str("username", user.Username()).Msg("user created")
	return user, nil
}

func (s *UserService) ensureUnique(ctx context.Context, username, email string) error {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateIdentity
	}
	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateIdentity
	}
	return nil
}
