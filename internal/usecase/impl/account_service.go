package impl

import (
	"context"
	"log/slog"

	"tycoon/config"
	deliverycontext "tycoon/internal/delivery/context"
	"tycoon/internal/domain/catalog"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/domain/service"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	store        *store.Store
	hasher       service.PasswordHasher
	tokenService service.TokenService
	rules        gameRules
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Store        *store.Store
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		store:        params.Store,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		rules:        rulesFromConfig(params.Config),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with starting coins, default settings and
// the starter headquarters.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.Profile, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.Any("role", input.Role))

	role := input.Role
	if role == "" {
		role = entity.RoleKid
	}
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown account role")
	}

	// bcrypt is CPU-bound, hash before entering the action.
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	var profile *usecase.Profile
	err = srv.store.Update(func(s *store.State) error {
		if len(s.Users) >= srv.rules.maxAccounts {
			return domainerrors.ErrAccountLimitReached
		}
		if s.UserByUsername(input.Username) != nil {
			return domainerrors.ErrUsernameTaken
		}

		now := srv.store.Now()
		user := &entity.User{
			ID:           uuid.New(),
			Username:     input.Username,
			Name:         input.Name,
			PasswordHash: hash,
			Role:         role,
			BizCoins:     srv.rules.startingCoins,
			Tier:         entity.TierIntern,
			Energy:       srv.rules.maxEnergy,
			HQLevel:      catalog.DefaultHQLevel,
			Settings:     entity.DefaultSettings(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		s.Users[user.ID] = user
		profile = buildProfile(user, srv.rules)

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register account")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", profile.ID))

	return profile, nil
}

// Login verifies credentials and issues a token pair.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	var hash string
	var userID uuid.UUID
	var role entity.Role
	srv.store.View(func(s *store.State) {
		if user := s.UserByUsername(input.Username); user != nil {
			hash = user.PasswordHash
			userID = user.ID
			role = user.Role
		}
	})

	// Check password outside the store lock (bcrypt is CPU-bound). A missing
	// account and a wrong password are indistinguishable to the caller.
	if hash == "" || !srv.hasher.Check(input.Password, hash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(userID, []string{role.String()})
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// Logging in counts as daily activity for the streak.
	var profile *usecase.Profile
	err = srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		now := srv.store.Now()
		user.RegenerateEnergy(now, srv.rules.maxEnergy, srv.rules.refillInterval)
		user.TouchStreak(now)
		user.UpdatedAt = now
		profile = buildProfile(user, srv.rules)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record login activity")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", userID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}

// Logout ends the caller's session. Tokens are stateless, so there is
// nothing to revoke server-side; the call exists so the client has a single
// authoritative logout signal and the event is logged.
func (srv *accountService) Logout(ctx context.Context, userID uuid.UUID) error {
	var err error
	srv.store.View(func(s *store.State) {
		_, err = findUser(s, userID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to log out")
	}

	srv.log(ctx).Info("Logged out", slog.Any("userID", userID))

	return nil
}

// Profile returns the caller's account view with lazy energy regeneration
// applied.
func (srv *accountService) Profile(ctx context.Context, userID uuid.UUID) (*usecase.Profile, error) {
	var profile *usecase.Profile
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		user.RegenerateEnergy(srv.store.Now(), srv.rules.maxEnergy, srv.rules.refillInterval)
		profile = buildProfile(user, srv.rules)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return profile, nil
}

// UpdateSettings replaces the account's presentation preferences.
func (srv *accountService) UpdateSettings(ctx context.Context, userID uuid.UUID, input *usecase.UpdateSettingsInput) (*usecase.Profile, error) {
	var profile *usecase.Profile
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		user.Settings = entity.Settings{
			Sound: input.Sound,
			Music: input.Music,
			Theme: input.Theme,
		}
		user.UpdatedAt = srv.store.Now()
		profile = buildProfile(user, srv.rules)

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update settings", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update settings")
	}

	return profile, nil
}
