package impl

import (
	"context"
	"testing"
	"time"

	"tycoon/config"
	"tycoon/internal/domain/catalog"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/errors"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRegister_NewAccountStartsWithDefaults(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})

	profile, err := srv.Register(context.Background(), &usecase.RegisterInput{
		Username: "ada",
		Password: "secret",
		Name:     "Ada",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleKid, profile.Role, "role defaults to kid")
	assert.Equal(t, 100, profile.BizCoins)
	assert.Equal(t, entity.TierIntern, profile.Tier)
	assert.Equal(t, catalog.DefaultHQLevel, profile.HQLevel)
	assert.Equal(t, 5, profile.Energy.Current)
	assert.Equal(t, 1, profile.Level)
	assert.True(t, profile.Settings.Sound)

	stored := userFrom(st, profile.ID)
	assert.Equal(t, "h:secret", stored.PasswordHash)
}

func TestAccountRegister_UsernameTaken(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{Username: "ada", Password: "a"})
	require.NoError(t, err)

	_, err = srv.Register(context.Background(), &usecase.RegisterInput{Username: "ada", Password: "b"})
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestAccountRegister_AccountLimit(t *testing.T) {
	st, _ := newTestStore()
	cfg := testConfig()
	cfg.Auth = &config.AuthConfig{MaxAccounts: 2}
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: cfg, Logger: discardLogger(),
	})

	for _, name := range []string{"a", "b"} {
		_, err := srv.Register(context.Background(), &usecase.RegisterInput{Username: name, Password: "x"})
		require.NoError(t, err)
	}

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{Username: "c", Password: "x"})
	assert.True(t, errors.Is(err, domainerrors.ErrAccountLimitReached))
}

func TestAccountRegister_UnknownRoleRejected(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{Username: "x", Password: "x", Role: entity.Role("wizard")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAccountLogin_SuccessIssuesTokensAndTouchesStreak(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})
	userID := seedUser(st, func(u *entity.User) { u.Username = "ada" })

	out, err := srv.Login(context.Background(), &usecase.LoginInput{Username: "ada", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "access-"+userID.String(), out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, 1, out.Profile.Streak, "first login of the day starts the streak")
}

func TestAccountLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})
	seedUser(st, func(u *entity.User) { u.Username = "ada" })

	_, wrongPass := srv.Login(context.Background(), &usecase.LoginInput{Username: "ada", Password: "nope"})
	_, unknown := srv.Login(context.Background(), &usecase.LoginInput{Username: "ghost", Password: "nope"})

	assert.True(t, errors.Is(wrongPass, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknown, domainerrors.ErrInvalidCredentials))
}

func TestAccountProfile_AppliesLazyEnergyRegeneration(t *testing.T) {
	st, now := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})
	userID := seedUser(st, func(u *entity.User) {
		u.Energy = 1
		u.LastEnergyRefill = testNow
	})

	*now = testNow.Add(9 * time.Hour)

	profile, err := srv.Profile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.Energy.Current, "two whole 4h intervals elapsed")
	require.NotNil(t, profile.Energy.NextRefillAt)
	assert.Equal(t, testNow.Add(12*time.Hour), *profile.Energy.NextRefillAt)
}

func TestAccountUpdateSettings(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})
	userID := seedUser(st)

	profile, err := srv.UpdateSettings(context.Background(), userID, &usecase.UpdateSettingsInput{
		Sound: false, Music: true, Theme: "dark",
	})
	require.NoError(t, err)
	assert.False(t, profile.Settings.Sound)
	assert.Equal(t, "dark", profile.Settings.Theme)
}

func TestAccountLogout_UnknownUser(t *testing.T) {
	st, _ := newTestStore()
	srv := NewAccountService(AccountServiceParams{
		Store: st, Hasher: stubHasher{}, TokenService: stubTokens{}, Config: testConfig(), Logger: discardLogger(),
	})

	err := srv.Logout(context.Background(), seedUser(st))
	require.NoError(t, err)

	err = srv.Logout(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
