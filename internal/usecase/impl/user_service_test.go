package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	mockRepo "bookstore/internal/mocks/repository"
	mockService "bookstore/internal/mocks/service"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	txFixture
	service          usecase.UserUsecase
	userRepo         *mockRepo.MockUserRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockService.MockPasswordHasher
	tokenService     *mockService.MockTokenService
	mediaStorage     *mockService.MockMediaStorage
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	refreshTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)
	mediaStorage := mockService.NewMockMediaStorage(t)

	service := NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		MediaStorage:     mediaStorage,
		Logger:           newDiscardLogger(),
	})

	return userServiceFixtures{
		txFixture:        txFixture{t: t, txManager: txManager},
		service:          service,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
		mediaStorage:     mediaStorage,
	}
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Email:     "reader@example.com",
		Password:  "StrongPass123!",
		FirstName: "Ada",
		LastName:  "Reader",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
		mockUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	out, err := fx.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, input.Email, out.User.Email)
	assert.Equal(t, "hashed_password", out.User.PasswordHash)
	assert.True(t, out.User.IsActive)
}

func TestUserService_RegisterUser_WeakPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{Email: "reader@example.com", Password: "weak"}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).
		Return(domainerrors.ErrPasswordStrength)

	out, err := fx.service.RegisterUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_RegisterUser_EmptyEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{Email: "", Password: "StrongPass123!"}

	out, err := fx.service.RegisterUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_RegisterUser_EmailTaken(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{Email: "taken@example.com", Password: "StrongPass123!"}
	existing := &entity.User{ID: uuid.New(), Email: input.Email}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(existing, nil)
	})

	out, err := fx.service.RegisterUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "reader@example.com", Password: "StrongPass123!"}
	user := &entity.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed_password",
		IsActive:     true,
		IsAdmin:      true,
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(true)
	fx.tokenService.EXPECT().
		GenerateTokens(user.ID, []string{"customer", "admin"}).
		Return("access_token", "refresh_token", nil)
	fx.tokenService.EXPECT().HashToken("refresh_token").Return("refresh_hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, token *entity.RefreshToken) {
			assert.Equal(t, user.ID, token.UserID)
			assert.Equal(t, "refresh_hash", token.TokenHash)
			assert.True(t, token.ExpiresAt.After(time.Now()))
		}).
		Return(nil)

	out, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access_token", out.AccessToken)
	assert.Equal(t, "refresh_token", out.RefreshToken)
	assert.Equal(t, user, out.User)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "reader@example.com", Password: "wrong"}
	user := &entity.User{ID: uuid.New(), Email: input.Email, PasswordHash: "hashed_password", IsActive: true}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(false)

	out, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)

	out, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	// Unknown email and wrong password are indistinguishable to the caller.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "banned@example.com", Password: "StrongPass123!"}
	user := &entity.User{ID: uuid.New(), Email: input.Email, PasswordHash: "hashed_password", IsActive: false}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(true)

	out, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrUserInactive))
}

func TestUserService_RefreshToken_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RefreshTokenInput{RefreshToken: "refresh_token"}
	storedToken := &entity.RefreshToken{UserID: userID, TokenHash: "refresh_hash"}
	user := &entity.User{ID: userID, IsActive: true}

	fx.tokenService.EXPECT().HashToken("refresh_token").Return("refresh_hash")
	fx.tokenService.EXPECT().
		GenerateTokens(userID, []string{"customer"}).
		Return("new_access_token", "unused_refresh", nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockRefreshRepo.EXPECT().FindRefreshTokenByHash(ctx, "refresh_hash").Return(storedToken, nil)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	})

	out, err := fx.service.RefreshToken(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "new_access_token", out.AccessToken)
}

func TestUserService_RefreshToken_Invalid(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RefreshTokenInput{RefreshToken: "stolen_or_expired"}

	fx.tokenService.EXPECT().HashToken("stolen_or_expired").Return("unknown_hash")

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockRefreshRepo.EXPECT().
			FindRefreshTokenByHash(ctx, "unknown_hash").
			Return(nil, repository.ErrRefreshTokenNotFound)
	})

	out, err := fx.service.RefreshToken(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestUserService_Logout_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LogoutInput{RefreshToken: "refresh_token"}

	fx.tokenService.EXPECT().HashToken("refresh_token").Return("refresh_hash")
	fx.refreshTokenRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "refresh_hash").Return(nil)

	err := fx.service.Logout(ctx, input)

	assert.NoError(t, err)
}

func TestUserService_Logout_Idempotent(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LogoutInput{RefreshToken: "already_gone"}

	fx.tokenService.EXPECT().HashToken("already_gone").Return("gone_hash")
	fx.refreshTokenRepo.EXPECT().
		DeleteRefreshTokenByHash(ctx, "gone_hash").
		Return(repository.ErrRefreshTokenNotFound)

	err := fx.service.Logout(ctx, input)

	assert.NoError(t, err)
}

func TestUserService_GetProfile_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := &entity.User{ID: userID, Email: "reader@example.com"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(expected, nil)

	user, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, user)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_UpdateProfile_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	firstName := "Grace"
	input := &usecase.UpdateProfileInput{FirstName: &firstName}
	existing := &entity.User{ID: userID, FirstName: "Ada", LastName: "Reader"}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existing, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	user, err := fx.service.UpdateProfile(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, "Grace", user.FirstName)
	// Fields left nil stay untouched.
	assert.Equal(t, "Reader", user.LastName)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{CurrentPassword: "OldPass123!", NewPassword: "NewPass456!"}
	user := &entity.User{ID: userID, PasswordHash: "old_hash"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.hasher.EXPECT().Check(input.CurrentPassword, "old_hash").Return(true)
	fx.hasher.EXPECT().ValidatePasswordStrength(input.NewPassword).Return(nil)
	fx.hasher.EXPECT().Hash(input.NewPassword).Return("new_hash", nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
		// Every active session is revoked after a password change.
		mockRefreshRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, userID).Return(nil)
	})

	err := fx.service.ChangePassword(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, "new_hash", user.PasswordHash)
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "NewPass456!"}
	user := &entity.User{ID: userID, PasswordHash: "old_hash"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.hasher.EXPECT().Check(input.CurrentPassword, "old_hash").Return(false)

	err := fx.service.ChangePassword(ctx, userID, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_UploadAvatar_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID}
	input := &usecase.UploadAvatarInput{
		ContentType: "image/png",
		Content:     strings.NewReader("png bytes"),
	}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.mediaStorage.EXPECT().
		Save(ctx, "avatars/"+userID.String(), "image/png", input.Content).
		Return("https://media.example.com/avatars/"+userID.String(), nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	url, err := fx.service.UploadAvatar(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/avatars/"+userID.String(), url)
	assert.Equal(t, url, user.AvatarURL)
}

func TestUserService_SetUserFlags_SuperuserImpliesStaffAndAdmin(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	isSuperuser := true
	input := &usecase.SetUserFlagsInput{IsSuperuser: &isSuperuser}
	user := &entity.User{ID: userID, IsActive: true}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	updated, err := fx.service.SetUserFlags(ctx, userID, input)

	require.NoError(t, err)
	assert.True(t, updated.IsSuperuser)
	assert.True(t, updated.IsStaff)
	assert.True(t, updated.IsAdmin)
}

func TestUserService_SetUserFlags_StaffDemotionOnSuperuserRejected(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	isStaff := false
	input := &usecase.SetUserFlagsInput{IsStaff: &isStaff}
	user := &entity.User{ID: userID, IsActive: true, IsStaff: true, IsAdmin: true, IsSuperuser: true}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrValidationFailed, "superuser accounts require staff and admin flags"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	})

	updated, err := fx.service.SetUserFlags(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_SetUserFlags_DeactivationRevokesSessions(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	isActive := false
	input := &usecase.SetUserFlagsInput{IsActive: &isActive}
	user := &entity.User{ID: userID, IsActive: true}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
		mockRefreshRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, userID).Return(nil)
	})

	updated, err := fx.service.SetUserFlags(ctx, userID, input)

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUserService_ListUsers_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	users := []*entity.User{{ID: uuid.New()}, {ID: uuid.New()}}

	fx.userRepo.EXPECT().List(ctx, 0, 20).Return(users, int64(42), nil)

	out, err := fx.service.ListUsers(ctx, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, users, out.Users)
	assert.Equal(t, int64(42), out.Total)
}
