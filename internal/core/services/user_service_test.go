package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/core/services"
	"github.com/corebank/banking-backend/internal/dto"
	"github.com/corebank/banking-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Register Tests ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "alice" &&
			user.Email == "alice@example.com" &&
			user.PasswordHash != "" &&
			user.PasswordHash != "password123"
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("alice", user.Username)
	suite.NotEmpty(user.UserID)
	suite.NotEqual("password123", user.PasswordHash)
	// Digest must verify against the original password.
	suite.NoError(utils.CheckPassword("password123", user.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_SanitizesUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: `ali<ce>"`,
		Email:    "alice@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "alice"
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_InvalidEmail() {
	ctx := context.Background()
	for _, email := range []string{"", "not-an-email", "a@b", "a b@example.com"} {
		req := dto.RegisterRequest{Username: "alice", Email: email, Password: "password123"}
		_, err := suite.service.Register(ctx, req)
		suite.ErrorIs(err, apperrors.ErrValidation, "email %q should be rejected", email)
	}
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegister_MissingFields() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{Username: "", Email: "a@example.com", Password: "x"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "a@example.com", Password: ""})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestRegister_PasswordTooLong() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("x", 100),
	}

	_, err := suite.service.Register(ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	suite.False(errors.As(err, &appErr), "an over-long password is a caller error, not a server error")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegister_Duplicate() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.Register(ctx, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Authenticate Tests ---

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	digest, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: digest}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "alice", "password123")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	digest, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: digest}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(stored, nil).Once()

	_, err = suite.service.Authenticate(ctx, "alice", "wrong-password")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	// Unknown user and bad password must be indistinguishable.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_CorruptDigest() {
	ctx := context.Background()
	stored := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: "not-a-bcrypt-digest"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(stored, nil).Once()

	_, err := suite.service.Authenticate(ctx, "alice", "password123")

	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
