package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
	"github.com/roamstay/travel-booking-backend/internal/utils"
	"github.com/roamstay/travel-booking-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and token refresh
type AuthService struct {
	userRepo    *database.UserRepository
	sessionRepo *database.UserSessionRepository
	jwtService  *jwt.Service
	bcryptCost  int
	logger      *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *database.UserRepository,
	sessionRepo *database.UserSessionRepository,
	jwtService *jwt.Service,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Signup registers a new user and returns a token pair
func (s *AuthService) Signup(req *models.SignupRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Server("failed to hash password", err)
	}

	user, err := s.userRepo.CreateUser(req.Name, req.Email, string(hash))
	if err != nil {
		if err == database.ErrDuplicate {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.Server("failed to create user", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return s.tokenResponse(user)
}

// Login authenticates a user, records the login session and returns a
// token pair. Invalid email and invalid password produce the same
// error shape.
func (s *AuthService) Login(req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		return nil, apperrors.Server("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.Auth("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Auth("invalid email or password")
	}

	device := utils.ParseUserAgent(userAgent)
	if _, err := s.sessionRepo.RecordLogin(user.ID, device.DeviceType, device.OS, device.Browser, ipAddress, userAgent); err != nil {
		// Session records are informational; a failed insert must not
		// block the login.
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login session")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"device_type": device.DeviceType,
		"browser":     device.Browser,
	}).Info("User logged in")

	return s.tokenResponse(user)
}

// Refresh exchanges a valid refresh token for a new access token
func (s *AuthService) Refresh(refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Auth("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Server("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.Auth("user not found")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, apperrors.Server("failed to generate access token", err)
	}

	return &models.AuthResponse{AccessToken: accessToken}, nil
}

// Profile returns the user record for an authenticated user
func (s *AuthService) Profile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, apperrors.Server("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) tokenResponse(user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, apperrors.Server("failed to generate access token", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Server("failed to generate refresh token", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
