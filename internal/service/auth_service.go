package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"mime/multipart"
	"os"
	"strconv"
	"time"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"anoa.com/campquest/pkg/mailer"
	"anoa.com/campquest/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// RequestOTP emails a short-lived verification code for sign-up.
	RequestOTP(ctx context.Context, input dto.RequestOTPInput) error
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*dto.UserResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.UserResponse, error)
}

type authService struct {
	userRepo           repository.UserRepository
	achievementService AchievementService
	imageStorage       storage.ImageStorage
	mail               mailer.Mailer
	redisClient        *redis.Client
	secret             string
	tokenTTL           time.Duration
	otpTTL             time.Duration
	defaultRole        string
}

func NewAuthService(
	userRepo repository.UserRepository,
	achievementService AchievementService,
	imageStorage storage.ImageStorage,
	mail mailer.Mailer,
	redisClient *redis.Client,
) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	defaultRole := os.Getenv("DEFAULT_ROLE")
	if defaultRole == "" {
		defaultRole = "member"
	}

	return &authService{
		userRepo:           userRepo,
		achievementService: achievementService,
		imageStorage:       imageStorage,
		mail:               mail,
		redisClient:        redisClient,
		secret:             secret,
		tokenTTL:           ttl,
		otpTTL:             10 * time.Minute,
		defaultRole:        defaultRole,
	}
}

func otpKey(email string) string {
	return fmt.Sprintf("signup_otp:%s", email)
}

func (s *authService) RequestOTP(ctx context.Context, input dto.RequestOTPInput) error {
	if s.redisClient == nil {
		return fmt.Errorf("otp sign-up requires redis")
	}

	// Refuse early if the email is taken, so the caller learns it before
	// typing a code.
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return apperror.New(409, "email already registered", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.redisClient.Set(ctx, otpKey(input.Email), code, s.otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if s.mail != nil {
		if err := s.mail.SendOTP(input.Email, code); err != nil {
			return fmt.Errorf("failed to send otp email: %w", err)
		}
	}

	return nil
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if s.redisClient == nil {
		return nil, fmt.Errorf("otp sign-up requires redis")
	}

	stored, err := s.redisClient.Get(ctx, otpKey(input.Email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.New(400, "verification code expired or not requested", apperror.ErrBadRequest)
		}
		return nil, err
	}
	if stored != input.Code {
		return nil, apperror.New(400, "invalid verification code", apperror.ErrBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("default role %q not seeded: %w", s.defaultRole, err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &role.ID,
	}
	profile := &model.Profile{FullName: input.FullName}

	if err := s.userRepo.Create(ctx, user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(409, "username or email already taken", apperror.ErrConflict)
		}
		return nil, err
	}

	// Code is single-use
	if err := s.redisClient.Del(ctx, otpKey(input.Email)).Err(); err != nil {
		log.Printf("failed to delete used otp for %s: %v", input.Email, err)
	}

	user.Role = *role
	user.Profile = profile

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the streak statistic just misses one row.
		log.Printf("failed to record login for user %s: %v", user.ID, err)
	}

	// Engagement achievements (first login, streaks) may have changed.
	s.achievementService.CheckAndUnlockAsync(user.ID)

	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{UserID: user.ID}
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.FirstName != nil {
		profile.FirstName = input.FirstName
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	user.Profile = profile

	// Profile completeness feeds the PROFILE_COMPLETE achievement.
	s.achievementService.CheckAndUnlockAsync(user.ID)

	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *authService) UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	url, err := s.imageStorage.UploadImage(ctx, src, "avatars", file.Filename)
	if err != nil {
		return nil, err
	}

	oldURL := user.AvatarURL
	user.AvatarURL = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldURL != nil && *oldURL != "" {
		if err := s.imageStorage.DeleteImage(ctx, *oldURL); err != nil {
			log.Printf("failed to delete old avatar for user %s: %v", user.ID, err)
		}
	}

	s.achievementService.CheckAndUnlockAsync(user.ID)

	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      buildUserResponse(user),
	}, nil
}

func buildUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.Name,
		AvatarURL: user.AvatarURL,
		XP:        user.XP,
	}
	if user.Profile != nil {
		resp.FullName = user.Profile.FullName
		resp.FirstName = user.Profile.FirstName
		resp.Bio = user.Profile.Bio
	}
	return resp
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
