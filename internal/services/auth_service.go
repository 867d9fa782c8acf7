package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/emrekaraca/family-portal/internal/config"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user together with a fresh family; the user becomes its
// sole member and admin.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.checkAvailable(req.Email, req.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	family := models.Family{
		ID:   uuid.New(),
		Name: req.FamilyName,
	}
	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: string(hash),
		Role:     models.RoleAdmin,
		FamilyID: &family.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := generateInviteCode(tx)
		if err != nil {
			return err
		}
		family.InviteCode = code

		if err := tx.Create(&family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.authResponse(&user, &family)
}

// RegisterNoFamily creates a user with no family; they join one later via an
// invite code.
func (s *AuthService) RegisterNoFamily(req *dto.RegisterNoFamilyRequest) (*dto.AuthResponse, error) {
	if err := s.checkAvailable(req.Email, req.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: string(hash),
		Role:     models.RoleMember,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(&user, nil)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Preload("Family").Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(&user, user.Family)
}

// Me returns the principal's representation with family populated.
func (s *AuthService) Me(user *models.User) (*dto.UserResponse, error) {
	resp := userResponse(user)
	if user.FamilyID != nil {
		var family models.Family
		if err := s.db.First(&family, "id = ?", *user.FamilyID).Error; err != nil {
			return nil, ErrFamilyNotFound
		}
		famResp, err := buildFamilyResponse(s.db, &family)
		if err != nil {
			return nil, err
		}
		resp.Family = famResp
	}
	return &resp, nil
}

// GenerateToken signs a bearer token carrying the user id.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) checkAvailable(email, username string) error {
	var existing models.User
	err := s.db.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("availability check failed: %w", err)
	}
	return nil
}

func (s *AuthService) authResponse(user *models.User, family *models.Family) (*dto.AuthResponse, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	resp := &dto.AuthResponse{
		UserResponse: userResponse(user),
		Token:        token,
	}
	if family != nil {
		famResp, err := buildFamilyResponse(s.db, family)
		if err != nil {
			return nil, err
		}
		resp.Family = famResp
	}
	return resp, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
