package services

import (
	"testing"

	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:       "Ayse Yilmaz",
		Email:      "ayse@example.com",
		Username:   "ayse",
		Password:   "password123",
		FamilyName: "Yilmaz Family",
	}
}

func TestRegisterCreatesFamilyWithSoleAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "ayse@example.com", resp.Email)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.Token)

	require.NotNil(t, resp.Family)
	assert.Equal(t, "Yilmaz Family", resp.Family.Name)
	assert.Len(t, resp.Family.Members, 1)
	assert.Len(t, resp.Family.Admins, 1)
	assert.Equal(t, resp.ID, resp.Family.Admins[0].ID)

	assert.Len(t, resp.Family.InviteCode, 8)
	for _, r := range resp.Family.InviteCode {
		assert.Contains(t, inviteCodeCharset, string(r))
	}

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "ayse@example.com").Error)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	t.Run("same email", func(t *testing.T) {
		req := registerRequest()
		req.Username = "ayse2"
		_, err := svc.Register(req)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("same username", func(t *testing.T) {
		req := registerRequest()
		req.Email = "other@example.com"
		_, err := svc.Register(req)
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestRegisterPropagatesLookupFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A failed availability lookup must not read as "available".
	_, err = svc.Register(registerRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)
	assert.Contains(t, err.Error(), "availability check failed")
}

func TestRegisterNoFamily(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.RegisterNoFamily(&dto.RegisterNoFamilyRequest{
		Name:     "Mehmet Kaya",
		Email:    "mehmet@example.com",
		Username: "mehmet",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleMember, resp.Role)
	assert.Nil(t, resp.Family)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "mehmet@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "mehmet", resp.Username)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.Family)
		assert.Equal(t, "KAYA1234", resp.Family.InviteCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "mehmet@example.com", Password: "nope12345"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Zeynep Kaya", "zeynep@example.com", "zeynep")

	signed, err := svc.GenerateToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
}

func TestMeIncludesFamily(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	admin := seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")
	seedUser(t, db, &family.ID, models.RoleMember, "Zeynep Kaya", "zeynep@example.com", "zeynep")

	resp, err := svc.Me(admin)
	require.NoError(t, err)
	require.NotNil(t, resp.Family)
	assert.Len(t, resp.Family.Members, 2)
	assert.Len(t, resp.Family.Admins, 1)

	loner := seedUser(t, db, nil, models.RoleMember, "Ali Demir", "ali@example.com", "ali")
	resp, err = svc.Me(loner)
	require.NoError(t, err)
	assert.Nil(t, resp.Family)
}
