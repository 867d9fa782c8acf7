package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FamilyService struct {
	db *gorm.DB
}

func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// MyFamily returns the principal's family with members and admins populated.
func (s *FamilyService) MyFamily(user *models.User) (*dto.FamilyResponse, error) {
	if err := authz.RequireFamily(user); err != nil {
		return nil, err
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", *user.FamilyID).Error; err != nil {
		return nil, ErrFamilyNotFound
	}
	return buildFamilyResponse(s.db, &family)
}

// Create starts a new family for an unaffiliated user, who becomes its sole
// member and admin.
func (s *FamilyService) Create(user *models.User, req *dto.CreateFamilyRequest) (*dto.FamilyResponse, error) {
	if user.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	family := models.Family{
		ID:   uuid.New(),
		Name: req.Name,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := generateInviteCode(tx)
		if err != nil {
			return err
		}
		family.InviteCode = code

		if err := tx.Create(&family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}
		updates := map[string]interface{}{"family_id": family.ID, "role": models.RoleAdmin}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to attach user to family: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.FamilyID = &family.ID
	user.Role = models.RoleAdmin
	return buildFamilyResponse(s.db, &family)
}

// Join adds an unaffiliated user to the family matching the invite code.
// Codes are matched case-insensitively; their role stays "member".
func (s *FamilyService) Join(user *models.User, inviteCode string) (*dto.FamilyResponse, error) {
	if user.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	var family models.Family
	err := s.db.Where("invite_code = ?", strings.ToUpper(strings.TrimSpace(inviteCode))).First(&family).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("invite code lookup failed: %w", err)
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("family_id", family.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	user.FamilyID = &family.ID
	return buildFamilyResponse(s.db, &family)
}

// RemoveMember detaches target from actor's family, stripping any admin
// role. Removing the last admin is rejected before any mutation.
func (s *FamilyService) RemoveMember(actor *models.User, targetID uuid.UUID) (*dto.FamilyResponse, error) {
	if err := authz.RequireFamily(actor); err != nil {
		return nil, err
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", *actor.FamilyID).Error; err != nil {
		return nil, ErrFamilyNotFound
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return nil, authz.ErrNotMember
	}

	adminCount, err := s.countAdmins(family.ID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanRemoveMember(actor, &target, adminCount); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"family_id": nil, "role": models.RoleMember}
	if err := s.db.Model(&target).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return buildFamilyResponse(s.db, &family)
}

// MakeAdmin promotes a member of actor's family to admin. There is no
// demotion counterpart; admins only leave the set by being removed from the
// family.
func (s *FamilyService) MakeAdmin(actor *models.User, targetID uuid.UUID) (*dto.FamilyResponse, error) {
	if err := authz.RequireFamily(actor); err != nil {
		return nil, err
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", *actor.FamilyID).Error; err != nil {
		return nil, ErrFamilyNotFound
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return nil, authz.ErrNotMember
	}

	if err := authz.CanPromote(actor, &target); err != nil {
		return nil, err
	}
	if target.Role == models.RoleAdmin {
		return nil, ErrAlreadyAdmin
	}

	if err := s.db.Model(&target).Update("role", models.RoleAdmin).Error; err != nil {
		return nil, fmt.Errorf("failed to promote member: %w", err)
	}

	return buildFamilyResponse(s.db, &family)
}

func (s *FamilyService) countAdmins(familyID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Scopes(scope.ForFamily(familyID)).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("admin count failed: %w", err)
	}
	return count, nil
}

// buildFamilyResponse assembles the family payload with members and admins.
// Shared with AuthService, which returns the family on register/login.
func buildFamilyResponse(db *gorm.DB, family *models.Family) (*dto.FamilyResponse, error) {
	var members []models.User
	err := db.Scopes(scope.ForFamily(family.ID)).Order("created_at asc").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load family members: %w", err)
	}

	resp := &dto.FamilyResponse{
		ID:         family.ID,
		Name:       family.Name,
		InviteCode: family.InviteCode,
		Members:    make([]dto.MemberResponse, 0, len(members)),
		Admins:     []dto.MemberResponse{},
		CreatedAt:  family.CreatedAt,
	}
	for _, m := range members {
		member := dto.MemberResponse{
			ID:       m.ID,
			Name:     m.Name,
			Email:    m.Email,
			Username: m.Username,
			Role:     m.Role,
		}
		resp.Members = append(resp.Members, member)
		if m.Role == models.RoleAdmin {
			resp.Admins = append(resp.Admins, member)
		}
	}
	return resp, nil
}
