// Package authz holds the access-control rules shared by every resource
// service. All checks are pure: they operate on entities the caller has
// already loaded and never touch the database.
package authz

import (
	"errors"

	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNoFamily denies family-scoped operations to unaffiliated users.
	ErrNoFamily = errors.New("you must be part of a family")
	// ErrWrongFamily denies access to resources owned by another family.
	ErrWrongFamily = errors.New("not authorized to access this resource")
	// ErrNotAdmin denies family-administrative operations to plain members.
	ErrNotAdmin = errors.New("not authorized as family admin")
	// ErrLastAdmin rejects any mutation that would leave a family with no admins.
	ErrLastAdmin = errors.New("cannot remove the only family admin")
	// ErrNotMember rejects admin operations targeting users outside the family.
	ErrNotMember = errors.New("user is not a member of this family")
)

// RequireFamily checks that the principal belongs to a family.
func RequireFamily(user *models.User) error {
	if user.FamilyID == nil {
		return ErrNoFamily
	}
	return nil
}

// RequireSameFamily checks that a family-owned resource belongs to the
// principal's family. Identity is compared by id, not by pointer.
func RequireSameFamily(user *models.User, resourceFamilyID uuid.UUID) error {
	if err := RequireFamily(user); err != nil {
		return err
	}
	if user.FamilyID.String() != resourceFamilyID.String() {
		return ErrWrongFamily
	}
	return nil
}

// RequireAdmin checks that the principal is an admin of their own family.
func RequireAdmin(user *models.User) error {
	if err := RequireFamily(user); err != nil {
		return err
	}
	if user.Role != models.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

// CanRemoveMember decides whether actor may remove target from actor's
// family. adminCount is the family's current number of admins; removing an
// admin when it is the last one (self-removal included) is rejected so the
// family never ends up without an admin.
func CanRemoveMember(actor, target *models.User, adminCount int64) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if target.FamilyID == nil || target.FamilyID.String() != actor.FamilyID.String() {
		return ErrNotMember
	}
	if target.Role == models.RoleAdmin && adminCount <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// CanPromote decides whether actor may promote target to family admin.
func CanPromote(actor, target *models.User) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if target.FamilyID == nil || target.FamilyID.String() != actor.FamilyID.String() {
		return ErrNotMember
	}
	return nil
}
