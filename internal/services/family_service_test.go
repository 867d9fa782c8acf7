package services

import (
	"testing"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyFamily(t *testing.T) {
	db := newTestDB(t)
	svc := NewFamilyService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	admin := seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")
	seedUser(t, db, &family.ID, models.RoleMember, "Zeynep Kaya", "zeynep@example.com", "zeynep")

	resp, err := svc.MyFamily(admin)
	require.NoError(t, err)
	assert.Equal(t, family.ID, resp.ID)
	assert.Len(t, resp.Members, 2)
	assert.Len(t, resp.Admins, 1)
	assert.Equal(t, admin.ID, resp.Admins[0].ID)

	loner := seedUser(t, db, nil, models.RoleMember, "Ali Demir", "ali@example.com", "ali")
	_, err = svc.MyFamily(loner)
	assert.ErrorIs(t, err, authz.ErrNoFamily)
}

func TestCreateFamily(t *testing.T) {
	db := newTestDB(t)
	svc := NewFamilyService(db)

	loner := seedUser(t, db, nil, models.RoleMember, "Ali Demir", "ali@example.com", "ali")

	resp, err := svc.Create(loner, &dto.CreateFamilyRequest{Name: "Demir Family"})
	require.NoError(t, err)
	assert.Equal(t, "Demir Family", resp.Name)
	assert.Len(t, resp.InviteCode, 8)
	require.Len(t, resp.Admins, 1)
	assert.Equal(t, loner.ID, resp.Admins[0].ID)

	stored := reloadUser(t, db, loner.ID)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	require.NotNil(t, stored.FamilyID)
	assert.Equal(t, resp.ID, *stored.FamilyID)

	_, err = svc.Create(stored, &dto.CreateFamilyRequest{Name: "Second Family"})
	assert.ErrorIs(t, err, ErrAlreadyInFamily)
}

func TestJoinFamily(t *testing.T) {
	db := newTestDB(t)
	svc := NewFamilyService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	t.Run("codes match case-insensitively", func(t *testing.T) {
		loner := seedUser(t, db, nil, models.RoleMember, "Ali Demir", "ali@example.com", "ali")

		resp, err := svc.Join(loner, " kaya1234 ")
		require.NoError(t, err)
		assert.Equal(t, family.ID, resp.ID)
		assert.Len(t, resp.Members, 2)

		stored := reloadUser(t, db, loner.ID)
		require.NotNil(t, stored.FamilyID)
		assert.Equal(t, family.ID, *stored.FamilyID)
		assert.Equal(t, models.RoleMember, stored.Role)
	})

	t.Run("unknown code leaves user unchanged", func(t *testing.T) {
		loner := seedUser(t, db, nil, models.RoleMember, "Elif Sahin", "elif@example.com", "elif")

		_, err := svc.Join(loner, "NOTACODE")
		assert.ErrorIs(t, err, ErrInviteCodeNotFound)

		stored := reloadUser(t, db, loner.ID)
		assert.Nil(t, stored.FamilyID)
	})

	t.Run("already in a family", func(t *testing.T) {
		member := seedUser(t, db, &family.ID, models.RoleMember, "Can Kaya", "can@example.com", "can")
		_, err := svc.Join(member, "KAYA1234")
		assert.ErrorIs(t, err, ErrAlreadyInFamily)
	})
}

func TestRemoveMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewFamilyService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	admin := seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")
	member := seedUser(t, db, &family.ID, models.RoleMember, "Zeynep Kaya", "zeynep@example.com", "zeynep")

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		_, err := svc.RemoveMember(member, admin.ID)
		assert.ErrorIs(t, err, authz.ErrNotAdmin)
	})

	t.Run("removing the only admin is rejected", func(t *testing.T) {
		_, err := svc.RemoveMember(admin, admin.ID)
		assert.ErrorIs(t, err, authz.ErrLastAdmin)
	})

	t.Run("removal resets role and family", func(t *testing.T) {
		resp, err := svc.RemoveMember(admin, member.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Members, 1)

		stored := reloadUser(t, db, member.ID)
		assert.Nil(t, stored.FamilyID)
		assert.Equal(t, models.RoleMember, stored.Role)
	})

	t.Run("target outside the family", func(t *testing.T) {
		outsider := seedUser(t, db, nil, models.RoleMember, "Ali Demir", "ali@example.com", "ali")
		_, err := svc.RemoveMember(admin, outsider.ID)
		assert.ErrorIs(t, err, authz.ErrNotMember)
	})
}

func TestRemoveOneOfTwoAdmins(t *testing.T) {
	db := newTestDB(t)
	svc := NewFamilyService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	admin := seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")
	second := seedUser(t, db, &family.ID, models.RoleAdmin, "Zeynep Kaya", "zeynep@example.com", "zeynep")

	resp, err := svc.RemoveMember(admin, second.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Admins, 1)

	stored := reloadUser(t, db, second.ID)
	assert.Nil(t, stored.FamilyID)
	assert.Equal(t, models.RoleMember, stored.Role)
}

func TestMakeAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewFamilyService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	admin := seedUser(t, db, &family.ID, models.RoleAdmin, "Mehmet Kaya", "mehmet@example.com", "mehmet")
	member := seedUser(t, db, &family.ID, models.RoleMember, "Zeynep Kaya", "zeynep@example.com", "zeynep")

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		_, err := svc.MakeAdmin(member, member.ID)
		assert.ErrorIs(t, err, authz.ErrNotAdmin)
	})

	t.Run("promotion", func(t *testing.T) {
		resp, err := svc.MakeAdmin(admin, member.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Admins, 2)
		assert.Equal(t, models.RoleAdmin, reloadUser(t, db, member.ID).Role)
	})

	t.Run("promoting an admin again", func(t *testing.T) {
		_, err := svc.MakeAdmin(admin, member.ID)
		assert.ErrorIs(t, err, ErrAlreadyAdmin)
	})

	t.Run("target outside the family", func(t *testing.T) {
		outsider := seedUser(t, db, nil, models.RoleMember, "Ali Demir", "ali@example.com", "ali")
		_, err := svc.MakeAdmin(admin, outsider.ID)
		assert.ErrorIs(t, err, authz.ErrNotMember)
	})
}
