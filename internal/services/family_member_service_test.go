package services

import (
	"testing"

	"gastos/internal/models"
	"gastos/internal/testutil"
)

func TestCreateMember(t *testing.T) {
	t.Run("adds_user_to_default_family", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenant := testutil.CreateTestTenant(t, db)
		user := testutil.CreateTestUser(t, db, tenant.ID)
		family := testutil.FirstFamily(t, db, tenant.ID)

		member, err := svc.CreateMember(tenant.ID, user.ID, models.MemberRoleParent, 60)
		testutil.AssertNoError(t, err)
		if member.FamilyID != family.ID {
			t.Errorf("expected family %s, got %s", family.ID, member.FamilyID)
		}
		if member.AllocationPercentage != 60 {
			t.Errorf("expected allocation 60, got %d", member.AllocationPercentage)
		}
	})

	t.Run("rejects_unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenant := testutil.CreateTestTenant(t, db)

		_, err := svc.CreateMember(tenant.ID, "no-such-user", models.MemberRoleParent, 50)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("rejects_user_from_other_tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenantA := testutil.CreateTestTenant(t, db)
		tenantB := testutil.CreateTestTenant(t, db)
		outsider := testutil.CreateTestUser(t, db, tenantA.ID)

		_, err := svc.CreateMember(tenantB.ID, outsider.ID, models.MemberRoleParent, 50)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("rejects_duplicate_membership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenant := testutil.CreateTestTenant(t, db)
		user := testutil.CreateTestUser(t, db, tenant.ID)

		_, err := svc.CreateMember(tenant.ID, user.ID, models.MemberRoleParent, 50)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateMember(tenant.ID, user.ID, models.MemberRoleChild, 50)
		testutil.AssertAppError(t, err, "DUPLICATE_MEMBER")
	})

	t.Run("rejects_allocation_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenant := testutil.CreateTestTenant(t, db)
		user := testutil.CreateTestUser(t, db, tenant.ID)

		_, err := svc.CreateMember(tenant.ID, user.ID, models.MemberRoleParent, 101)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateMember(tenant.ID, user.ID, models.MemberRoleParent, -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFamilyMemberService(db)

	tenantA := testutil.CreateTestTenant(t, db)
	tenantB := testutil.CreateTestTenant(t, db)
	user := testutil.CreateTestUser(t, db, tenantA.ID)

	_, err := svc.CreateMember(tenantA.ID, user.ID, models.MemberRoleParent, 50)
	testutil.AssertNoError(t, err)

	members, err := svc.GetMembers(tenantA.ID)
	testutil.AssertNoError(t, err)
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].User == nil || members[0].User.Email != user.Email {
		t.Error("expected member row to carry its preloaded user")
	}

	other, err := svc.GetMembers(tenantB.ID)
	testutil.AssertNoError(t, err)
	if len(other) != 0 {
		t.Errorf("expected no members for other tenant, got %d", len(other))
	}
}

func TestUpdateMember(t *testing.T) {
	t.Run("updates_role_and_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenant := testutil.CreateTestTenant(t, db)
		user := testutil.CreateTestUser(t, db, tenant.ID)
		member, err := svc.CreateMember(tenant.ID, user.ID, models.MemberRoleParent, 50)
		testutil.AssertNoError(t, err)

		role := models.MemberRoleChild
		allocation := 20
		updated, err := svc.UpdateMember(tenant.ID, member.ID, &role, &allocation)
		testutil.AssertNoError(t, err)
		if updated.Role != models.MemberRoleChild {
			t.Errorf("expected role child, got %s", updated.Role)
		}
		if updated.AllocationPercentage != 20 {
			t.Errorf("expected allocation 20, got %d", updated.AllocationPercentage)
		}
	})

	t.Run("unknown_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFamilyMemberService(db)

		tenant := testutil.CreateTestTenant(t, db)

		role := models.MemberRoleChild
		_, err := svc.UpdateMember(tenant.ID, "missing", &role, nil)
		testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	})
}

func TestDeleteMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFamilyMemberService(db)

	tenant := testutil.CreateTestTenant(t, db)
	user := testutil.CreateTestUser(t, db, tenant.ID)
	member, err := svc.CreateMember(tenant.ID, user.ID, models.MemberRoleParent, 50)
	testutil.AssertNoError(t, err)

	err = svc.DeleteMember(tenant.ID, member.ID)
	testutil.AssertNoError(t, err)

	err = svc.DeleteMember(tenant.ID, member.ID)
	testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
}
