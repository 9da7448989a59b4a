package services

import (
	"testing"

	"gastos/internal/models"
	"gastos/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)

		category, err := svc.CreateCategory(tenant.ID, "Supermercado", "#ff0000", nil)
		testutil.AssertNoError(t, err)
		if category.Name != "Supermercado" {
			t.Errorf("expected name Supermercado, got %s", category.Name)
		}
		if category.Color != "#ff0000" {
			t.Errorf("expected color #ff0000, got %s", category.Color)
		}
	})

	t.Run("defaults_color_when_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)

		category, err := svc.CreateCategory(tenant.ID, "Ocio", "", nil)
		testutil.AssertNoError(t, err)
		if category.Color != models.DefaultCategoryColor {
			t.Errorf("expected default color %s, got %s", models.DefaultCategoryColor, category.Color)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)

		_, err := svc.CreateCategory(tenant.ID, "", "#ff0000", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetCategories(t *testing.T) {
	t.Run("ordered_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)
		for _, name := range []string{"Transporte", "Alquiler", "Luz"} {
			_, err := svc.CreateCategory(tenant.ID, name, "", nil)
			testutil.AssertNoError(t, err)
		}

		categories, err := svc.GetCategories(tenant.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(categories))
		}
		want := []string{"Alquiler", "Luz", "Transporte"}
		for i, name := range want {
			if categories[i].Name != name {
				t.Errorf("position %d: expected %s, got %s", i, name, categories[i].Name)
			}
		}
	})

	t.Run("scoped_to_tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenantA := testutil.CreateTestTenant(t, db)
		tenantB := testutil.CreateTestTenant(t, db)
		testutil.CreateTestCategory(t, db, tenantA.ID)

		categories, err := svc.GetCategories(tenantB.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories for other tenant, got %d", len(categories))
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("partial_update_keeps_other_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)
		category := testutil.CreateTestCategory(t, db, tenant.ID)

		updated, err := svc.UpdateCategory(tenant.ID, category.ID, "Renamed", "", nil)
		testutil.AssertNoError(t, err)
		if updated.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %s", updated.Name)
		}
		if updated.Color != category.Color {
			t.Errorf("expected color to survive, got %s", updated.Color)
		}
	})

	t.Run("cross_tenant_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenantA := testutil.CreateTestTenant(t, db)
		tenantB := testutil.CreateTestTenant(t, db)
		category := testutil.CreateTestCategory(t, db, tenantA.ID)

		_, err := svc.UpdateCategory(tenantB.ID, category.ID, "Hijacked", "", nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)
		category := testutil.CreateTestCategory(t, db, tenant.ID)

		err := svc.DeleteCategory(tenant.ID, category.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetCategoryByID(tenant.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		tenant := testutil.CreateTestTenant(t, db)

		err := svc.DeleteCategory(tenant.ID, "not-a-real-id")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
