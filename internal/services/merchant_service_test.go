package services

import (
	"testing"

	"gastos/internal/testutil"
)

func TestCreateMerchant(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMerchantService(db)

		tenant := testutil.CreateTestTenant(t, db)

		merchant, err := svc.CreateMerchant(tenant.ID, "Mercadona")
		testutil.AssertNoError(t, err)
		if merchant.Name != "Mercadona" {
			t.Errorf("expected name Mercadona, got %s", merchant.Name)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMerchantService(db)

		tenant := testutil.CreateTestTenant(t, db)

		_, err := svc.CreateMerchant(tenant.ID, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetMerchants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMerchantService(db)

	tenantA := testutil.CreateTestTenant(t, db)
	tenantB := testutil.CreateTestTenant(t, db)
	for _, name := range []string{"Zara", "Amazon", "Lidl"} {
		_, err := svc.CreateMerchant(tenantA.ID, name)
		testutil.AssertNoError(t, err)
	}

	merchants, err := svc.GetMerchants(tenantA.ID)
	testutil.AssertNoError(t, err)
	want := []string{"Amazon", "Lidl", "Zara"}
	if len(merchants) != len(want) {
		t.Fatalf("expected %d merchants, got %d", len(want), len(merchants))
	}
	for i, name := range want {
		if merchants[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, merchants[i].Name)
		}
	}

	other, err := svc.GetMerchants(tenantB.ID)
	testutil.AssertNoError(t, err)
	if len(other) != 0 {
		t.Errorf("expected no merchants for other tenant, got %d", len(other))
	}
}
