package integration

import (
	"net/http"
	"testing"
)

// Two tenants registered through the API must never see each other's data,
// and cross-tenant access by id must look identical to a missing resource.
func TestTenantIsolation(t *testing.T) {
	app := newTestApp(t)
	tokenA := app.registerUser(t)
	tokenB := app.registerUser(t)

	w := app.request(t, http.MethodPost, "/api/categories", tokenA, map[string]interface{}{
		"name": "Privada",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("category creation failed: %s", w.Body.String())
	}
	category := parseJSON(t, w)
	categoryID, _ := category["id"].(string)
	if categoryID == "" {
		t.Fatal("expected category id")
	}

	t.Run("lists_are_scoped", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/categories", tokenB, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if items := parseJSONArray(t, w); len(items) != 0 {
			t.Errorf("tenant B sees %d foreign categories", len(items))
		}
	})

	t.Run("cross_tenant_update_is_404", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/categories/"+categoryID, tokenB, map[string]interface{}{
			"name": "Robada",
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("cross_tenant_delete_is_404", func(t *testing.T) {
		w := app.request(t, http.MethodDelete, "/api/categories/"+categoryID, tokenB, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}

		// Still there for its owner.
		w = app.request(t, http.MethodGet, "/api/categories", tokenA, nil)
		if items := parseJSONArray(t, w); len(items) != 1 {
			t.Errorf("expected owner to keep the category, got %d items", len(items))
		}
	})

	t.Run("expenses_are_scoped", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/expenses", tokenA, map[string]interface{}{
			"amount":      20.5,
			"description": "Compra",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expense creation failed: %s", w.Body.String())
		}
		expense := parseJSON(t, w)
		expenseID, _ := expense["id"].(string)

		w = app.request(t, http.MethodGet, "/api/expenses/"+expenseID, tokenB, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign expense, got %d", w.Code)
		}

		w = app.request(t, http.MethodGet, "/api/expenses", tokenB, nil)
		body := parseJSON(t, w)
		if total, _ := body["total_items"].(float64); total != 0 {
			t.Errorf("tenant B sees %v foreign expenses", total)
		}
	})

	t.Run("foreign_category_reference_is_rejected", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/expenses", tokenB, map[string]interface{}{
			"amount":      10.0,
			"description": "Con categoria ajena",
			"category_id": categoryID,
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign category reference, got %d: %s", w.Code, w.Body.String())
		}
	})
}
