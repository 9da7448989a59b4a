package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestInvitationFlow(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.registerUser(t)

	// Admin invites a new member.
	w := app.request(t, http.MethodPost, "/api/invitations", adminToken, map[string]interface{}{
		"email": "prima@example.com",
		"role":  "child",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	invitation := parseJSON(t, w)
	code, _ := invitation["code"].(string)
	if len(code) != 8 {
		t.Fatalf("expected 8-character code, got %q", code)
	}
	link, _ := invitation["invite_link"].(string)
	if !strings.Contains(link, "?code="+code) {
		t.Errorf("expected shareable link carrying the code, got %q", link)
	}

	// Invitee registers with the code and lands in the admin's tenant.
	w = app.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":          "prima@example.com",
		"password":       "password123",
		"invitationCode": code,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("invited registration failed with %d: %s", w.Code, w.Body.String())
	}
	inviteeToken, _ := parseJSON(t, w)["token"].(string)

	// Both now see the same family member list.
	w = app.request(t, http.MethodGet, "/api/family-members", inviteeToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	members := parseJSONArray(t, w)
	if len(members) != 2 {
		t.Fatalf("expected admin and invitee as members, got %d", len(members))
	}

	// Admin sees the invitation as accepted.
	w = app.request(t, http.MethodGet, "/api/invitations", adminToken, nil)
	invitations := parseJSONArray(t, w)
	if len(invitations) != 1 {
		t.Fatalf("expected 1 invitation, got %d", len(invitations))
	}
	accepted, _ := invitations[0].(map[string]interface{})
	if accepted["accepted_at"] == nil {
		t.Error("expected invitation stamped accepted")
	}

	// The code cannot be used again.
	w = app.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":          "otra@example.com",
		"password":       "password123",
		"invitationCode": code,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reused code, got %d", w.Code)
	}
	if body := parseJSON(t, w); body["error"] != "Invitation has already been accepted" {
		t.Errorf("unexpected error message %v", body["error"])
	}
}

func TestFamilyMemberFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t)

	// The admin is a member of their own family from registration.
	w := app.request(t, http.MethodGet, "/api/family-members", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	members := parseJSONArray(t, w)
	if len(members) != 1 {
		t.Fatalf("expected 1 member after registration, got %d", len(members))
	}
	member, _ := members[0].(map[string]interface{})
	memberID, _ := member["id"].(string)

	t.Run("update_allocation", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/family-members/"+memberID, token, map[string]interface{}{
			"allocation_percentage": 75,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := parseJSON(t, w); body["allocation_percentage"] != float64(75) {
			t.Errorf("expected allocation 75, got %v", body["allocation_percentage"])
		}
	})

	t.Run("rejects_allocation_above_100", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/family-members/"+memberID, token, map[string]interface{}{
			"allocation_percentage": 150,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/family-members/"+memberID, token, map[string]interface{}{
			"role": "grandparent",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("delete_member", func(t *testing.T) {
		w := app.request(t, http.MethodDelete, "/api/family-members/"+memberID, token, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}

		w = app.request(t, http.MethodGet, "/api/family-members", token, nil)
		if remaining := parseJSONArray(t, w); len(remaining) != 0 {
			t.Errorf("expected empty member list, got %d", len(remaining))
		}
	})
}
