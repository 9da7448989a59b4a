// Package integration exercises the HTTP API end to end against an
// in-memory database: real router, middleware, handlers, and services.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gastos/internal/handlers"
	"gastos/internal/middleware"
	"gastos/internal/services"
	"gastos/internal/testutil"
	"gastos/internal/validator"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

// newTestApp wires the full API the same way the server entrypoint does,
// minus swagger and the migration runner.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Register()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	authService := services.NewAuthService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db)
	merchantService := services.NewMerchantService(db)
	memberService := services.NewFamilyMemberService(db)
	invitationService := services.NewInvitationService(db)
	recurringService := services.NewRecurringExpenseService(db)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	memberHandler := handlers.NewFamilyMemberHandler(memberService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	recurringHandler := handlers.NewRecurringExpenseHandler(recurringService)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.ResolveIdentity(db))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.RequireAuth())

	protected.GET("/user/profile", authHandler.GetProfile)
	protected.PUT("/user/language", authHandler.UpdateLanguage)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	merchants := protected.Group("/merchants")
	merchants.GET("", merchantHandler.GetMerchants)
	merchants.POST("", merchantHandler.CreateMerchant)

	members := protected.Group("/family-members")
	members.GET("", memberHandler.GetMembers)
	members.POST("", memberHandler.CreateMember)
	members.PUT("/:id", memberHandler.UpdateMember)
	members.DELETE("/:id", memberHandler.DeleteMember)

	invitations := protected.Group("/invitations")
	invitations.GET("", invitationHandler.GetInvitations)
	invitations.POST("", invitationHandler.CreateInvitation)
	invitations.DELETE("/:id", invitationHandler.DeleteInvitation)

	recurring := protected.Group("/recurring-expenses")
	recurring.GET("", recurringHandler.GetRecurringExpenses)
	recurring.POST("", recurringHandler.CreateRecurringExpense)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringExpense)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringExpense)

	return &testApp{router: router, db: db}
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer Authorization header.
func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// parseJSON decodes a response body into a generic map.
func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return body
}

// parseJSONArray decodes a response body into a generic slice.
func parseJSONArray(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var body []interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON array response %q: %v", w.Body.String(), err)
	}
	return body
}

var userSeq int

// registerUser registers a fresh tenant through the API and returns the
// bearer token issued for its admin.
func (a *testApp) registerUser(t *testing.T) string {
	t.Helper()
	userSeq++
	w := a.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    fmt.Sprintf("user%d@example.com", userSeq),
		"password": "password123",
		"tenantId": fmt.Sprintf("familia-%d", userSeq),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed with %d: %s", w.Code, w.Body.String())
	}
	body := parseJSON(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("registration did not return a token")
	}
	return token
}
