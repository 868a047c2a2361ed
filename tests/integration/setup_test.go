package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
	"spendwise/internal/testutil"
	"spendwise/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	db := testutil.OpenTestDB(t, fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n))
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	expenseService := services.NewExpenseService(db)
	fixedExpenseService := services.NewFixedExpenseService(db)
	incomeService := services.NewIncomeService(db)
	summaryService := services.NewSummaryService(db)
	savingsGoalService := services.NewSavingsGoalService(db, summaryService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	fixedExpenseHandler := handlers.NewFixedExpenseHandler(fixedExpenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	savingsGoalHandler := handlers.NewSavingsGoalHandler(savingsGoalService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	fixed := protected.Group("/fixed-expenses")
	fixed.POST("", fixedExpenseHandler.CreateFixedExpense)
	fixed.GET("", fixedExpenseHandler.GetFixedExpenses)
	fixed.GET("/:id", fixedExpenseHandler.GetFixedExpenseByID)
	fixed.PUT("/:id", fixedExpenseHandler.UpdateFixedExpense)
	fixed.DELETE("/:id", fixedExpenseHandler.DeleteFixedExpense)
	fixed.PUT("/:id/overrides/:month", fixedExpenseHandler.SetOverride)
	fixed.DELETE("/:id/overrides/:month", fixedExpenseHandler.ClearOverride)

	income := protected.Group("/income")
	income.GET("", incomeHandler.GetIncome)
	income.PUT("", incomeHandler.SetIncome)
	income.PUT("/overrides/:month", incomeHandler.SetIncomeOverride)
	income.DELETE("/overrides/:month", incomeHandler.ClearIncomeOverride)

	goals := protected.Group("/savings-goals")
	goals.POST("", savingsGoalHandler.CreateSavingsGoal)
	goals.GET("", savingsGoalHandler.GetSavingsGoals)
	goals.GET("/:id", savingsGoalHandler.GetSavingsGoalByID)
	goals.DELETE("/:id", savingsGoalHandler.DeleteSavingsGoal)
	goals.GET("/:id/progress", savingsGoalHandler.GetSavingsGoalProgress)

	summary := protected.Group("/summary")
	summary.GET("/dashboard", summaryHandler.GetDashboard)
	summary.GET("/window", summaryHandler.GetWindow)
	summary.GET("/months/:month", summaryHandler.GetMonth)
	summary.GET("/chart", summaryHandler.GetChart)
	summary.GET("/years/:year", summaryHandler.GetYear)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustRequest is request with a status check.
func (app *testApp) mustRequest(t *testing.T, method, path, body, token string, want int) map[string]interface{} {
	t.Helper()
	rec := app.request(method, path, body, token)
	if rec.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts error.code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// assertAmount compares a decimal field, serialized as a JSON string, with want.
func assertAmount(t *testing.T, obj map[string]interface{}, key, want string) {
	t.Helper()
	v, ok := obj[key].(string)
	if !ok {
		t.Fatalf("expected %s to be a string amount, got %v", key, obj[key])
	}
	got, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("%s: %v", key, err)
	}
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", key, want, v)
	}
}
