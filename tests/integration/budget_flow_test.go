package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// seedBudget loads a full year of 2023 data through the API and returns the
// rent fixed expense ID. Past years resolve relative periods against December.
func seedBudget(t *testing.T, app *testApp, token string) string {
	t.Helper()

	app.mustRequest(t, "PUT", "/api/v1/income",
		`{"key":"monthlyIncome","year":2023,"amount":"3000"}`, token, http.StatusOK)

	res := app.mustRequest(t, "POST", "/api/v1/fixed-expenses",
		`{"name":"Rent","amount":"1000","months":[1,2,3,4,5,6,7,8,9,10,11,12],"year":2023}`, token, http.StatusCreated)
	rentID := res["fixed_expense"].(map[string]interface{})["id"].(string)

	app.mustRequest(t, "PUT", "/api/v1/fixed-expenses/"+rentID+"/overrides/11",
		`{"amount":"1500"}`, token, http.StatusOK)

	app.mustRequest(t, "POST", "/api/v1/expenses",
		`{"name":"Groceries","amount":"200","kind":"monthly","month":12,"year":2023}`, token, http.StatusCreated)
	app.mustRequest(t, "POST", "/api/v1/expenses",
		`{"name":"Dinner","amount":"150","kind":"monthly","month":11,"year":2023}`, token, http.StatusCreated)
	app.mustRequest(t, "POST", "/api/v1/expenses",
		`{"name":"Insurance","amount":"600","kind":"yearly","year":2023}`, token, http.StatusCreated)

	app.mustRequest(t, "PUT", "/api/v1/income/overrides/12",
		`{"amount":"3500","year":2023}`, token, http.StatusOK)

	return rentID
}

func TestBudgetFlow_Dashboard(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dash@test.com", "password123")
	seedBudget(t, app, token)

	t.Run("this month of a past year is December", func(t *testing.T) {
		res := app.mustRequest(t, "GET", "/api/v1/summary/dashboard?year=2023", "", token, http.StatusOK)

		if res["reference_month"] != float64(12) {
			t.Errorf("expected reference month 12, got %v", res["reference_month"])
		}
		summary := res["summary"].(map[string]interface{})
		assertAmount(t, summary, "total_spent", "1200")
		assertAmount(t, summary, "total_income", "3500")
		assertAmount(t, summary, "total_remaining", "2300")
		assertAmount(t, res, "yearly_expenses", "600")
	})

	t.Run("past three months", func(t *testing.T) {
		res := app.mustRequest(t, "GET", "/api/v1/summary/dashboard?year=2023&period=past_3_months", "", token, http.StatusOK)

		summary := res["summary"].(map[string]interface{})
		if months := summary["months"].([]interface{}); len(months) != 3 {
			t.Fatalf("expected 3 months, got %d", len(months))
		}
		assertAmount(t, summary, "total_spent", "3850")
		assertAmount(t, summary, "total_income", "9500")
		assertAmount(t, summary, "total_remaining", "5650")
	})

	t.Run("unknown period", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/summary/dashboard?period=weekly", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_PERIOD" {
			t.Errorf("expected INVALID_PERIOD, got %s", code)
		}
	})
}

func TestBudgetFlow_WindowMonthAndYear(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "year@test.com", "password123")
	seedBudget(t, app, token)

	window := app.mustRequest(t, "GET", "/api/v1/summary/window?year=2023&months=10,11,11", "", token, http.StatusOK)
	assertAmount(t, window, "total_spent", "2650")
	if months := window["months"].([]interface{}); len(months) != 2 {
		t.Errorf("expected duplicate months counted once, got %d months", len(months))
	}

	month := app.mustRequest(t, "GET", "/api/v1/summary/months/11?year=2023", "", token, http.StatusOK)
	figure := month["figure"].(map[string]interface{})
	assertAmount(t, figure, "fixed", "1500")
	assertAmount(t, figure, "ad_hoc", "150")
	assertAmount(t, figure, "spent", "1650")
	if month["income_overridden"] != false {
		t.Errorf("expected November income not overridden, got %v", month["income_overridden"])
	}

	december := app.mustRequest(t, "GET", "/api/v1/summary/months/12?year=2023", "", token, http.StatusOK)
	if december["income_overridden"] != true {
		t.Errorf("expected December income overridden, got %v", december["income_overridden"])
	}

	year := app.mustRequest(t, "GET", "/api/v1/summary/years/2023", "", token, http.StatusOK)
	assertAmount(t, year, "yearly_expenses", "600")
	assertAmount(t, year, "total_spent", "13450")
	assertAmount(t, year, "total_income", "36500")
	assertAmount(t, year, "total_remaining", "23050")

	chart := app.mustRequest(t, "GET", "/api/v1/summary/chart?year=2023&period=entire_year", "", token, http.StatusOK)
	if points := chart["points"].([]interface{}); len(points) != 12 {
		t.Errorf("expected 12 chart points, got %d", len(points))
	}
}

func TestBudgetFlow_OverrideLifecycle(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "override@test.com", "password123")
	rentID := seedBudget(t, app, token)

	// Waive December rent
	app.mustRequest(t, "PUT", "/api/v1/fixed-expenses/"+rentID+"/overrides/12",
		`{"amount":"0"}`, token, http.StatusOK)
	month := app.mustRequest(t, "GET", "/api/v1/summary/months/12?year=2023", "", token, http.StatusOK)
	assertAmount(t, month["figure"].(map[string]interface{}), "fixed", "0")

	// Clearing restores the base amount
	app.mustRequest(t, "DELETE", "/api/v1/fixed-expenses/"+rentID+"/overrides/12", "", token, http.StatusOK)
	month = app.mustRequest(t, "GET", "/api/v1/summary/months/12?year=2023", "", token, http.StatusOK)
	assertAmount(t, month["figure"].(map[string]interface{}), "fixed", "1000")

	// Clearing again finds nothing
	rec := app.request("DELETE", "/api/v1/fixed-expenses/"+rentID+"/overrides/12", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "OVERRIDE_NOT_FOUND" {
		t.Errorf("expected OVERRIDE_NOT_FOUND, got %s", code)
	}

	// Removing the fixed expense drops it from every month
	app.mustRequest(t, "DELETE", "/api/v1/fixed-expenses/"+rentID, "", token, http.StatusOK)
	year := app.mustRequest(t, "GET", "/api/v1/summary/years/2023", "", token, http.StatusOK)
	assertAmount(t, year, "total_spent", "950")
}

func TestBudgetFlow_FixedExpenseMonthRules(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "rules@test.com", "password123")

	res := app.mustRequest(t, "POST", "/api/v1/fixed-expenses",
		`{"name":"Gym","amount":"40","months":[1,2,3],"year":2023}`, token, http.StatusCreated)
	gymID := res["fixed_expense"].(map[string]interface{})["id"].(string)

	rec := app.request("PUT", "/api/v1/fixed-expenses/"+gymID+"/overrides/6", `{"amount":"10"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month outside the schedule, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_MONTH" {
		t.Errorf("expected INVALID_MONTH, got %s", code)
	}

	rec = app.request("POST", "/api/v1/fixed-expenses",
		`{"name":"Gym","amount":"40","months":[1,13],"year":2023}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rec.Code)
	}
}

func TestBudgetFlow_UserIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken, _, _ := app.registerUser(t, "alice@test.com", "password123")
	bobToken, _, _ := app.registerUser(t, "bob@test.com", "password123")
	rentID := seedBudget(t, app, aliceToken)

	rec := app.request("GET", "/api/v1/fixed-expenses/"+rentID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's fixed expense, got %d", rec.Code)
	}

	year := app.mustRequest(t, "GET", "/api/v1/summary/years/2023", "", bobToken, http.StatusOK)
	assertAmount(t, year, "total_spent", "0")
	assertAmount(t, year, "total_income", "0")
}

func TestBudgetFlow_SavingsGoalProgress(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "goal@test.com", "password123")
	seedBudget(t, app, token)

	cases := []struct {
		target    string
		remaining string
		reached   bool
	}{
		{"20000", "0", true},
		{"30000", "6950", false},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			body := fmt.Sprintf(`{"name":"Goal %s","target_amount":%q,"year":2023}`, tc.target, tc.target)
			res := app.mustRequest(t, "POST", "/api/v1/savings-goals", body, token, http.StatusCreated)
			goalID := res["savings_goal"].(map[string]interface{})["id"].(string)

			res = app.mustRequest(t, "GET", "/api/v1/savings-goals/"+goalID+"/progress", "", token, http.StatusOK)
			progress := res["progress"].(map[string]interface{})
			assertAmount(t, progress, "saved", "23050")
			assertAmount(t, progress, "remaining", tc.remaining)
			if progress["reached"] != tc.reached {
				t.Errorf("expected reached %v, got %v", tc.reached, progress["reached"])
			}
		})
	}
}
