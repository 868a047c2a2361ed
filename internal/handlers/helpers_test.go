package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"spendwise/internal/middleware"
	"spendwise/internal/validator"
)

const testUserID = "0190a8c4-7b2e-7c3d-8e4f-5a6b7c8d9e0f"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

type auditEntry struct {
	action     string
	resourceID string
}

// mockAuditService records actions instead of writing them.
type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(_, action, _, resourceID, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{action: action, resourceID: resourceID})
}

// injectUserID stands in for AuthMiddleware.
func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return body
}

func assertErrorCode(t *testing.T, body map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("want error object, got %v", body)
	}
	if errObj["code"] != code {
		t.Errorf("want error code %s, got %v", code, errObj["code"])
	}
}

func TestParseMonthList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"1,2,3", []int{1, 2, 3}, false},
		{" 12 , 1", []int{12, 1}, false},
		{"4,4", []int{4, 4}, false},
		{"", nil, true},
		{"1,,2", nil, true},
		{"0", nil, true},
		{"13", nil, true},
		{"may", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMonthList(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetUserID_missing(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if _, err := getUserID(c); err != nil {
			respondWithError(c, err)
			return
		}
		c.Status(200)
	})

	rec := doRequest(r, "GET", "/", "")

	if rec.Code != 401 {
		t.Fatalf("want 401, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
}
