package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"

	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/models"
	"github.com/victorjere/BizTrack-SMEs/routes"
)

// setupTest wires the router against a fresh in-memory database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Transaction{}).Error)
	database.DB = db
	t.Cleanup(func() { db.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, cookie string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	raw := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, raw, "expected a session cookie")
	return strings.SplitN(raw, ";", 2)[0]
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	code, _ := body["code"].(string)
	return code
}

func signup(t *testing.T, router *gin.Engine, input map[string]interface{}) (*httptest.ResponseRecorder, string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", input)
	if w.Code != http.StatusCreated {
		return w, ""
	}
	return w, sessionCookie(t, w)
}

func registerOwner(t *testing.T, router *gin.Engine, businessName, email string) string {
	t.Helper()
	w, cookie := signup(t, router, map[string]interface{}{
		"full_name":     "Test Owner",
		"phone_number":  "0970000001",
		"email":         email,
		"password":      "secret123",
		"business_name": businessName,
		"new_business":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return cookie
}

// registerStaff joins an existing business, leaving the account PENDING.
// Returns the new account id and its session cookie.
func registerStaff(t *testing.T, router *gin.Engine, businessName, email, role string) (string, string) {
	t.Helper()
	w, cookie := signup(t, router, map[string]interface{}{
		"full_name":     "Test Staff",
		"email":         email,
		"password":      "secret123",
		"business_name": businessName,
		"role":          role,
		"new_business":  false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decodeBody(t, w)["user"].(map[string]interface{})
	return user["id"].(string), cookie
}

func approveUser(t *testing.T, router *gin.Engine, ownerCookie, userID string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPatch, "/api/users/"+userID+"/status", ownerCookie,
		map[string]interface{}{"status": models.StatusApproved})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func createProduct(t *testing.T, router *gin.Engine, cookie string, input map[string]interface{}) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/products", cookie, input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decodeBody(t, w)["product"].(map[string]interface{})
	return product["id"].(string)
}
