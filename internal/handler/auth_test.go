package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-storefront/internal/apiclient"
	"github.com/iliyamo/cinema-storefront/internal/model"
	"github.com/iliyamo/cinema-storefront/internal/utils"
)

type authBody struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.api.loginResult = &model.AuthResult{
		Token: "backend-token",
		User:  model.User{ID: "u7", Email: "ana@example.com", FullName: "Ana"},
	}

	rec := ts.do(http.MethodPost, "/v1/auth/login", "", `{"email":"ana@example.com","password":"secret1"}`)
	requireStatus(t, rec, http.StatusOK)
	body := decode[authBody](t, rec)
	assert.Equal(t, "ana@example.com", body.User.Email)

	claims, err := utils.ParseSessionToken(testSecret, body.Token)
	require.NoError(t, err)
	assert.Equal(t, "u7", claims.Subject)
	assert.Equal(t, model.RoleCustomer, claims.Role)
	assert.Equal(t, "backend-token", claims.BackendToken)
	assert.NotContains(t, rec.Body.String(), "backend-token")
}

func TestLogin_StaffGetsAdminRole(t *testing.T) {
	ts := newTestServer(t)
	ts.api.loginResult = &model.AuthResult{
		Token: "t",
		User:  model.User{ID: "e1", Email: "staff@example.com", Position: "Manager"},
	}

	rec := ts.do(http.MethodPost, "/v1/auth/login", "", `{"email":"staff@example.com","password":"pw"}`)
	requireStatus(t, rec, http.StatusOK)
	claims, err := utils.ParseSessionToken(testSecret, decode[authBody](t, rec).Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLogin_Rejected(t *testing.T) {
	ts := newTestServer(t)
	ts.api.loginErr = apiclient.ErrUnauthorized

	rec := ts.do(http.MethodPost, "/v1/auth/login", "", `{"email":"ana@example.com","password":"wrong"}`)
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "unauthorized", decode[errorBody](t, rec).Error)
}

func TestLogin_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/auth/login", "", `{"email":"not-an-email"}`)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "email", body.Fields["Email"])
	assert.Equal(t, "required", body.Fields["Password"])

	rec = ts.do(http.MethodPost, "/v1/auth/login", "", `{"email":`)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestRegister_LogsIn(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/auth/register", "", `{
		"email":"new@example.com","password":"secret1","dob":"1990-04-02",
		"fullname":"New User","phoneNumber":"0900000000"}`)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, ts.api.registered, 1)
	assert.Equal(t, "New User", ts.api.registered[0].FullName)

	claims, err := utils.ParseSessionToken(testSecret, decode[authBody](t, rec).Token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.Equal(t, "btk-new@example.com", claims.BackendToken)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/auth/register", "", `{"email":"new@example.com","password":"123"}`)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Equal(t, "min", decode[errorBody](t, rec).Fields["Password"])
	assert.Empty(t, ts.api.registered)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v1/me", customerToken(t, "u1"), "")
	requireStatus(t, rec, http.StatusOK)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "u1", body["id"])
	assert.Equal(t, model.RoleCustomer, body["role"])
	assert.Equal(t, []string{"btk-u1"}, ts.api.tokens)

	requireStatus(t, ts.do(http.MethodGet, "/v1/me", "", ""), http.StatusUnauthorized)
	requireStatus(t, ts.do(http.MethodGet, "/v1/me", "garbage", ""), http.StatusUnauthorized)
}
