package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/amenagement/apps/api/echo"
	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/user"
	"github.com/trezcool/amenagement/tests"
)

func Test_authApi_login(t *testing.T) {
	e := setup(t)

	login := func(email, pwd string) []byte {
		return marchallObj(t, LoginRequest{Email: email, Password: pwd})
	}

	tests := []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     login("", ""),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":    "ce champ est requis",
				"password": "ce champ est requis",
			}),
		},
		{
			name:     "unknown email",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     login("nobody@test.tn", testutil.Password),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     login(e.admin.Email, "not-the-password"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
	}
	runHTTPTests(t, e, tests)

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", login(" ADMIN@test.tn ", testutil.Password))
		e.serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		unmarshall(t, rec, &resp)
		claims := new(Claims)
		_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(e.conf.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, e.admin.ID, claims.Subject)
		assert.Equal(t, access.RoleAdmin, claims.Role)
		assert.Equal(t, claims.IssuedAt, claims.OrigIssuedAt)
	})

	t.Run("metrics", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/metrics")
		e.serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `amenagement_logins_total{outcome="failure"} 2`)
		assert.Contains(t, rec.Body.String(), `amenagement_logins_total{outcome="success"} 1`)
	})
}

func Test_authApi_me(t *testing.T) {
	e := setup(t)

	tests := []httpTest{
		{
			name:     "no token",
			method:   http.MethodGet,
			path:     "/v1/me",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "bad token",
			method:   http.MethodGet,
			path:     "/v1/me",
			token:    "not.a.token",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "user",
			method:   http.MethodGet,
			path:     "/v1/me",
			token:    getToken(t, e.conf, e.usr),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, e.usr),
		},
	}
	runHTTPTests(t, e, tests)

	t.Run("deleted user", func(t *testing.T) {
		ghost := testutil.CreateUser(t, e.usrSvc, "Fantôme", "ghost@test.tn", access.RoleUser)
		token := getToken(t, e.conf, ghost)
		require.NoError(t, e.usrSvc.Delete(ctx(), ghost.ID))

		req, rec := newAuthRequest(http.MethodGet, "/v1/me", token)
		e.serve(req, rec)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		}, rec)
	})
}

func Test_authApi_setPassword(t *testing.T) {
	e := setup(t)
	token := getToken(t, e.conf, e.usr)

	tests := []httpTest{
		{
			name:     "mismatch",
			method:   http.MethodPut,
			path:     "/v1/me/password",
			body:     marchallObj(t, user.SetPassword{Password: "N3w-Secret!", PasswordConfirm: "other"}),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "too weak",
			method:   http.MethodPut,
			path:     "/v1/me/password",
			body:     marchallObj(t, user.SetPassword{Password: "12345678", PasswordConfirm: "12345678"}),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"password": "le mot de passe ne peut pas être entièrement numérique",
			}),
		},
		{
			name:     "ok",
			method:   http.MethodPut,
			path:     "/v1/me/password",
			body:     marchallObj(t, user.SetPassword{Password: "N3w-Secret!", PasswordConfirm: "N3w-Secret!"}),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Success: "Le mot de passe a été modifié."}),
		},
	}
	runHTTPTests(t, e, tests)

	_, err := e.usrSvc.Authenticate(ctx(), user.Credentials{Email: e.usr.Email, Password: "N3w-Secret!"})
	assert.NoError(t, err)
}

func Test_authApi_refreshToken(t *testing.T) {
	e := setup(t)

	t.Run("expired refresh", func(t *testing.T) {
		claims := GetUserClaims(e.conf, e.usr, time.Now().Add(-5*time.Hour).Unix())
		token, err := GenerateToken(e.conf, claims)
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", token)
		e.serve(req, rec)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		origIat := time.Now().Add(-time.Hour).Unix()
		token, err := GenerateToken(e.conf, GetUserClaims(e.conf, e.usr, origIat))
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", token)
		e.serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		unmarshall(t, rec, &resp)
		claims := new(Claims)
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(e.conf.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, origIat, claims.OrigIssuedAt)
	})
}

func TestGetUserClaims(t *testing.T) {
	origNow := core.NowFunc
	t.Cleanup(func() { core.NowFunc = origNow })
	now := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return now }

	conf := testConfig()
	usr := user.User{ID: "id-1", Email: "a@test.tn", Name: "A", Role: access.RoleUser}
	claims := GetUserClaims(conf, usr)

	assert.Equal(t, "id-1", claims.Subject)
	assert.Equal(t, conf.AppName, claims.Issuer)
	assert.Equal(t, now.Unix(), claims.IssuedAt)
	assert.Equal(t, now.Unix(), claims.OrigIssuedAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt)
	assert.Equal(t, access.RoleUser, claims.AccessRole())
}
