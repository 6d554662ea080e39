package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/amenagement/apps/api/echo"
	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
	logsvc "github.com/trezcool/amenagement/services/logger"
	"github.com/trezcool/amenagement/services/metrics"
	"github.com/trezcool/amenagement/storage/kv/memkv"
	"github.com/trezcool/amenagement/storage/seed"
	"github.com/trezcool/amenagement/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

type env struct {
	app     Server
	conf    *core.Config
	usrSvc  *user.Service
	data    *dataset.Dataset
	metrics *metrics.Recorder

	admin, usr user.User
}

func testConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "Aménagement",
		SecretKey: "test-secret-key",
		Build:     "test",
		Server: core.ServerConfig{
			Host:                      "localhost",
			Address:                   ":0",
			DisableRequestLogs:        true,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		Store: core.StoreConfig{Backend: core.BackendMemory},
		Log:   core.LogConfig{Level: "error"},
	}
}

// setup serves the seed data from a fresh in-memory store, with one admin and one user.
func setup(t *testing.T) *env {
	t.Helper()

	conf := testConfig()
	logger := logsvc.NewRollbarLogger(io.Discard, conf)
	logger.Enable(false)

	store := memkv.New()
	validate, translator := testutil.NewValidator()
	rec := metrics.NewRecorder()
	usrSvc := user.NewService(store, validate, translator)
	data := dataset.New(store, validate, translator, seed.Default(), collection.WithObserver(rec))

	e := &env{
		conf:    conf,
		usrSvc:  usrSvc,
		data:    data,
		metrics: rec,
		admin:   testutil.CreateUser(t, usrSvc, "Admin", "admin@test.tn", access.RoleAdmin),
		usr:     testutil.CreateUser(t, usrSvc, "Utilisateur", "user@test.tn", access.RoleUser),
	}
	e.app = NewServer(&Options{
		Conf:       conf,
		Logger:     logger,
		Metrics:    rec,
		UserSvc:    usrSvc,
		Data:       data,
		Validate:   validate,
		Translator: translator,
	})
	return e
}

func ctx() context.Context { return context.Background() }

func (e *env) serve(req *http.Request, rec *httptest.ResponseRecorder) {
	e.app.ServeHTTP(rec, req)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, e *env, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			e.serve(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}
