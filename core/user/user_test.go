package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/user"
	"github.com/trezcool/amenagement/storage/kv/memkv"
	"github.com/trezcool/amenagement/tests"
)

func newService(t *testing.T) *user.Service {
	t.Helper()
	validate, translator := testutil.NewValidator()
	return user.NewService(memkv.New(), validate, translator)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	usr := testutil.CreateUser(t, svc, "Admin", " Admin@Amenagement.TN ", access.RoleAdmin)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "admin@amenagement.tn", usr.Email)
	assert.True(t, usr.IsAdmin())
	assert.Equal(t, access.RoleAdmin, usr.AccessRole())

	pwd := testutil.Password
	_, err := svc.Create(ctx, user.NewUser{Name: "Other", Email: "admin@amenagement.tn", Password: pwd, PasswordConfirm: pwd})
	if vErr, ok := err.(*core.ValidationError); assert.True(t, ok, "error = %v", err) {
		assert.Equal(t, "email", vErr.Fields[0].Field)
	}

	got, err := svc.Create(ctx, user.NewUser{Name: "Visiteur", Email: "visiteur@amenagement.tn", Password: pwd, PasswordConfirm: pwd})
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, got.Role, "role defaults to user")

	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Create_passwordPolicy(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name    string
		pwd     string
		confirm string
		wantErr string
	}{
		{name: "too short", pwd: "Ab1!", wantErr: "le mot de passe doit contenir au moins 8 caractères"},
		{name: "whitespace", pwd: "Abcd 123!", wantErr: "le mot de passe ne doit pas contenir d'espace"},
		{name: "all numeric", pwd: "1234567890", wantErr: "le mot de passe ne peut pas être entièrement numérique"},
		{name: "not complex", pwd: "abcdefgh1", wantErr: "le mot de passe doit contenir au moins 1 majuscule, 1 minuscule, 1 chiffre et 1 caractère spécial"},
		{name: "like the name", pwd: "Leila.Mansour1!", wantErr: "le mot de passe est trop proche des informations du compte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user.NewUser{
				Name:            "Leila Mansour",
				Email:           "lm@amenagement.tn",
				Password:        tt.pwd,
				PasswordConfirm: tt.pwd,
			})
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("Create() error = %v, want *core.ValidationError", err)
			}
			if assert.Len(t, vErr.Fields, 1) {
				assert.Equal(t, "password", vErr.Fields[0].Field)
				assert.Equal(t, tt.wantErr, vErr.Fields[0].Error)
			}
		})
	}

	_, err := svc.Create(context.Background(), user.NewUser{
		Name: "Leila", Email: "leila@amenagement.tn", Password: testutil.Password, PasswordConfirm: "other",
	})
	if vErr, ok := err.(*core.ValidationError); assert.True(t, ok, "error = %v", err) {
		assert.Equal(t, "passwordConfirm", vErr.Fields[0].Field)
	}
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	usr := testutil.CreateUser(t, svc, "Admin", "admin@amenagement.tn", access.RoleAdmin)

	loginAt := time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return loginAt }
	defer func() { core.NowFunc = time.Now }()

	tests := []struct {
		name    string
		creds   user.Credentials
		wantErr error
	}{
		{name: "unknown email", creds: user.Credentials{Email: "nobody@amenagement.tn", Password: testutil.Password}, wantErr: user.ErrInvalidCredentials},
		{name: "wrong password", creds: user.Credentials{Email: "admin@amenagement.tn", Password: "nope"}, wantErr: user.ErrInvalidCredentials},
		{name: "valid", creds: user.Credentials{Email: " ADMIN@amenagement.tn", Password: testutil.Password}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(ctx, tt.creds)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				assert.Equal(t, usr.ID, got.ID)
				assert.Equal(t, loginAt, got.LastLogin)
			}
		})
	}

	stored, err := svc.GetByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, loginAt, stored.LastLogin)
}

func TestService_SetPassword(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	usr := testutil.CreateUser(t, svc, "Admin", "admin@amenagement.tn", access.RoleAdmin)

	err := svc.SetPassword(ctx, usr.ID, user.SetPassword{Password: "short", PasswordConfirm: "short"})
	assert.True(t, core.IsValidationError(err), "error = %v", err)

	err = svc.SetPassword(ctx, "unknown", user.SetPassword{Password: "N3w-Secret!", PasswordConfirm: "N3w-Secret!"})
	assert.Equal(t, user.ErrNotFound, err)

	require.NoError(t, svc.SetPassword(ctx, usr.ID, user.SetPassword{Password: "N3w-Secret!", PasswordConfirm: "N3w-Secret!"}))

	_, err = svc.Authenticate(ctx, user.Credentials{Email: usr.Email, Password: testutil.Password})
	assert.Equal(t, user.ErrInvalidCredentials, err)
	_, err = svc.Authenticate(ctx, user.Credentials{Email: usr.Email, Password: "N3w-Secret!"})
	assert.NoError(t, err)
}

func TestService_GetDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	usr := testutil.CreateUser(t, svc, "Visiteur", "visiteur@amenagement.tn", access.RoleUser)

	got, err := svc.GetByEmail(ctx, "VISITEUR@amenagement.tn")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, usr.ID))
	_, err = svc.GetByEmail(ctx, usr.Email)
	assert.Equal(t, user.ErrNotFound, err)
	assert.Equal(t, user.ErrNotFound, svc.Delete(ctx, usr.ID))
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	usr := testutil.CreateUser(t, svc, "Visiteur", "visiteur@amenagement.tn", access.RoleUser)

	tests := []struct {
		name     string
		uu       user.UpdateUser
		wantName string
		wantRole access.Role
		wantErr  bool
	}{
		{name: "blank keeps values", uu: user.UpdateUser{Name: "  "}, wantName: "Visiteur", wantRole: access.RoleUser},
		{name: "promote", uu: user.UpdateUser{Role: access.RoleAdmin}, wantName: "Visiteur", wantRole: access.RoleAdmin},
		{name: "rename", uu: user.UpdateUser{Name: " Nouveau Nom "}, wantName: "Nouveau Nom", wantRole: access.RoleAdmin},
		{name: "unknown role", uu: user.UpdateUser{Role: "root"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Update(ctx, usr.ID, tt.uu)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantRole, got.Role)
			assert.Equal(t, usr.Email, got.Email)
		})
	}

	_, err := svc.Update(ctx, "unknown", user.UpdateUser{})
	assert.Equal(t, user.ErrNotFound, err)
}
