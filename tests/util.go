package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
)

const Password = "Pa$$w0rd!"

// NewValidator returns a validator with every domain tag and translation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	dataset.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(t *testing.T, svc *user.Service, name, email string, role access.Role) user.User {
	t.Helper()
	usr, err := svc.Create(context.Background(), user.NewUser{
		Name:            name,
		Email:           email,
		Role:            role,
		Password:        Password,
		PasswordConfirm: Password,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CheckKVStore runs the behaviour every core.KVStore backend must share.
func CheckKVStore(t *testing.T, store core.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.Equal(t, core.ErrKeyNotFound, errors.Cause(err))

	require.NoError(t, store.Set(ctx, "lots", []byte(`[1,2]`)))
	got, err := store.Get(ctx, "lots")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	require.NoError(t, store.Set(ctx, "lots", []byte(`[]`)))
	got, err = store.Get(ctx, "lots")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// Load seeds a missing key and then reads it back
	def := []record{{Name: "a", Count: 1}}
	recs, err := core.Load(ctx, store, "records", def)
	require.NoError(t, err)
	assert.Equal(t, def, recs)

	require.NoError(t, core.Save(ctx, store, "records", append(recs, record{Name: "b", Count: 2})))
	recs, err = core.Load(ctx, store, "records", def)
	require.NoError(t, err)
	assert.Equal(t, []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}, recs)

	// unreadable values fall back to the default, which is persisted
	require.NoError(t, store.Set(ctx, "records", []byte(`{not json`)))
	recs, err = core.Load(ctx, store, "records", def)
	require.NoError(t, err)
	assert.Equal(t, def, recs)
	got, err = store.Get(ctx, "records")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a","count":1}]`, string(got))
}
