package user

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
)

const StoreKey = "users"

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("un utilisateur avec cet email existe déjà")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service manages the dashboard accounts. Accounts are keyed by their e-mail address.
type Service struct {
	accounts   *collection.Collection[account]
	validate   *validator.Validate
	translator ut.Translator
}

func NewService(store core.KVStore, validate *validator.Validate, translator ut.Translator, opts ...collection.Option) *Service {
	return &Service{
		accounts:   collection.New(store, StoreKey, []account{}, func(a account) string { return a.User.Email }, opts...),
		validate:   validate,
		translator: translator,
	}
}

func users(accts []account) []User {
	usrs := make([]User, 0, len(accts))
	for _, a := range accts {
		usrs = append(usrs, a.User)
	}
	return usrs
}

func (svc *Service) find(ctx context.Context, match func(User) bool) (account, error) {
	accts, err := svc.accounts.Filter(ctx, func(a account) bool { return match(a.User) })
	if err != nil {
		return account{}, err
	}
	if len(accts) == 0 {
		return account{}, ErrNotFound
	}
	return accts[0], nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	nu.clean()
	if err := core.TranslateErrors(svc.validate.Struct(nu), svc.translator); err != nil {
		return User{}, err
	}

	now := core.NowFunc().UTC()
	acct := account{User: User{
		ID:        core.NewIDFunc(),
		Email:     nu.Email,
		Name:      nu.Name,
		Role:      nu.Role,
		Avatar:    nu.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	if err := acct.setPassword(nu.Password); err != nil {
		return User{}, err
	}

	acct, err := svc.accounts.Create(ctx, func(func(string) bool) (account, error) { return acct, nil })
	if errors.Cause(err) == collection.ErrDuplicate {
		return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	return acct.User, err
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	accts, err := svc.accounts.All(ctx)
	if err != nil {
		return nil, err
	}
	return users(accts), nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	acct, err := svc.find(ctx, func(u User) bool { return u.ID == id })
	return acct.User, err
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	acct, err := svc.accounts.Get(ctx, core.CleanString(email, true /* lower */))
	if err == collection.ErrNotFound {
		err = ErrNotFound
	}
	return acct.User, err
}

// Authenticate checks the credentials and records the login time.
// Unknown e-mails and wrong passwords both yield ErrInvalidCredentials.
func (svc *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	email := core.CleanString(creds.Email, true /* lower */)
	acct, err := svc.accounts.Get(ctx, email)
	if err != nil {
		if err == collection.ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err = acct.checkPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}

	acct, err = svc.accounts.Update(ctx, email, func(a account) (account, error) {
		a.User.LastLogin = core.NowFunc().UTC()
		return a, nil
	})
	return acct.User, err
}

// Update changes the name, role or avatar of the User identified by id.
func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	acct, err := svc.find(ctx, func(u User) bool { return u.ID == id })
	if err != nil {
		return User{}, err
	}
	uu.clean(acct.User)
	if err = core.TranslateErrors(svc.validate.Struct(uu), svc.translator); err != nil {
		return User{}, err
	}

	acct, err = svc.accounts.Update(ctx, acct.User.Email, func(a account) (account, error) {
		a.User.Name, a.User.Role, a.User.Avatar = uu.Name, uu.Role, uu.Avatar
		a.User.UpdatedAt = core.NowFunc().UTC()
		return a, nil
	})
	return acct.User, err
}

// SetPassword validates sp against the password policy and replaces the password of the User identified by id.
func (svc *Service) SetPassword(ctx context.Context, id string, sp SetPassword) error {
	acct, err := svc.find(ctx, func(u User) bool { return u.ID == id })
	if err != nil {
		return err
	}
	sp.name, sp.email = acct.User.Name, acct.User.Email
	if err = core.TranslateErrors(svc.validate.Struct(sp), svc.translator); err != nil {
		return err
	}

	_, err = svc.accounts.Update(ctx, acct.User.Email, func(a account) (account, error) {
		if err := a.setPassword(sp.Password); err != nil {
			return a, err
		}
		a.User.UpdatedAt = core.NowFunc().UTC()
		return a, nil
	})
	return err
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	acct, err := svc.find(ctx, func(u User) bool { return u.ID == id })
	if err != nil {
		return err
	}
	_, err = svc.accounts.Delete(ctx, acct.User.Email, collection.Confirmed, "")
	return err
}

