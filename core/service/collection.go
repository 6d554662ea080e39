package service

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
)

const (
	StoreKey      = "services"
	DeletePrompt  = "Êtes-vous sûr de vouloir supprimer ce service ?"
	codePrefix    = "SRV"
	codeTakenText = "un service avec ce code existe déjà"
)

var ErrNotFound = errors.New("service not found")

type Collection struct {
	coll       *collection.Collection[Service]
	validate   *validator.Validate
	translator ut.Translator
}

func NewCollection(
	store core.KVStore,
	validate *validator.Validate,
	translator ut.Translator,
	seed []Service,
	opts ...collection.Option,
) *Collection {
	return &Collection{
		coll:       collection.New(store, StoreKey, seed, func(s Service) string { return s.CodeServ }, opts...),
		validate:   validate,
		translator: translator,
	}
}

func notFound(err error) error {
	if err == collection.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (c *Collection) All(ctx context.Context) ([]Service, error) {
	return c.coll.All(ctx)
}

func (c *Collection) List(ctx context.Context, filter QueryFilter) ([]Service, error) {
	filter.Clean()
	return c.coll.Filter(ctx, filter.Match)
}

func (c *Collection) Get(ctx context.Context, code string) (Service, error) {
	s, err := c.coll.Get(ctx, code)
	return s, notFound(err)
}

func (c *Collection) Create(ctx context.Context, ns NewService) (Service, error) {
	ns.clean()
	if err := core.TranslateErrors(c.validate.Struct(ns), c.translator); err != nil {
		return Service{}, err
	}
	return c.coll.Create(ctx, func(taken func(string) bool) (Service, error) {
		code := ns.CodeServ
		if code == "" {
			code = collection.GenerateCode(codePrefix, taken)
		} else if taken(code) {
			return Service{}, core.NewValidationError(nil, core.FieldError{Field: "codeServ", Error: codeTakenText})
		}
		return Service{
			CodeServ:    code,
			Designation: ns.Designation,
			Cout:        ns.Cout,
			Duree:       ns.Duree,
			Description: ns.Description,
		}, nil
	})
}

func (c *Collection) Update(ctx context.Context, code string, us UpdateService) (Service, error) {
	us.clean()
	if err := core.TranslateErrors(c.validate.Struct(us), c.translator); err != nil {
		return Service{}, err
	}
	s, err := c.coll.Update(ctx, code, func(cur Service) (Service, error) {
		return Service{
			CodeServ:    cur.CodeServ,
			Designation: us.Designation,
			Cout:        us.Cout,
			Duree:       us.Duree,
			Description: us.Description,
		}, nil
	})
	return s, notFound(err)
}

// Delete removes the Service once confirm agrees. Amenagements referencing it are left untouched.
func (c *Collection) Delete(ctx context.Context, code string, confirm collection.Confirmer) (bool, error) {
	return c.coll.Delete(ctx, code, confirm, DeletePrompt)
}

func (c *Collection) Reset(ctx context.Context) error {
	return c.coll.Reset(ctx)
}
