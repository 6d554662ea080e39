package amenagement

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
)

const (
	StoreKey     = "amenagements"
	DeletePrompt = "Êtes-vous sûr de vouloir supprimer cet aménagement ?"
)

var ErrNotFound = errors.New("amenagement not found")

type Collection struct {
	coll       *collection.Collection[Amenagement]
	validate   *validator.Validate
	translator ut.Translator
}

func NewCollection(
	store core.KVStore,
	validate *validator.Validate,
	translator ut.Translator,
	seed []Amenagement,
	opts ...collection.Option,
) *Collection {
	return &Collection{
		coll:       collection.New(store, StoreKey, seed, func(a Amenagement) string { return a.ID }, opts...),
		validate:   validate,
		translator: translator,
	}
}

func (c *Collection) check(na *NewAmenagement) error {
	na.clean()
	return core.TranslateErrors(c.validate.Struct(na), c.translator)
}

func notFound(err error) error {
	if err == collection.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (c *Collection) All(ctx context.Context) ([]Amenagement, error) {
	return c.coll.All(ctx)
}

// List filters the amenagements. r resolves references for the search; a nil r limits it to the codes.
func (c *Collection) List(ctx context.Context, filter QueryFilter, r Resolver) ([]Amenagement, error) {
	filter.Clean()
	return c.coll.Filter(ctx, func(a Amenagement) bool { return filter.Match(a, r) })
}

func (c *Collection) Get(ctx context.Context, id string) (Amenagement, error) {
	a, err := c.coll.Get(ctx, id)
	return a, notFound(err)
}

// Create validates na and stores it under a fresh identity.
// The referenced Lot and Service are not required to exist.
func (c *Collection) Create(ctx context.Context, na NewAmenagement) (Amenagement, error) {
	if err := c.check(&na); err != nil {
		return Amenagement{}, err
	}
	return c.coll.Create(ctx, func(taken func(string) bool) (Amenagement, error) {
		id := core.NewIDFunc()
		for taken(id) {
			id = core.NewIDFunc()
		}
		return na.toAmenagement(id), nil
	})
}

func (c *Collection) Update(ctx context.Context, id string, ua UpdateAmenagement) (Amenagement, error) {
	if err := c.check(&ua); err != nil {
		return Amenagement{}, err
	}
	a, err := c.coll.Update(ctx, id, func(Amenagement) (Amenagement, error) {
		return ua.toAmenagement(id), nil
	})
	return a, notFound(err)
}

func (c *Collection) Delete(ctx context.Context, id string, confirm collection.Confirmer) (bool, error) {
	return c.coll.Delete(ctx, id, confirm, DeletePrompt)
}

func (c *Collection) Reset(ctx context.Context) error {
	return c.coll.Reset(ctx)
}
