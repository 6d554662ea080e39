package lot

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
)

const (
	StoreKey     = "lots"
	DeletePrompt = "Êtes-vous sûr de vouloir supprimer ce lot ?"
	codePrefix   = "LOT"
)

var ErrNotFound = errors.New("lot not found")

type Collection struct {
	coll       *collection.Collection[Lot]
	validate   *validator.Validate
	translator ut.Translator
}

func NewCollection(
	store core.KVStore,
	validate *validator.Validate,
	translator ut.Translator,
	seed []Lot,
	opts ...collection.Option,
) *Collection {
	return &Collection{
		coll:       collection.New(store, StoreKey, seed, func(l Lot) string { return l.CodeLot }, opts...),
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

func (c *Collection) All(ctx context.Context) ([]Lot, error) {
	return c.coll.All(ctx)
}

func (c *Collection) List(ctx context.Context, filter QueryFilter) ([]Lot, error) {
	filter.Clean()
	return c.coll.Filter(ctx, filter.Match)
}

func (c *Collection) Get(ctx context.Context, code string) (Lot, error) {
	l, err := c.coll.Get(ctx, code)
	return l, notFound(err)
}

// Create validates nl and stores it. DateCreation is set to today.
func (c *Collection) Create(ctx context.Context, nl NewLot) (Lot, error) {
	nl.clean()
	if err := core.TranslateErrors(c.validate.Struct(nl), c.translator); err != nil {
		return Lot{}, err
	}
	return c.coll.Create(ctx, func(taken func(string) bool) (Lot, error) {
		code := nl.CodeLot
		if code == "" {
			code = collection.GenerateCode(codePrefix, taken)
		} else if taken(code) {
			return Lot{}, core.NewValidationError(nil, core.FieldError{Field: "codeLot", Error: codeTakenText})
		}
		return Lot{
			CodeLot:      code,
			Superficie:   nl.Superficie,
			Region:       nl.Region,
			Etat:         nl.Etat,
			Prix:         nl.Prix,
			Description:  nl.Description,
			DateCreation: core.Today(),
		}, nil
	})
}

// Update validates ul and replaces the fields of the Lot identified by code.
// The code and the creation date are kept.
func (c *Collection) Update(ctx context.Context, code string, ul UpdateLot) (Lot, error) {
	ul.clean()
	if err := core.TranslateErrors(c.validate.Struct(ul), c.translator); err != nil {
		return Lot{}, err
	}
	l, err := c.coll.Update(ctx, code, func(cur Lot) (Lot, error) {
		return Lot{
			CodeLot:      cur.CodeLot,
			Superficie:   ul.Superficie,
			Region:       ul.Region,
			Etat:         ul.Etat,
			Prix:         ul.Prix,
			Description:  ul.Description,
			DateCreation: cur.DateCreation,
		}, nil
	})
	return l, notFound(err)
}

// Delete removes the Lot once confirm agrees. Amenagements referencing it are left untouched.
func (c *Collection) Delete(ctx context.Context, code string, confirm collection.Confirmer) (bool, error) {
	return c.coll.Delete(ctx, code, confirm, DeletePrompt)
}

func (c *Collection) Reset(ctx context.Context) error {
	return c.coll.Reset(ctx)
}
