// Package dataset groups the four entity collections sharing one store.
package dataset

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
	"github.com/trezcool/amenagement/core/student"
	"github.com/trezcool/amenagement/storage/seed"
)

type Dataset struct {
	Students     *student.Collection
	Lots         *lot.Collection
	Services     *service.Collection
	Amenagements *amenagement.Collection
}

// InitValidators registers every validation tag the entity models use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.InitValidators(validate, translator)
	lot.InitValidators(validate, translator)
}

func New(
	store core.KVStore,
	validate *validator.Validate,
	translator ut.Translator,
	data seed.Data,
	opts ...collection.Option,
) *Dataset {
	return &Dataset{
		Students:     student.NewCollection(store, validate, translator, data.Students, opts...),
		Lots:         lot.NewCollection(store, validate, translator, data.Lots, opts...),
		Services:     service.NewCollection(store, validate, translator, data.Services, opts...),
		Amenagements: amenagement.NewCollection(store, validate, translator, data.Amenagements, opts...),
	}
}

// Snapshot reads the four collections.
func (ds *Dataset) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	var (
		s   analytics.Snapshot
		err error
	)
	if s.Students, err = ds.Students.All(ctx); err != nil {
		return s, err
	}
	if s.Lots, err = ds.Lots.All(ctx); err != nil {
		return s, err
	}
	if s.Services, err = ds.Services.All(ctx); err != nil {
		return s, err
	}
	s.Amenagements, err = ds.Amenagements.All(ctx)
	return s, err
}

// Resolver returns a lookup of the current lots and services.
func (ds *Dataset) Resolver(ctx context.Context) (amenagement.Resolver, error) {
	s, err := ds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Index(), nil
}

// Reset restores the seed records of every collection.
func (ds *Dataset) Reset(ctx context.Context) error {
	for _, reset := range []func(context.Context) error{
		ds.Students.Reset,
		ds.Lots.Reset,
		ds.Services.Reset,
		ds.Amenagements.Reset,
	} {
		if err := reset(ctx); err != nil {
			return err
		}
	}
	return nil
}
