package student

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
)

const (
	StoreKey     = "students"
	DeletePrompt = "Êtes-vous sûr de vouloir supprimer cet étudiant ?"
)

var ErrNotFound = errors.New("student not found")

type Collection struct {
	coll       *collection.Collection[Student]
	validate   *validator.Validate
	translator ut.Translator
}

func NewCollection(
	store core.KVStore,
	validate *validator.Validate,
	translator ut.Translator,
	seed []Student,
	opts ...collection.Option,
) *Collection {
	return &Collection{
		coll:       collection.New(store, StoreKey, seed, func(s Student) string { return s.ID }, opts...),
		validate:   validate,
		translator: translator,
	}
}

func (c *Collection) check(ns *NewStudent) error {
	ns.clean()
	return core.TranslateErrors(c.validate.Struct(ns), c.translator)
}

func notFound(err error) error {
	if err == collection.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (c *Collection) All(ctx context.Context) ([]Student, error) {
	return c.coll.All(ctx)
}

func (c *Collection) List(ctx context.Context, filter QueryFilter) ([]Student, error) {
	filter.Clean()
	return c.coll.Filter(ctx, filter.Match)
}

func (c *Collection) Get(ctx context.Context, id string) (Student, error) {
	s, err := c.coll.Get(ctx, id)
	return s, notFound(err)
}

// Create validates ns and stores it under a fresh identity.
func (c *Collection) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := c.check(&ns); err != nil {
		return Student{}, err
	}
	return c.coll.Create(ctx, func(taken func(string) bool) (Student, error) {
		id := core.NewIDFunc()
		for taken(id) {
			id = core.NewIDFunc()
		}
		if ns.DateInscription.IsZero() {
			ns.DateInscription = core.Today()
		}
		return ns.toStudent(id), nil
	})
}

// Update validates us and replaces the fields of the Student identified by id.
func (c *Collection) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	if err := c.check(&us); err != nil {
		return Student{}, err
	}
	s, err := c.coll.Update(ctx, id, func(cur Student) (Student, error) {
		if us.DateInscription.IsZero() {
			us.DateInscription = cur.DateInscription
		}
		return us.toStudent(id), nil
	})
	return s, notFound(err)
}

// Delete removes the Student once confirm agrees. It reports whether a record was removed.
func (c *Collection) Delete(ctx context.Context, id string, confirm collection.Confirmer) (bool, error) {
	return c.coll.Delete(ctx, id, confirm, DeletePrompt)
}

func (c *Collection) Reset(ctx context.Context) error {
	return c.coll.Reset(ctx)
}
