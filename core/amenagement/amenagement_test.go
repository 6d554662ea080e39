package amenagement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
	"github.com/trezcool/amenagement/storage/kv/memkv"
	"github.com/trezcool/amenagement/tests"
)

type resolver struct {
	lots     map[string]lot.Lot
	services map[string]service.Service
}

func (r resolver) ResolveLot(code string) (lot.Lot, bool) {
	l, ok := r.lots[code]
	return l, ok
}

func (r resolver) ResolveService(code string) (service.Service, bool) {
	s, ok := r.services[code]
	return s, ok
}

var (
	refs = resolver{
		lots:     map[string]lot.Lot{"LOT001": {CodeLot: "LOT001", Region: "Sousse"}},
		services: map[string]service.Service{"SRV002": {CodeServ: "SRV002", Designation: "Raccordement eau potable"}},
	}
	seed = []amenagement.Amenagement{
		{ID: "1", CodeLot: "LOT001", CodeServ: "SRV001", DateAmenagement: core.MustParseDate("2024-01-15"), Statut: amenagement.StatusPlanned},
		{ID: "2", CodeLot: "LOT002", CodeServ: "SRV002", DateAmenagement: core.MustParseDate("2023-12-01"), Statut: amenagement.StatusInProgress},
		{ID: "3", CodeLot: "LOT404", CodeServ: "SRV404", DateAmenagement: core.MustParseDate("2023-11-15"), Statut: amenagement.StatusDone},
	}
)

func newAmenagements(t *testing.T) *amenagement.Collection {
	t.Helper()
	validate, translator := testutil.NewValidator()
	return amenagement.NewCollection(memkv.New(), validate, translator, seed)
}

func TestCollection_Create(t *testing.T) {
	ctx := context.Background()
	as := newAmenagements(t)

	a, err := as.Create(ctx, amenagement.NewAmenagement{
		CodeLot:         "LOT999",
		CodeServ:        "SRV001",
		DateAmenagement: core.MustParseDate("2024-05-01"),
	})
	require.NoError(t, err, "dangling references are accepted")
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, amenagement.StatusPlanned, a.Statut)

	_, err = as.Create(ctx, amenagement.NewAmenagement{Statut: "fini"})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Create() error = %v, want *core.ValidationError", err)
	}
	fields := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"codeLot", "codeServ", "dateAmenagement", "statut"}, fields)
}

func TestCollection_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	as := newAmenagements(t)

	a, err := as.Update(ctx, "2", amenagement.UpdateAmenagement{
		CodeLot:         "LOT002",
		CodeServ:        "SRV002",
		DateAmenagement: core.MustParseDate("2023-12-01"),
		Statut:          amenagement.StatusDone,
		Observations:    " Réception faite ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", a.ID)
	assert.Equal(t, amenagement.StatusDone, a.Statut)
	assert.Equal(t, "Réception faite", a.Observations)

	_, err = as.Get(ctx, "404")
	assert.Equal(t, amenagement.ErrNotFound, err)

	deleted, err := as.Delete(ctx, "1", collection.Confirmed)
	require.NoError(t, err)
	assert.True(t, deleted)
	all, err := as.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCollection_List(t *testing.T) {
	as := newAmenagements(t)

	tests := []struct {
		name     string
		filter   amenagement.QueryFilter
		resolver amenagement.Resolver
		want     []string
	}{
		{name: "all", want: []string{"1", "2", "3"}},
		{name: "code", filter: amenagement.QueryFilter{Search: "lot002"}, want: []string{"2"}},
		{name: "region", filter: amenagement.QueryFilter{Search: "sousse"}, resolver: refs, want: []string{"1"}},
		{name: "region without resolver", filter: amenagement.QueryFilter{Search: "sousse"}, want: []string{}},
		{name: "designation", filter: amenagement.QueryFilter{Search: "potable"}, resolver: refs, want: []string{"2"}},
		{name: "dangling", filter: amenagement.QueryFilter{Search: "404"}, resolver: refs, want: []string{"3"}},
		{name: "statut", filter: amenagement.QueryFilter{Statut: amenagement.StatusDone}, resolver: refs, want: []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := as.List(context.Background(), tt.filter, tt.resolver)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
