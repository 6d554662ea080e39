package lot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/storage/kv/memkv"
	"github.com/trezcool/amenagement/tests"
)

var now = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func price(p float64) *float64 { return &p }

func seed() []lot.Lot {
	return []lot.Lot{
		{CodeLot: "LOT001", Superficie: 500, Region: "Sousse", Etat: lot.EtatAvailable, Prix: price(150000), DateCreation: core.MustParseDate("2023-01-15")},
		{CodeLot: "LOT002", Superficie: 750, Region: "Monastir", Etat: lot.EtatUnderAmenagement, Prix: price(200000), DateCreation: core.MustParseDate("2023-02-20")},
	}
}

func newLots(t *testing.T) *lot.Collection {
	t.Helper()
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = time.Now })

	validate, translator := testutil.NewValidator()
	return lot.NewCollection(memkv.New(), validate, translator, seed())
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("error = %v (%T), want *core.ValidationError", err, err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestCollection_Create(t *testing.T) {
	ctx := context.Background()
	lots := newLots(t)

	l, err := lots.Create(ctx, lot.NewLot{Superficie: 300, Region: " sfax ", Prix: price(0)})
	require.NoError(t, err)
	assert.Equal(t, "LOT1710063000000", l.CodeLot)
	assert.Equal(t, lot.Region("Sfax"), l.Region)
	assert.Equal(t, lot.EtatAvailable, l.Etat)
	assert.Nil(t, l.Prix, "a zero price is stored as absent")
	assert.Equal(t, "2024-03-10", l.DateCreation.String())

	l, err = lots.Create(ctx, lot.NewLot{CodeLot: "LOT010", Superficie: 120.5, Region: "Tunis", Etat: lot.EtatOccupied})
	require.NoError(t, err)
	assert.Equal(t, "LOT010", l.CodeLot)

	all, err := lots.All(ctx)
	require.NoError(t, err)
	if assert.Len(t, all, 4) {
		assert.Equal(t, "LOT001", all[0].CodeLot)
		assert.Equal(t, "LOT010", all[3].CodeLot)
	}
}

func TestCollection_Create_generatedCodeIsBumped(t *testing.T) {
	ctx := context.Background()
	lots := newLots(t)

	first, err := lots.Create(ctx, lot.NewLot{Superficie: 1, Region: "Tunis"})
	require.NoError(t, err)
	second, err := lots.Create(ctx, lot.NewLot{Superficie: 1, Region: "Tunis"})
	require.NoError(t, err)

	assert.Equal(t, "LOT1710063000000", first.CodeLot)
	assert.Equal(t, "LOT1710063000001", second.CodeLot)
}

func TestCollection_Create_invalid(t *testing.T) {
	ctx := context.Background()
	lots := newLots(t)

	tests := []struct {
		name       string
		nl         lot.NewLot
		wantFields []string
	}{
		{name: "duplicate code", nl: lot.NewLot{CodeLot: "LOT001", Superficie: 10, Region: "Tunis"}, wantFields: []string{"codeLot"}},
		{name: "bad code", nl: lot.NewLot{CodeLot: "LOT 9", Superficie: 10, Region: "Tunis"}, wantFields: []string{"codeLot"}},
		{name: "no area", nl: lot.NewLot{Region: "Tunis"}, wantFields: []string{"superficie"}},
		{name: "negative price", nl: lot.NewLot{Superficie: 10, Region: "Tunis", Prix: price(-1)}, wantFields: []string{"prix"}},
		{name: "unknown etat", nl: lot.NewLot{Superficie: 10, Region: "Tunis", Etat: "vendu"}, wantFields: []string{"etat"}},
		{name: "empty", nl: lot.NewLot{}, wantFields: []string{"superficie", "region"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lots.Create(ctx, tt.nl)
			flds := fieldErrors(t, err)
			for _, f := range tt.wantFields {
				assert.Contains(t, flds, f)
			}
			assert.Len(t, flds, len(tt.wantFields))
		})
	}

	all, err := lots.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "rejected lots are not stored")
}

func TestCollection_Create_regionSuggestion(t *testing.T) {
	lots := newLots(t)

	_, err := lots.Create(context.Background(), lot.NewLot{Superficie: 10, Region: "Monastirr"})
	flds := fieldErrors(t, err)
	assert.Equal(t, "région inconnue, vouliez-vous dire « Monastir » ?", flds["region"])

	_, err = lots.Create(context.Background(), lot.NewLot{Superficie: 10, Region: "Paris"})
	flds = fieldErrors(t, err)
	assert.Equal(t, "région inconnue", flds["region"])
}

func TestSuggestRegion(t *testing.T) {
	tests := []struct {
		in     string
		want   lot.Region
		wantOk bool
	}{
		{in: "sousse", want: "Sousse", wantOk: true},
		{in: "Nabel", want: "Nabeul", wantOk: true},
		{in: "sidi bouzit", want: "Sidi Bouzid", wantOk: true},
		{in: "", wantOk: false},
		{in: "xyz", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := lot.SuggestRegion(tt.in)
			if ok != tt.wantOk {
				t.Fatalf("SuggestRegion(%q) ok = %v, want %v", tt.in, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("SuggestRegion(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollection_Update(t *testing.T) {
	ctx := context.Background()
	lots := newLots(t)

	l, err := lots.Update(ctx, "LOT002", lot.UpdateLot{Superficie: 800, Region: "Monastir", Etat: lot.EtatAmenaged})
	require.NoError(t, err)
	assert.Equal(t, "LOT002", l.CodeLot)
	assert.Equal(t, "2023-02-20", l.DateCreation.String(), "creation date is kept")
	assert.Equal(t, lot.EtatAmenaged, l.Etat)
	assert.Nil(t, l.Prix)

	got, err := lots.Get(ctx, "LOT002")
	require.NoError(t, err)
	assert.Equal(t, l, got)

	all, err := lots.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "LOT002", all[1].CodeLot, "updated in place")

	_, err = lots.Update(ctx, "LOT999", lot.UpdateLot{Superficie: 1, Region: "Tunis"})
	assert.Equal(t, lot.ErrNotFound, err)
}

func TestCollection_Delete(t *testing.T) {
	ctx := context.Background()
	lots := newLots(t)

	var prompt string
	ask := collection.ConfirmFunc(func(p string) bool { prompt = p; return false })

	deleted, err := lots.Delete(ctx, "LOT001", ask)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, lot.DeletePrompt, prompt)

	deleted, err = lots.Delete(ctx, "LOT001", collection.Confirmed)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = lots.Get(ctx, "LOT001")
	assert.Equal(t, lot.ErrNotFound, err)
}

func TestCollection_List(t *testing.T) {
	ctx := context.Background()
	lots := newLots(t)

	tests := []struct {
		name   string
		filter lot.QueryFilter
		want   []string
	}{
		{name: "all", want: []string{"LOT001", "LOT002"}},
		{name: "search code", filter: lot.QueryFilter{Search: "lot002"}, want: []string{"LOT002"}},
		{name: "search region", filter: lot.QueryFilter{Search: " SOUS "}, want: []string{"LOT001"}},
		{name: "region", filter: lot.QueryFilter{Region: "Monastir"}, want: []string{"LOT002"}},
		{name: "etat", filter: lot.QueryFilter{Etat: lot.EtatAvailable}, want: []string{"LOT001"}},
		{name: "no match", filter: lot.QueryFilter{Search: "LOT", Etat: lot.EtatOccupied}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lots.List(ctx, tt.filter)
			require.NoError(t, err)
			codes := make([]string, 0, len(got))
			for _, l := range got {
				codes = append(codes, l.CodeLot)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestRegionsOf(t *testing.T) {
	lots := append(seed(), lot.Lot{CodeLot: "X", Region: "Sousse"})
	assert.Equal(t, []lot.Region{"Sousse", "Monastir"}, lot.RegionsOf(lots))
	assert.Empty(t, lot.RegionsOf(nil))
}
