package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/packkit/core"
)

func TestDefaultLookups(t *testing.T) {
	r := Default()

	assert.Equal(t, 100.0, r.Priority(CategoryDocuments))
	assert.Equal(t, 30.0, r.Priority("Pet Supplies"))
	assert.Equal(t, 25.0, r.BaseThreshold("Pet Supplies"))
	assert.Equal(t, 6, r.Cap("Pet Supplies"))
	assert.Equal(t, 10, r.Cap(CategoryClothing))

	assert.True(t, r.IsEssential("toothbrush"))
	assert.True(t, r.IsInternationalEssential("power_adapter"))
	assert.True(t, r.IsCritical(DocDriversLicense))
	assert.False(t, r.IsCritical("toothbrush"))
}

func TestThreshold(t *testing.T) {
	r := Default()

	tests := []struct {
		name       string
		category   string
		activities []string
		want       float64
	}{
		{"no activities", CategoryClothing, nil, 35},
		{"camping lowers clothing", CategoryClothing, []string{ActivityCamping}, 25},
		{"adjustments accumulate", CategoryClothing, []string{ActivityCamping, ActivitySkiing, ActivityHiking}, 15},
		{"duplicate activity counted once", CategoryClothing, []string{ActivityCamping, ActivityCamping}, 25},
		{"unrelated activity", CategoryClothing, []string{ActivityBusiness}, 35},
		{"business lowers business", CategoryBusiness, []string{ActivityBusiness}, 20},
		{"unadjusted low threshold", CategoryComfort, nil, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Threshold(tt.category, tt.activities))
		})
	}
}

func TestThresholdFloor(t *testing.T) {
	tables := DefaultTables()
	tables.ActivityAdjustments[ActivityBeach][CategoryBeach] = -50
	r, err := New(tables)
	require.NoError(t, err)

	assert.Equal(t, 10.0, r.Threshold(CategoryBeach, []string{ActivityBeach}))
	// 未调整时不套用下限
	tables2 := DefaultTables()
	tables2.ScoreThreshold[CategoryFood] = 5
	r2, err := New(tables2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, r2.Threshold(CategoryFood, nil))
}

func TestDocumentRules(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		tripType string
		origin   string
		highest  []string
		excluded []string
	}{
		{"international", core.TripInternational, "CN", []string{DocPassport}, []string{DocIDCardCN, DocIDCardUS}},
		{"domestic CN", core.TripDomestic, "CN", []string{DocIDCardCN}, []string{DocPassport, DocIDCardUS}},
		{"domestic lowercase origin", core.TripDomestic, "us", []string{DocIDCardUS}, []string{DocPassport, DocIDCardCN}},
		{"domestic other origin", core.TripDomestic, "JP", []string{DocIDCardCN, DocIDCardUS}, []string{DocPassport}},
		{"unknown trip type", "", "CN", []string{DocIDCardCN, DocIDCardUS}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.highest, r.HighestPriorityDocuments(tt.tripType, tt.origin))
			assert.Equal(t, tt.excluded, r.ExcludedDocuments(tt.tripType, tt.origin))
		})
	}
}

func TestSubCategoriesFor(t *testing.T) {
	r := Default()

	buckets, ok := r.SubCategoriesFor(CategoryClothing)
	require.True(t, ok)
	assert.Equal(t, "underwear", buckets[0].Name)

	_, ok = r.SubCategoriesFor(CategoryDocuments)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"zero default cap", func(r *Rules) { r.Defaults.Cap = 0 }},
		{"negative floor", func(r *Rules) { r.ThresholdFloor = -1 }},
		{"zero category cap", func(r *Rules) { r.MaxItemsPerCategory[CategoryFood] = 0 }},
		{"item in two buckets", func(r *Rules) {
			r.SubCategories[CategoryFood] = []Bucket{
				{Name: "a", Items: []string{"snacks"}},
				{Name: "b", Items: []string{"snacks"}},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)
			_, err := New(tables)
			require.Error(t, err)
			assert.True(t, core.IsDataIntegrity(err))
		})
	}
}

func TestUniqueTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueTags([]string{"a", "b", "a", "c", "b"}))
	assert.Nil(t, UniqueTags(nil))
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		r, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default().Cap(CategoryClothing), r.Cap(CategoryClothing))
		assert.Equal(t, []string{DocIDCardCN}, r.HighestPriorityDocuments(core.TripDomestic, "CN"))
		assert.True(t, r.IsEssential("socks"))
	})

	t.Run("file and env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
relevance_buffer: 20
score_threshold:
  Beach: 12
max_items_per_category:
  Clothing: 7
`), 0o600))
		t.Setenv("PACKKIT_DEFAULTS__CAP", "9")

		r, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 20.0, r.RelevanceBuffer)
		assert.Equal(t, 12.0, r.BaseThreshold(CategoryBeach))
		assert.Equal(t, 35.0, r.BaseThreshold(CategoryClothing), "maps merge key by key")
		assert.Equal(t, 40.0, r.BaseThreshold(CategoryDocuments))
		assert.Equal(t, 7, r.Cap(CategoryClothing))
		assert.Equal(t, 8, r.Cap(CategoryDocuments))
		assert.Equal(t, 9, r.Cap("Pet Supplies"))
		assert.Equal(t, 100.0, r.Priority(CategoryDocuments))
		assert.True(t, r.IsEssential("socks"))
	})

	t.Run("partial nested table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
activity_adjustments:
  activity_beach:
    Beach: -15
category_priority:
  Food: 55
`), 0o600))

		r, err := Load(path)
		require.NoError(t, err)
		def := Default()
		assert.Equal(t, 15.0, r.Threshold(CategoryBeach, []string{ActivityBeach}))
		assert.Equal(t, def.Threshold(CategoryPersonalCare, []string{ActivityBeach}),
			r.Threshold(CategoryPersonalCare, []string{ActivityBeach}))
		assert.Equal(t, def.Threshold(CategoryClothing, []string{ActivityCamping}),
			r.Threshold(CategoryClothing, []string{ActivityCamping}))
		assert.Equal(t, 55.0, r.Priority(CategoryFood))
		for cat := range def.CategoryPriority {
			if cat == CategoryFood {
				continue
			}
			assert.Equal(t, def.Priority(cat), r.Priority(cat), cat)
			assert.Equal(t, def.BaseThreshold(cat), r.BaseThreshold(cat), cat)
			assert.Equal(t, def.Cap(cat), r.Cap(cat), cat)
			assert.Equal(t, def.SubCategories[cat], r.SubCategories[cat], cat)
		}
		for _, origin := range []string{"CN", "US", "DE"} {
			assert.Equal(t, def.HighestPriorityDocuments(core.TripDomestic, origin),
				r.HighestPriorityDocuments(core.TripDomestic, origin))
			assert.ElementsMatch(t, def.ExcludedDocuments(core.TripDomestic, origin),
				r.ExcludedDocuments(core.TripDomestic, origin))
		}
		assert.ElementsMatch(t, def.ExcludedDocuments(core.TripInternational, "CN"),
			r.ExcludedDocuments(core.TripInternational, "CN"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestDump(t *testing.T) {
	data, err := Default().Dump()
	require.NoError(t, err)
	assert.Contains(t, string(data), "relevance_buffer: 15")
	assert.Contains(t, string(data), "Medical Kit")
}
