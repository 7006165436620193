package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/store"
)

func testItem(id, category string) core.Item {
	return core.Item{
		ID:            id,
		Name:          core.LocalizedText{"en": id},
		Category:      core.LocalizedText{"en": category},
		QuantityLogic: core.QuantityLogic{Type: core.QuantityFixed, Value: 1},
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, 96, c.Len())

	items := c.Items()
	for i, it := range items {
		assert.Equal(t, i, it.Position, it.ID)
	}
	assert.Equal(t, "passport", items[0].ID)

	towel, ok := c.Get("beach_towel")
	require.True(t, ok)
	assert.Equal(t, "Beach", towel.CategoryKey())
	assert.Equal(t, "沙滩巾", towel.Name["zh"])

	assert.Equal(t, "Documents", c.Categories()[0])
	assert.Same(t, c, Default())
}

func TestNew(t *testing.T) {
	c, err := New([]core.Item{testItem("a", "Food"), testItem("b", "Comfort")})
	require.NoError(t, err)
	b, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 1, b.Position)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestNewRejectsBadItems(t *testing.T) {
	lo, hi := 30.0, 10.0
	tests := []struct {
		name  string
		items func() []core.Item
		field string
	}{
		{"duplicate id", func() []core.Item {
			return []core.Item{testItem("a", "Food"), testItem("a", "Food")}
		}, "id"},
		{"empty id", func() []core.Item { return []core.Item{testItem("", "Food")} }, "id"},
		{"missing english name", func() []core.Item {
			it := testItem("a", "Food")
			it.Name = core.LocalizedText{"zh": "零食"}
			return []core.Item{it}
		}, "name"},
		{"missing english category", func() []core.Item {
			it := testItem("a", "Food")
			it.Category = core.LocalizedText{"zh": "食品"}
			return []core.Item{it}
		}, "category"},
		{"unknown quantity type", func() []core.Item {
			it := testItem("a", "Food")
			it.QuantityLogic.Type = "per_week"
			return []core.Item{it}
		}, "quantity_logic"},
		{"inverted temperature range", func() []core.Item {
			it := testItem("a", "Food")
			it.Attributes.TempMin, it.Attributes.TempMax = &lo, &hi
			return []core.Item{it}
		}, "attributes"},
		{"unknown trip type", func() []core.Item {
			it := testItem("a", "Food")
			it.Attributes.TripType = "lunar"
			return []core.Item{it}
		}, "trip_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items())
			require.Error(t, err)
			assert.True(t, core.IsDataIntegrity(err))
			var die *core.DataIntegrityError
			require.ErrorAs(t, err, &die)
			assert.Equal(t, tt.field, die.Field)
		})
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	items := []core.Item{testItem("a", "Food")}
	c, err := New(items)
	require.NoError(t, err)

	items[0].ID = "changed"
	_, ok := c.Get("a")
	assert.True(t, ok)
}

func TestParseAndLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"items":[
		{"id":"snacks","name":{"en":"Snacks"},"category":{"en":"Food"},
		 "attributes":{"activities":["any"],"weather_condition":["any"]},
		 "quantity_logic":{"type":"per_day","value":0.5}}]}`), 0o600))

	c, err := LoadFile(jsonPath)
	require.NoError(t, err)
	it, ok := c.Get("snacks")
	require.True(t, ok)
	assert.Equal(t, 4, it.QuantityLogic.Quantity(7))

	yamlPath := filepath.Join(dir, "items.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
items:
  - id: tent
    name: {en: Tent}
    category: {en: Camping}
    attributes: {activities: [activity_camping], weather_condition: [any], temp_min: 5, temp_max: 30}
    quantity_logic: {type: fixed, value: 1}
`), 0o600))
	c, err = LoadFile(yamlPath)
	require.NoError(t, err)
	tent, ok := c.Get("tent")
	require.True(t, ok)
	require.True(t, tent.Attributes.HasTempRange())
	assert.Equal(t, 5.0, *tent.Attributes.TempMin)

	_, err = Parse([]byte("items: [\n"), FormatYAML)
	assert.Error(t, err)
	_, err = Parse(nil, Format("toml"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("a/b"))
}

func TestStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	redisStore, err := store.NewRedisStore(mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisStore.Close() })
	memStore := store.NewMemoryStore()
	t.Cleanup(func() { _ = memStore.Close() })

	for _, s := range []core.Store{memStore, redisStore} {
		t.Run(s.Name(), func(t *testing.T) {
			ctx := context.Background()

			_, err := LoadFromStore(ctx, s, "")
			require.Error(t, err)
			assert.True(t, core.IsStoreNotFound(err))

			extra := map[string][]byte{"packkit:blacklist": []byte(`["snacks"]`)}
			require.NoError(t, SaveToStore(ctx, s, "", Default(), extra))
			bl, err := s.Get(ctx, "packkit:blacklist")
			require.NoError(t, err)
			assert.JSONEq(t, `["snacks"]`, string(bl))

			err = SaveToStore(ctx, s, "", Default(), map[string][]byte{DefaultStoreKey: []byte("{}")})
			assert.Error(t, err, "extra must not replace the snapshot")

			got, err := LoadFromStore(ctx, s, DefaultStoreKey)
			require.NoError(t, err)
			assert.Equal(t, Default().Len(), got.Len())

			want, _ := Default().Get("visa_documents")
			it, ok := got.Get("visa_documents")
			require.True(t, ok)
			assert.Equal(t, want.URL, it.URL)
			assert.Equal(t, want.Position, it.Position)
		})
	}
}
