package engine

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/compose"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/rules"
	"github.com/rushteam/packkit/store"
)

func beachTrip() core.TripContext {
	return core.TripContext{
		DurationDays:  7,
		AvgTemp:       20,
		WeatherCode:   "clear",
		Activities:    []string{rules.ActivityBeach},
		Lang:          "en",
		TripType:      core.TripInternational,
		OriginCountry: "CN",
		Destination:   "Bali",
	}
}

func domesticCNTrip() core.TripContext {
	return core.TripContext{
		DurationDays:  3,
		AvgTemp:       8,
		WeatherCode:   "Rain",
		Activities:    []string{rules.ActivityBusiness},
		Lang:          "en",
		TripType:      core.TripDomestic,
		OriginCountry: "CN",
		Destination:   "Shanghai",
	}
}

func sampleTrips() []core.TripContext {
	trips := []core.TripContext{beachTrip(), domesticCNTrip()}
	weathers := []string{"Clear", "Snow", "Drizzle", "Clouds", "Fog"}
	activities := [][]string{
		nil,
		{rules.ActivityCamping, rules.ActivityHiking},
		{rules.ActivitySkiing},
		{rules.ActivityBeach, rules.ActivitySwimming, rules.ActivityPhotography},
		{rules.ActivityBusiness, rules.ActivityCamping},
	}
	origins := []string{"CN", "US", "DE"}
	for i := 0; i < 30; i++ {
		tripType := core.TripDomestic
		if i%2 == 1 {
			tripType = core.TripInternational
		}
		lang := "en"
		if i%3 == 0 {
			lang = "zh"
		}
		trips = append(trips, core.TripContext{
			DurationDays:  1 + i%14,
			AvgTemp:       float64(-10 + (i*7)%45),
			WeatherCode:   weathers[i%len(weathers)],
			Activities:    activities[i%len(activities)],
			Lang:          lang,
			TripType:      tripType,
			OriginCountry: origins[i%len(origins)],
			Destination:   fmt.Sprintf("City %d", i),
		})
	}
	return trips
}

func allIDs(out compose.GroupedOutput) []string {
	var ids []string
	for _, g := range out {
		for _, it := range g.Items {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func findGroup(out compose.GroupedOutput, name string) (compose.Group, bool) {
	for _, g := range out {
		if g.Group == name {
			return g, true
		}
	}
	return compose.Group{}, false
}

func TestRecommendBeachScenario(t *testing.T) {
	e := New(nil, nil)
	out, err := e.Recommend(context.Background(), beachTrip())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	assert.Equal(t, "passport", out[0].Items[0].ID, "passport ranked first overall")
	ids := allIDs(out)
	assert.NotContains(t, ids, "id_card_cn")
	assert.NotContains(t, ids, "id_card_us")

	beach, ok := findGroup(out, rules.CategoryBeach)
	require.True(t, ok)
	var towel *compose.ProcessedItem
	for i := range beach.Items {
		if beach.Items[i].ID == "beach_towel" {
			towel = &beach.Items[i]
		}
	}
	require.NotNil(t, towel)
	threshold := e.Rules().Threshold(rules.CategoryBeach, []string{rules.ActivityBeach})
	assert.Greater(t, towel.Score, threshold)

	visa, ok := findGroup(out, rules.CategoryDocuments)
	require.True(t, ok)
	for _, it := range visa.Items {
		if it.ID == "visa_documents" {
			assert.Equal(t, "Search link: https://www.google.com/search?q=Bali%20visa%20requirements", it.Note)
		}
	}
}

func TestRecommendDomesticCN(t *testing.T) {
	e := New(nil, nil)
	out, err := e.Recommend(context.Background(), domesticCNTrip())
	require.NoError(t, err)

	ids := allIDs(out)
	assert.NotContains(t, ids, "passport")
	assert.NotContains(t, ids, "id_card_us")
	require.Contains(t, ids, "id_card_cn")

	docs, ok := findGroup(out, rules.CategoryDocuments)
	require.True(t, ok)
	assert.Equal(t, "id_card_cn", docs.Items[0].ID)

	// 在展开的顺序中排在所有其他必需品之前
	r := e.Rules()
	for _, id := range ids {
		if id == "id_card_cn" {
			break
		}
		assert.False(t, r.IsEssential(id), "%s ranked before id_card_cn", id)
	}
}

func TestRecommendProperties(t *testing.T) {
	e := New(nil, nil)
	r := e.Rules()
	cat := e.Catalog()

	for i, trip := range sampleTrips() {
		t.Run(fmt.Sprintf("trip-%d", i), func(t *testing.T) {
			out, err := e.Recommend(context.Background(), trip)
			require.NoError(t, err)

			seen := make(map[string]bool)
			for _, g := range out {
				require.NotEmpty(t, g.Items)
				item, ok := cat.Get(g.Items[0].ID)
				require.True(t, ok)
				assert.LessOrEqual(t, len(g.Items), r.Cap(item.CategoryKey()), g.Group)

				for _, it := range g.Items {
					assert.False(t, seen[it.ID], "duplicate %s", it.ID)
					seen[it.ID] = true
					assert.GreaterOrEqual(t, it.Score, 0.0)
					assert.LessOrEqual(t, it.Score, 100.0)
				}
			}

			switch {
			case trip.TripType == core.TripInternational:
				assert.False(t, seen["id_card_cn"])
				assert.False(t, seen["id_card_us"])
			case trip.OriginCountry == "CN":
				assert.False(t, seen["passport"])
				assert.False(t, seen["id_card_us"])
			}

			again, err := e.Recommend(context.Background(), trip)
			require.NoError(t, err)
			a, _ := json.Marshal(out)
			b, _ := json.Marshal(again)
			assert.Equal(t, string(a), string(b), "deterministic")
		})
	}
}

func TestRecommendDoesNotMutateCatalog(t *testing.T) {
	e := New(nil, nil)
	before, err := catalog.Marshal(e.Catalog())
	require.NoError(t, err)

	_, err = e.RecommendMany(context.Background(), sampleTrips())
	require.NoError(t, err)

	after, err := catalog.Marshal(e.Catalog())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRecommendMany(t *testing.T) {
	e := New(nil, nil, WithMaxConcurrent(4))
	trips := sampleTrips()

	got, err := e.RecommendMany(context.Background(), trips)
	require.NoError(t, err)
	require.Len(t, got, len(trips))

	for i, trip := range trips {
		want, err := e.Recommend(context.Background(), trip)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "trip %d", i)
	}

	empty, err := e.RecommendMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecommendManyError(t *testing.T) {
	e := New(nil, nil)
	trips := []core.TripContext{beachTrip(), {DurationDays: 0, Lang: "en", TripType: core.TripDomestic}}

	_, err := e.RecommendMany(context.Background(), trips)
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "trip 1")
}

func TestRecommendInvalidInput(t *testing.T) {
	e := New(nil, nil)

	trip := beachTrip()
	trip.TripType = "lunar"
	_, err := e.Recommend(context.Background(), trip)
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))

	trip = beachTrip()
	trip.DurationDays = 0
	_, err = e.Recommend(context.Background(), trip)
	assert.True(t, core.IsInvalidInput(err))
}

func TestRecommendEmptyActivities(t *testing.T) {
	trip := beachTrip()
	trip.Activities = nil

	out, err := New(nil, nil).Recommend(context.Background(), trip)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRecommendCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil).Recommend(ctx, beachTrip())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildPipelineWithBlacklist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	require.NoError(t, s.Set(ctx, "packkit:blacklist", []byte(`["beach_towel"]`)))

	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: ops
  nodes:
    - type: recall.catalog
    - type: rank.score
    - type: filter
      config:
        filters:
          - type: defaults
          - type: blacklist
            key: packkit:blacklist
          - type: expr
            expr: 'item.id == "swimsuit" && trip.destination == "Bali"'
    - type: rerank.category_cap
    - type: rank.priority
`))
	require.NoError(t, err)

	p, err := BuildPipeline(cfg, nil, nil, s)
	require.NoError(t, err)
	out, err := New(nil, nil, WithPipeline(p)).Recommend(ctx, beachTrip())
	require.NoError(t, err)

	ids := allIDs(out)
	assert.NotContains(t, ids, "beach_towel")
	assert.NotContains(t, ids, "swimsuit")
	assert.Equal(t, "passport", ids[0])

	bad, err := pipeline.ParseYAML([]byte("pipeline:\n  nodes:\n    - type: rank.dnn\n"))
	require.NoError(t, err)
	_, err = BuildPipeline(bad, nil, nil, nil)
	assert.Error(t, err)
}

func TestDefaultPipelineMatchesEngineDefault(t *testing.T) {
	custom := New(nil, nil, WithPipeline(DefaultPipeline(nil, nil)), WithComposer(compose.New(nil)))
	want, err := New(nil, nil).Recommend(context.Background(), domesticCNTrip())
	require.NoError(t, err)
	got, err := custom.Recommend(context.Background(), domesticCNTrip())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	e := New(nil, nil, WithLogger(logger))
	assert.Contains(t, buf.String(), "packing engine initialized")

	_, err := e.Recommend(context.Background(), beachTrip())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "packing list complete")
	assert.Contains(t, buf.String(), `"component":"packing"`)
}

func TestSharedPipelineKeepsEngineLoggers(t *testing.T) {
	p := DefaultPipeline(nil, nil)
	var bufA, bufB bytes.Buffer
	a := New(nil, nil, WithPipeline(p), WithLogger(zerolog.New(&bufA).Level(zerolog.TraceLevel)))
	b := New(nil, nil, WithPipeline(p), WithLogger(zerolog.New(&bufB).Level(zerolog.TraceLevel)))
	assert.Nil(t, p.Observer, "caller's pipeline is left untouched")

	bufA.Reset()
	bufB.Reset()
	_, err := b.Recommend(context.Background(), beachTrip())
	require.NoError(t, err)
	assert.Contains(t, bufB.String(), "node done")
	assert.NotContains(t, bufA.String(), "node done")

	bufB.Reset()
	_, err = a.Recommend(context.Background(), beachTrip())
	require.NoError(t, err)
	assert.Contains(t, bufA.String(), "node done")
	assert.Empty(t, bufB.String())

	observed := 0
	p2 := DefaultPipeline(nil, nil)
	p2.Observer = func(pipeline.Node, int, int) { observed++ }
	_, err = New(nil, nil, WithPipeline(p2)).Recommend(context.Background(), beachTrip())
	require.NoError(t, err)
	assert.Equal(t, len(p2.Nodes), observed, "caller's observer is kept")
}
