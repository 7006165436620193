package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/model"
	"github.com/rushteam/packkit/rules"
)

func candidates(t *testing.T, idList ...string) []*core.ScoredItem {
	t.Helper()
	out := make([]*core.ScoredItem, 0, len(idList))
	for _, id := range idList {
		it, ok := catalog.Default().Get(id)
		require.True(t, ok, id)
		out = append(out, core.NewScoredItem(it))
	}
	return out
}

func ids(items []*core.ScoredItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func TestScoreNode(t *testing.T) {
	n := &ScoreNode{Model: model.NewTripModel(nil)}
	trip := &core.TripContext{
		DurationDays: 7, AvgTemp: 20, WeatherCode: "clear",
		Activities: []string{rules.ActivityBeach}, Lang: "en",
		TripType: core.TripInternational, OriginCountry: "CN",
	}
	items := candidates(t, "beach_towel", "passport")

	out, err := n.Process(context.Background(), trip, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"beach_towel", "passport"}, ids(out), "scoring keeps order")
	assert.InDelta(t, 63.0, out[0].Score, 1e-9)
	assert.InDelta(t, 88.5, out[1].Score, 1e-9)
	assert.Equal(t, "trip", out[1].Labels["rank_model"].Value)
	assert.Equal(t, "40.00", out[1].Labels["score.essential"].Value)
	assert.Equal(t, "20.00", out[0].Labels["score.activity"].Value)
}

func TestPriorityNode(t *testing.T) {
	n := &PriorityNode{Rules: rules.Default()}
	ctx := context.Background()

	t.Run("tiers", func(t *testing.T) {
		items := candidates(t, "sunscreen", "toothbrush", "credit_card", "passport", "cash")
		for _, it := range items {
			it.Score = 50
		}
		items[0].Score = 99 // sunscreen：非必需品，分数再高也排在必需品之后

		out, err := n.Process(ctx, &core.TripContext{TripType: core.TripInternational}, items)
		require.NoError(t, err)
		assert.Equal(t, []string{"passport", "credit_card", "toothbrush", "sunscreen", "cash"}, ids(out))
	})

	t.Run("domestic cn id card first", func(t *testing.T) {
		items := candidates(t, "phone", "credit_card", "id_card_cn")
		out, err := n.Process(ctx, &core.TripContext{TripType: core.TripDomestic, OriginCountry: "CN"}, items)
		require.NoError(t, err)
		assert.Equal(t, []string{"id_card_cn", "credit_card", "phone"}, ids(out))
	})

	t.Run("score then catalog position", func(t *testing.T) {
		items := candidates(t, "sunglasses", "umbrella", "backpack")
		items[0].Score, items[1].Score, items[2].Score = 40, 60, 40

		out, err := n.Process(ctx, &core.TripContext{TripType: core.TripDomestic}, items)
		require.NoError(t, err)
		assert.Equal(t, "umbrella", out[0].ID())
		// sunglasses 与 backpack 同分，按目录顺序
		first, _ := catalog.Default().Get(out[1].ID())
		second, _ := catalog.Default().Get(out[2].ID())
		assert.Less(t, first.Position, second.Position)
	})
}
