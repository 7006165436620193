package builders

import (
	"fmt"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/config"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/filter"
	"github.com/rushteam/packkit/model"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/pkg/conv"
	"github.com/rushteam/packkit/rank"
	"github.com/rushteam/packkit/recall"
	"github.com/rushteam/packkit/rerank"
	"github.com/rushteam/packkit/rules"
)

func init() {
	config.Register("recall.catalog", BuildCatalogNode)
	config.Register("rank.score", BuildScoreNode)
	config.Register("rank.priority", BuildPriorityNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.category_cap", BuildCategoryCapNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func sharedRules(cfg map[string]interface{}) *rules.Rules {
	return conv.ConfigGet(cfg, config.SharedRules, rules.Default())
}

func BuildCatalogNode(cfg map[string]interface{}) (pipeline.Node, error) {
	cat := conv.ConfigGet(cfg, config.SharedCatalog, catalog.Default())
	return &recall.Catalog{Catalog: cat}, nil
}

func BuildScoreNode(cfg map[string]interface{}) (pipeline.Node, error) {
	switch name := conv.ConfigGet(cfg, "model", "trip"); name {
	case "trip", "":
		return &rank.ScoreNode{Model: model.NewTripModel(sharedRules(cfg))}, nil
	default:
		return nil, fmt.Errorf("unknown rank model: %s", name)
	}
}

func BuildPriorityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.PriorityNode{Rules: sharedRules(cfg)}, nil
}

func BuildCategoryCapNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.CategoryCapNode{Rules: sharedRules(cfg)}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n < 0 {
		return nil, fmt.Errorf("rerank.topn: n must not be negative, got %d", n)
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildFilterNode 构建过滤节点。未配置 filters 时使用四条行程规则（filter.Defaults）。
//
//	- type: filter
//	  config:
//	    filters:
//	      - type: defaults
//	      - type: blacklist
//	        item_ids: [instant_noodles]
//	        key: packkit:blacklist      # 也可用 keys: [...] 合并多份名单，需要注入 Store
//	      - type: expr
//	        expr: 'item.category == "Skiing" && trip.avg_temp > 15.0'
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	r := sharedRules(cfg)
	raw, ok := cfg["filters"]
	if !ok || raw == nil {
		return &filter.FilterNode{Filters: filter.Defaults(r)}, nil
	}
	filtersConfig, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters invalid")
	}

	var adapter *filter.StoreAdapter
	if s := conv.ConfigGet[core.Store](cfg, config.SharedStore, nil); s != nil {
		adapter = filter.NewStoreAdapter(s)
	}

	filters := make([]filter.Filter, 0, len(filtersConfig)+3)
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "defaults":
			filters = append(filters, filter.Defaults(r)...)
		case "excluded_document":
			filters = append(filters, &filter.ExcludedDocumentFilter{Rules: r})
		case "threshold":
			filters = append(filters, &filter.ThresholdFilter{Rules: r})
		case "trip_type":
			filters = append(filters, &filter.TripTypeFilter{})
		case "activity_relevance":
			filters = append(filters, &filter.ActivityRelevanceFilter{Rules: r})
		case "blacklist":
			ids := conv.SliceAnyToString(filterMap["item_ids"])
			if ids == nil {
				ids = []string{}
			}
			keys := conv.SliceAnyToString(filterMap["keys"])
			if key := conv.ConfigGet(filterMap, "key", ""); key != "" {
				keys = append([]string{key}, keys...)
			}
			if len(keys) > 0 && adapter == nil {
				return nil, fmt.Errorf("blacklist filter: keys %v configured but no store is available", keys)
			}
			filters = append(filters, filter.NewBlacklistFilter(ids, adapter, keys...))
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""))
			if err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}
