package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rushteam/packkit/compose"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/engine"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/pkg/utils"
)

type recommendOptions struct {
	trip         core.TripContext
	labels       map[string]string
	params       map[string]string
	pipelinePath string
	explain      bool
}

// output 是对外的 JSON 结构：{"categories":[{"category":..,"items":[..]}]}
type output struct {
	Categories []outputGroup `json:"categories"`
}

type outputGroup struct {
	Category string       `json:"category"`
	Items    []outputItem `json:"items"`
}

type outputItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Quantity int      `json:"quantity"`
	Note     string   `json:"note"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Score    *float64 `json:"score,omitempty"`
}

func newRecommendCmd(g *globalOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the packing list for a trip",
		Long: `Print the packing list for a trip as JSON.

Examples:
  packlist recommend --destination Bali --days 7 --temp 28 --weather clear \
    --activity activity_beach --trip-type international --origin CN`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, g, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.trip.Destination, "destination", "", "destination (used in search links)")
	f.IntVar(&opts.trip.DurationDays, "days", 1, "trip duration in days")
	f.Float64Var(&opts.trip.AvgTemp, "temp", 20, "average temperature in °C")
	f.StringVar(&opts.trip.WeatherCode, "weather", "", "weather condition (clear, rain, snow, clouds, ...)")
	f.StringSliceVar(&opts.trip.Activities, "activity", nil, "selected activity tag (repeatable)")
	f.StringVar(&opts.trip.Lang, "lang", core.LangEN, "output language")
	f.StringVar(&opts.trip.TripType, "trip-type", core.TripDomestic, "domestic or international")
	f.StringVar(&opts.trip.OriginCountry, "origin", "", "origin country code")
	f.StringToStringVar(&opts.labels, "label", nil, "request label key=value, visible to expr filters as trip.labels")
	f.StringToStringVar(&opts.params, "param", nil, "request parameter key=value, visible to expr filters as trip.params")
	f.StringVar(&opts.pipelinePath, "pipeline", "", "pipeline config file (.yaml/.json)")
	f.BoolVar(&opts.explain, "explain", false, "include item scores")
	return cmd
}

func runRecommend(cmd *cobra.Command, g *globalOptions, opts *recommendOptions) error {
	ctx := cmd.Context()
	logger := g.logger()

	s, err := g.openStore()
	if err != nil {
		return err
	}
	if s != nil {
		defer s.Close()
	}
	cat, err := g.loadCatalog(ctx, s)
	if err != nil {
		return err
	}
	r, err := g.loadRules()
	if err != nil {
		return err
	}

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.pipelinePath != "" {
		cfg, err := pipeline.Load(opts.pipelinePath)
		if err != nil {
			return err
		}
		p, err := engine.BuildPipeline(cfg, cat, r, s)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, engine.WithPipeline(p))
	}

	trip := opts.trip
	for k, v := range opts.labels {
		trip.PutLabel(k, utils.Label{Value: v, Source: "request"})
	}
	if len(opts.params) > 0 {
		trip.Params = make(map[string]any, len(opts.params))
		for k, v := range opts.params {
			trip.Params[k] = v
		}
	}

	out, err := engine.New(cat, r, engineOpts...).Recommend(ctx, trip)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(toOutput(out, opts.explain))
}

func toOutput(groups compose.GroupedOutput, explain bool) output {
	res := output{Categories: make([]outputGroup, 0, len(groups))}
	for _, g := range groups {
		og := outputGroup{Category: g.Group, Items: make([]outputItem, 0, len(g.Items))}
		for _, it := range g.Items {
			oi := outputItem{
				ID:       it.ID,
				Name:     it.Name,
				Emoji:    it.Emoji,
				Quantity: it.Quantity,
				Note:     it.Note,
				URL:      it.URL,
				Category: it.Category,
			}
			if explain {
				score := it.Score
				oi.Score = &score
			}
			og.Items = append(og.Items, oi)
		}
		res.Categories = append(res.Categories, og)
	}
	return res
}
