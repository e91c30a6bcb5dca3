// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/internal/fetch"
	"github.com/openmetro/tile-engine/internal/normalize"
	"github.com/openmetro/tile-engine/pkg/types"
)

// FoodAdapter fetches one recipe from the random-meal JSON provider.
type FoodAdapter struct {
	Client *http.Client
	Config types.FoodConfig
	Log    *zap.Logger
}

// Get returns the recipe as a normalized item. Shape mismatches and fetch
// failures degrade to an unavailable result rather than erroring.
func (a *FoodAdapter) Get(ctx context.Context) (types.NormalizedItem, Status) {
	log := logger(a.Log)

	h := http.Header{}
	if a.Config.UserAgent != "" {
		h.Set("User-Agent", a.Config.UserAgent)
	}
	body, err := fetch.Fetch(ctx, a.Client, a.Config.RandomMealURL, h)
	if err != nil {
		log.Warn("meal fetch failed", zap.Error(err))
		return types.NormalizedItem{}, StatusUnavailable
	}

	obj, err := normalize.DecodeObject(body)
	if err != nil {
		log.Warn("meal response unparsable", zap.Error(err))
		return types.NormalizedItem{}, StatusUnavailable
	}
	meals, err := normalize.SliceField(obj, "meals")
	if err != nil || len(meals) == 0 {
		log.Warn("meal response missing meals", zap.Error(err))
		return types.NormalizedItem{}, StatusUnavailable
	}
	meal, ok := meals[0].(map[string]any)
	if !ok {
		return types.NormalizedItem{}, StatusUnavailable
	}

	name, err := normalize.StringField(meal, "strMeal")
	if err != nil {
		log.Warn("meal missing name", zap.Error(err))
		return types.NormalizedItem{}, StatusUnavailable
	}

	item := types.NormalizedItem{Title: name}
	status := StatusLive
	if thumb, err := normalize.StringField(meal, "strMealThumb"); err == nil {
		item.ImageURL = thumb
	} else {
		// Recipe without artwork still renders, with the placeholder image.
		status = StatusDegraded
	}
	if area, err := normalize.StringField(meal, "strArea"); err == nil && area != "" {
		item.Extra = map[string]string{"area": area}
	}
	return item, status
}
