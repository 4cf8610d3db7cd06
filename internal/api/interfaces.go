package api

import (
	"context"

	"github.com/neexbeast/city-infos/internal/cityinfo"
	"github.com/neexbeast/city-infos/internal/recipe"
)

// CityInfoService defines the city and recipe operations needed by handlers.
type CityInfoService interface {
	GetCityInfo(ctx context.Context, cityID string) (*cityinfo.View, error)
	CreateRecipe(ctx context.Context, cityID, content string) (recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, cityID string, recipeID int) error
}

// upstreamPinger reports whether the City/Weather API is reachable.
type upstreamPinger interface {
	Ping(ctx context.Context) error
}
