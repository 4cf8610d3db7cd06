package cityinfo

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/neexbeast/city-infos/internal/recipe"
	"github.com/neexbeast/city-infos/internal/upstream"
)

// Recipe content bounds, in characters, inclusive.
const (
	MinContentLength = 10
	MaxContentLength = 2000
)

// Directory is the upstream City/Weather API.
type Directory interface {
	GetCity(ctx context.Context, cityID string) (*upstream.City, error)
	GetForecast(ctx context.Context, cityID string) (*upstream.Forecast, error)
}

// RecipeStore is the recipe registry.
type RecipeStore interface {
	Create(cityID, content string) recipe.Recipe
	List(cityID string) []recipe.Recipe
	Delete(cityID string, id int) error
}

// RecipeObserver is notified after every successful registry mutation.
type RecipeObserver interface {
	RecipeCreated()
	RecipeDeleted()
}

type nopObserver struct{}

func (nopObserver) RecipeCreated() {}
func (nopObserver) RecipeDeleted() {}

// WeatherPrediction is one forecast entry in a View.
type WeatherPrediction struct {
	When string  `json:"when"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// View is the aggregated city info returned by GetCityInfo.
type View struct {
	Coordinates        [2]float64          `json:"coordinates"`
	Population         int                 `json:"population"`
	KnownFor           []string            `json:"knownFor"`
	WeatherPredictions []WeatherPrediction `json:"weatherPredictions"`
	Recipes            []recipe.Recipe     `json:"recipes"`
}

// Service combines upstream city data with the local recipe registry.
type Service struct {
	dir   Directory
	store RecipeStore
	obs   RecipeObserver
}

// NewService constructs a Service. obs may be nil.
func NewService(dir Directory, store RecipeStore, obs RecipeObserver) *Service {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{dir: dir, store: store, obs: obs}
}

// lookupCity maps upstream failures onto ErrCityNotFound or ErrUpstream.
func (s *Service) lookupCity(ctx context.Context, cityID string) (*upstream.City, error) {
	city, err := s.dir.GetCity(ctx, cityID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCityNotFound, cityID)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if city == nil {
		return nil, fmt.Errorf("%w: empty city payload for %s", ErrUpstream, cityID)
	}
	return city, nil
}

// GetCityInfo returns coordinates, population, known-for facts, the two-day
// forecast and the local recipes of a city. Weather is not fetched for an
// unknown city.
func (s *Service) GetCityInfo(ctx context.Context, cityID string) (*View, error) {
	city, err := s.lookupCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	forecast, err := s.dir.GetForecast(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if forecast == nil {
		return nil, fmt.Errorf("%w: empty forecast payload for %s", ErrUpstream, cityID)
	}

	predictions := make([]WeatherPrediction, 0, len(forecast.Predictions))
	for _, p := range forecast.Predictions {
		predictions = append(predictions, WeatherPrediction{When: p.When, Min: p.Min, Max: p.Max})
	}

	knownFor := city.KnownFor
	if knownFor == nil {
		knownFor = []string{}
	}

	return &View{
		Coordinates:        [2]float64{city.Latitude, city.Longitude},
		Population:         city.Population,
		KnownFor:           knownFor,
		WeatherPredictions: predictions,
		Recipes:            s.store.List(cityID),
	}, nil
}

// CreateRecipe validates content, confirms the city upstream and stores the
// recipe. An unknown city is reported before an out-of-range content length.
func (s *Service) CreateRecipe(ctx context.Context, cityID, content string) (recipe.Recipe, error) {
	if content == "" {
		return recipe.Recipe{}, ErrContentRequired
	}

	if _, err := s.lookupCity(ctx, cityID); err != nil {
		return recipe.Recipe{}, err
	}

	if n := utf8.RuneCountInString(content); n < MinContentLength || n > MaxContentLength {
		return recipe.Recipe{}, ErrContentLength
	}

	rec := s.store.Create(cityID, content)
	s.obs.RecipeCreated()
	return rec, nil
}

// DeleteRecipe confirms the city upstream and removes one of its recipes.
func (s *Service) DeleteRecipe(ctx context.Context, cityID string, recipeID int) error {
	if _, err := s.lookupCity(ctx, cityID); err != nil {
		return err
	}

	if err := s.store.Delete(cityID, recipeID); err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrRecipeNotFound, recipeID)
		}
		return fmt.Errorf("deleting recipe %d for city %s: %w", recipeID, cityID, err)
	}

	s.obs.RecipeDeleted()
	return nil
}
