package upstream

// City is a city record as served by the City Directory.
type City struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Population int      `json:"population"`
	KnownFor   []string `json:"knownFor"`
}

// Prediction is one day of a forecast.
type Prediction struct {
	When string  `json:"when"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Forecast is the short-horizon forecast for a city: today, then tomorrow.
type Forecast struct {
	CityID      string       `json:"cityId"`
	Predictions []Prediction `json:"predictions"`
}
