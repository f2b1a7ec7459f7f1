package usecase

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// WeatherProvider fetches the current weather for a free-text location.
type WeatherProvider interface {
	Fetch(ctx context.Context, location string) (domain.WeatherInfo, error)
}
