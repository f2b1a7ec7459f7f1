package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// WeatherCache keeps recent provider readings keyed by location.
type WeatherCache interface {
	Get(ctx context.Context, location string) (*domain.WeatherInfo, error)
	Set(ctx context.Context, location string, info domain.WeatherInfo) error
}
