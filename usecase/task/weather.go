package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
)

// enrich attaches current weather to task. It is best-effort: every failure
// is logged and swallowed, leaving the task as it was.
func (uc *UseCase) enrich(ctx context.Context, task *domain.Task, useCache bool) {
	if uc.weather == nil || !task.HasLocation() {
		return
	}
	logger := uc.logger.With(zap.String("task_id", task.ID), zap.String("location", task.Location))

	info, err := uc.lookup(ctx, task.Location, useCache, logger)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnavailable) {
			logger.Info("weather provider declined request", zap.Error(err))
			return
		}
		logger.Error("error fetching weather data", zap.Error(err))
		return
	}

	previous := task.WeatherInfo
	task.WeatherInfo = &info
	if err := uc.tasks.Update(ctx, task); err != nil {
		task.WeatherInfo = previous
		logger.Error("failed to store weather data", zap.Error(err))
		return
	}

	uc.record(ctx, domain.NewWeatherUpdatedActivity(task))
	logger.Debug("weather data attached", zap.Float64("temperature", info.Temperature))
}

func (uc *UseCase) lookup(ctx context.Context, location string, useCache bool, logger *zap.Logger) (domain.WeatherInfo, error) {
	if useCache && uc.cache != nil {
		cached, err := uc.cache.Get(ctx, location)
		switch {
		case err == nil && cached != nil:
			return *cached, nil
		case err != nil && !errors.Is(err, domain.ErrWeatherMiss):
			logger.Warn("weather cache read failed", zap.Error(err))
		}
	}

	info, err := uc.weather.Fetch(ctx, location)
	if err != nil {
		return domain.WeatherInfo{}, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, location, info); err != nil {
			logger.Warn("weather cache write failed", zap.Error(err))
		}
	}
	return info, nil
}
