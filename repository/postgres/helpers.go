package postgres

import (
	"encoding/json"
	"time"

	"github.com/fastygo/taskboard/domain"
)

func marshalWeather(info *domain.WeatherInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	return json.Marshal(info)
}

func unmarshalWeather(data []byte) *domain.WeatherInfo {
	if len(data) == 0 {
		return nil
	}
	var info domain.WeatherInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	return &info
}

func nullableTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
