package monitor

import "time"

// Status is the latest result of the dependency checks. Healthy follows the
// primary store only.
type Status struct {
	Healthy    bool      `json:"healthy"`
	Storage    string    `json:"storage"`
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}

// Services reports each dependency in the shape served by the health endpoint.
func (s Status) Services() map[string]interface{} {
	return map[string]interface{}{
		"storage":    s.Storage,
		"postgresql": s.PostgreSQL,
		"redis":      s.Redis,
		"buffer": map[string]interface{}{
			"online": s.Buffer,
			"size":   s.BufferSize,
		},
	}
}
