package models

import (
	"encoding/json"
	"errors"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDuration is returned when a config duration is neither a Go
// duration string nor a numeric nanosecond count.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration is a wrapper around time.Duration for config unmarshaling.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}

		*d = Duration(tmp)
	default:
		return ErrInvalidDuration
	}

	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return ErrInvalidDuration
	}

	tmp, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}

	*d = Duration(tmp)

	return nil
}
