package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"intervalcoach/internal/core/model"
)

func parseWorkout(exercises, sets, workTime, workRest, setRest string) (model.TimerConfig, error) {
	var workout model.TimerConfig
	fields := []struct {
		name   string
		text   string
		target *int
	}{
		{"exercises", exercises, &workout.Exercises},
		{"sets", sets, &workout.Sets},
		{"work", workTime, &workout.WorkTime},
		{"rest", workRest, &workout.WorkRest},
		{"set rest", setRest, &workout.SetRest},
	}

	for _, field := range fields {
		parsed, err := strconv.Atoi(strings.TrimSpace(field.text))
		if err != nil {
			return model.TimerConfig{}, fmt.Errorf("%s: %q is not a whole number", field.name, field.text)
		}
		*field.target = parsed
	}

	if err := workout.Validate(); err != nil {
		return model.TimerConfig{}, err
	}
	return workout, nil
}
