package timekeeper

import "intervalcoach/internal/core/model"

// DefaultPreparation is the length of the countdown before the first set.
const DefaultPreparation = 17

// Segment is one planned phase occurrence.
type Segment struct {
	Phase    Phase
	Length   int
	Set      int // 1-based; 0 for preparation
	Exercise int // 1-based; 0 for preparation and set rest
	SetRest  bool
}

// Plan expands config into the ordered list of phase occurrences.
// Zero-length occurrences are kept so callers can see the structure;
// they produce no ticks.
func Plan(config model.TimerConfig, preparation int) []Segment {
	segments := []Segment{{Phase: PhasePreparation, Length: preparation}}

	for set := 1; set <= config.Sets; set++ {
		for exercise := 1; exercise <= config.Exercises; exercise++ {
			segments = append(segments, Segment{Phase: PhaseWork, Length: config.WorkTime, Set: set, Exercise: exercise})
			// No exercise rest after the last interval of a set.
			if exercise == config.Exercises {
				break
			}
			segments = append(segments, Segment{Phase: PhaseRest, Length: config.WorkRest, Set: set, Exercise: exercise})
		}
		if set == config.Sets {
			break
		}
		segments = append(segments, Segment{Phase: PhaseRest, Length: config.SetRest, Set: set, SetRest: true})
	}
	return segments
}
