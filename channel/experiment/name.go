package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"abyssal", "arctic", "bitter", "blue", "boreal", "briny", "calm",
		"coastal", "cold", "crimson", "dark", "dawn", "deep", "drifting",
		"falling", "frosty", "glacial", "green", "hidden", "icy", "littoral",
		"lively", "lucky", "misty", "murky", "nameless", "pelagic", "patient",
		"polished", "quiet", "restless", "rough", "salty", "shallow", "silent",
		"silver", "solitary", "sparkling", "still", "stormy", "sunlit",
		"twilight", "wandering", "weathered", "white", "wild", "windward",
	}

	nouns = []string{
		"anchor", "atoll", "basin", "beacon", "breaker", "brine", "buoy",
		"cape", "channel", "coral", "current", "dolphin", "drift", "echo",
		"eddy", "fathom", "fjord", "foam", "gale", "gull", "gyre", "harbor",
		"horizon", "kelp", "krill", "lagoon", "mooring", "narwhal", "orca",
		"plume", "reef", "ripple", "seamount", "shoal", "siren", "sound",
		"spray", "squall", "strait", "surf", "swell", "thermocline", "tide",
		"trench", "wake", "wave", "whale",
	}
)

// GenerateRunName creates a memorable run identifier
// in the format "adjective-noun"
func GenerateRunName() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]

	return adj + "-" + noun
}

// GenerateRunID creates a unique run identifier by combining the memorable
// name with a timestamp
func GenerateRunID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return GenerateRunName() + "-" + timestamp
}
