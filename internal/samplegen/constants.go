package samplegen

import "time"

// Team names are "<city> <mascot>". Surnames are far enough apart that no
// two on one roster fold together.
var (
	cities = []string{
		"Leicester", "London", "Bristol", "Sheffield", "Newcastle", "Glasgow",
		"Manchester", "Cheshire", "Plymouth", "Worcester", "Surrey", "Derby",
	}
	mascots = []string{
		"Riders", "Lions", "Flyers", "Sharks", "Eagles", "Rocks",
		"Giants", "Phoenix", "Raiders", "Wolves", "Scorchers", "Trailblazers",
	}
	firstNames = []string{
		"Rhys", "Ben", "John", "Marcus", "Tayo", "Kofi", "Daniel", "Elijah",
		"Sam", "Callum", "Ovie", "Jordan", "Luke", "Isaac", "Patrick", "Kai",
	}
	surnames = []string{
		"Farrell", "Okafor", "Whitfield", "Duru", "Baptiste", "Kowalski",
		"Henderson", "Mbeki", "Tremblay", "Nakamura", "Ashworth", "Quinlan",
		"Osei", "Villanueva", "Gallagher", "Sørensen",
	}
	// appended to a team name the way club feeds label their senior squad
	teamSuffixes = []string{"Senior Men I", "Senior Men"}
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

const (
	gameSpacing  = 3 * 24 * time.Hour
	gameSlotStep = 2 * time.Hour
	quarterMins  = 10
	quarters     = 4
	secondsInMin = 60
)
