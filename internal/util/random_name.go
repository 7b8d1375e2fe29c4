package util

import (
	"fmt"

	"pokertable-client/internal/rng"
)

var adjectives = []string{
	"Lucky", "Silent", "Patient", "Reckless", "Steady", "Sly", "Stone-faced", "Cautious", "Bold", "Grinning",
	"Sleepy", "Nervous", "Tight", "Loose", "Sharp", "Wild", "Cool", "Stubborn",
}

var nicknames = []string{
	"Joe", "Ace", "Shark", "Fish", "Duke", "Dealer", "Bluffer", "Rounder", "Grinder", "Kid",
	"Professor", "Cowboy", "Hustler", "Baron", "Mule",
}

var random rng.Generator = rng.Crypto{}

// GetRandomName returns a random player name by combining an adjective with a nickname
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	nicknamesIndex := random.Intn(len(nicknames))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nicknames[nicknamesIndex])
}

// GetUniqueRandomName returns a random name that is not taken
// After a few collisions a number is appended
func GetUniqueRandomName(taken map[string]bool) string {
	for i := 0; i < 10; i++ {
		if name := GetRandomName(); !taken[name] {
			return name
		}
	}

	base := GetRandomName()
	for i := 2; ; i++ {
		if name := fmt.Sprintf("%s %d", base, i); !taken[name] {
			return name
		}
	}
}
