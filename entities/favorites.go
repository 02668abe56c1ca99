package entities

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Favorites groups the names a user follows, one list per kind.
type Favorites struct {
	Sports  []string `json:"sports"`
	Drivers []string `json:"drivers"`
	Teams   []string `json:"teams"`
}

// Normalized returns a copy with nil lists replaced by empty ones and
// duplicates removed, sorted for stable output.
func (f Favorites) Normalized() Favorites {
	return Favorites{
		Sports:  dedupe(f.Sports),
		Drivers: dedupe(f.Drivers),
		Teams:   dedupe(f.Teams),
	}
}

// Matches reports whether the event involves any followed sport, team or
// driver.
func (f Favorites) Matches(e Event) bool {
	sports := mapset.NewSet(f.Sports...)
	if sports.Contains(string(e.SportsCategory)) {
		return true
	}
	teams := mapset.NewSet(f.Teams...)
	if e.Football != nil && (teams.Contains(e.Football.HomeTeam) || teams.Contains(e.Football.AwayTeam)) {
		return true
	}
	if e.Cricket != nil && (teams.Contains(e.Cricket.HomeTeam) || teams.Contains(e.Cricket.AwayTeam)) {
		return true
	}
	if e.F1 != nil {
		if teams.Contains(e.F1.Team) {
			return true
		}
		drivers := mapset.NewSet(f.Drivers...)
		if drivers.Contains(e.F1.Driver) {
			return true
		}
	}
	return false
}

func dedupe(names []string) []string {
	out := mapset.NewSet(names...).ToSlice()
	sort.Strings(out)
	return out
}
