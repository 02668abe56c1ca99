package entities

type SportsCategory string

const (
	CategoryFootball SportsCategory = "football"
	CategoryCricket  SportsCategory = "cricket"
	CategoryF1       SportsCategory = "f1"
)

// Event is a scheduled screening as served by GET events. Exactly one of
// Football, Cricket or F1 is populated, matching SportsCategory.
type Event struct {
	EventId        string         `json:"_id"`
	SportsCategory SportsCategory `json:"sportsCategory"`
	Venue          string         `json:"venue"`
	Price          float64        `json:"price"`
	MaxOccupancy   int            `json:"maxOccupancy"`
	AvailableSeats int            `json:"availableSeats"`
	Image          string         `json:"image"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	TimeZone       string         `json:"timeZone"`
	Football       *FootballMatch `json:"football,omitempty"`
	Cricket        *CricketMatch  `json:"cricket,omitempty"`
	F1             *F1Race        `json:"f1,omitempty"`
}

type FootballMatch struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

type CricketMatch struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

type F1Race struct {
	Driver string `json:"driver"`
	Team   string `json:"team"`
}

// Clone returns a copy that shares no pointers with the receiver.
func (e Event) Clone() Event {
	if e.Football != nil {
		match := *e.Football
		e.Football = &match
	}
	if e.Cricket != nil {
		match := *e.Cricket
		e.Cricket = &match
	}
	if e.F1 != nil {
		race := *e.F1
		e.F1 = &race
	}
	return e
}

// Title renders the participant line the way the event cards do.
func (e Event) Title() string {
	switch {
	case e.Football != nil:
		return e.Football.HomeTeam + " vs " + e.Football.AwayTeam
	case e.Cricket != nil:
		return e.Cricket.HomeTeam + " vs " + e.Cricket.AwayTeam
	case e.F1 != nil:
		return e.F1.Driver + " (" + e.F1.Team + ")"
	}
	return e.Venue
}
