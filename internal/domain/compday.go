package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The three canonical powerlifting lifts, in meet order.
var LiftNames = []string{"Squat", "Bench", "Deadlift"}

// Meet weight classes.
var WeightClasses = []string{
	"44kg", "48kg", "52kg", "56kg", "60kg", "67.5kg", "75kg",
	"82kg", "90kg", "100kg", "110kg", "125kg", "140kg", "140+kg",
}

// AttemptRound addresses one of the three attempt slots of a lift.
type AttemptRound string

const (
	RoundFirst  AttemptRound = "first"
	RoundSecond AttemptRound = "second"
	RoundThird  AttemptRound = "third"
)

// Attempt is a single planned or taken attempt on the platform.
// ActuallyAttempted is athlete-only writable.
type Attempt struct {
	Set               int     `bson:"set" json:"set"`
	Reps              int     `bson:"reps" json:"reps"`
	Weight            float64 `bson:"weight" json:"weight"`
	ActuallyAttempted bool    `bson:"actuallyAttempted" json:"actuallyAttempted"`
	Record            bool    `bson:"record" json:"record"`
}

// WarmupEntry is one warm-up set before a lift.
type WarmupEntry struct {
	Set    int     `bson:"set" json:"set"`
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"`
}

// Attempts groups what the lifter plans per round: a committed opener and
// candidate lists for second and third.
type Attempts struct {
	First  Attempt   `bson:"first" json:"first"`
	Second []Attempt `bson:"second" json:"second"`
	Third  []Attempt `bson:"third" json:"third"`
}

// LiftAttempts is the attempt sheet for one of the three lifts.
type LiftAttempts struct {
	Name     string        `bson:"name" json:"name"`
	WarmUps  []WarmupEntry `bson:"warmUps" json:"warmUps"`
	Attempts Attempts      `bson:"attempts" json:"attempts"`
}

// CompDay is a competition-day attempt sheet for one athlete.
type CompDay struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Coach           primitive.ObjectID `bson:"coach" json:"coach"`
	Athlete         primitive.ObjectID `bson:"athlete" json:"athlete"`
	CompetitionName string             `bson:"competitionName" json:"competitionName"`
	Date            time.Time          `bson:"date" json:"date"`
	WeightClass     string             `bson:"weightClass" json:"weightClass"`
	Lifts           []LiftAttempts     `bson:"lifts" json:"lifts"`

	// Optimistic concurrency token, incremented on every save.
	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func validWeightClass(wc string) bool {
	for _, c := range WeightClasses {
		if c == wc {
			return true
		}
	}
	return false
}

// Validate checks the sheet structure: a name, a weight class from the meet
// enum, and exactly the three canonical lifts, each present once.
func (c *CompDay) Validate() error {
	if c.CompetitionName == "" {
		return ValidationError{Field: "competitionName", Reason: "is required"}
	}
	if c.Date.IsZero() {
		return ValidationError{Field: "date", Reason: "is required"}
	}
	if !validWeightClass(c.WeightClass) {
		return ValidationError{Field: "weightClass", Reason: "unknown weight class: " + c.WeightClass}
	}
	if len(c.Lifts) != len(LiftNames) {
		return ValidationError{Field: "lifts", Reason: "must contain exactly Squat, Bench and Deadlift"}
	}
	seen := map[string]bool{}
	for _, lift := range c.Lifts {
		found := false
		for _, n := range LiftNames {
			if lift.Name == n {
				found = true
				break
			}
		}
		if !found {
			return ValidationError{Field: "lifts", Reason: "unknown lift: " + lift.Name}
		}
		if seen[lift.Name] {
			return ValidationError{Field: "lifts", Reason: "duplicate lift: " + lift.Name}
		}
		seen[lift.Name] = true
	}
	return nil
}

// Lift returns the sheet for the named lift, or nil.
func (c *CompDay) Lift(name string) *LiftAttempts {
	for i := range c.Lifts {
		if c.Lifts[i].Name == name {
			return &c.Lifts[i]
		}
	}
	return nil
}

// TouchesActuallyAttempted scans every attempt slot and reports whether any
// sets the athlete-only flag. Used to reject a coach update wholesale before
// anything is applied.
func (c *CompDay) TouchesActuallyAttempted() bool {
	for _, lift := range c.Lifts {
		if lift.Attempts.First.ActuallyAttempted {
			return true
		}
		for _, a := range lift.Attempts.Second {
			if a.ActuallyAttempted {
				return true
			}
		}
		for _, a := range lift.Attempts.Third {
			if a.ActuallyAttempted {
				return true
			}
		}
	}
	return false
}

// MarkAttempt sets ActuallyAttempted on one attempt slot. The first round
// has a single attempt, so index is forced to 0 there; second and third are
// bounds-checked against their candidate lists. Returns false when the slot
// does not exist.
func (l *LiftAttempts) MarkAttempt(round AttemptRound, index int, attempted bool) bool {
	switch round {
	case RoundFirst:
		l.Attempts.First.ActuallyAttempted = attempted
		return true
	case RoundSecond:
		if index < 0 || index >= len(l.Attempts.Second) {
			return false
		}
		l.Attempts.Second[index].ActuallyAttempted = attempted
		return true
	case RoundThird:
		if index < 0 || index >= len(l.Attempts.Third) {
			return false
		}
		l.Attempts.Third[index].ActuallyAttempted = attempted
		return true
	}
	return false
}
