package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekday names an athlete can train on. Kept as strings to match the
// persisted document shape.
var DayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Primary exercise slot tags for a training day.
var PrimExercises = []string{
	"Primary Squat",
	"Secondary Squat",
	"Volume Squat",
	"Primary Bench",
	"Secondary Bench",
	"Volume Bench",
	"Primary Deadlift",
	"Secondary Deadlift",
	"Volume Deadlift",
}

// SetType classifies a single set within an exercise entry.
type SetType string

const (
	SetWorking SetType = "working"
	SetWarmup  SetType = "warmup"
	SetTop     SetType = "top"
	SetDrop    SetType = "drop"
)

// SetAuthor records which side of the coach/athlete relationship created a set.
type SetAuthor string

const (
	AuthorCoach   SetAuthor = "coach"
	AuthorAthlete SetAuthor = "athlete"
)

// AuthorMayCreate reports whether the given author may create a set of the
// given type: coaches prescribe working/top/drop sets, athletes add only
// their own warmups.
func AuthorMayCreate(author SetAuthor, t SetType) bool {
	switch author {
	case AuthorCoach:
		return t == SetWorking || t == SetTop || t == SetDrop
	case AuthorAthlete:
		return t == SetWarmup
	}
	return false
}

// Set is the smallest unit of prescribed/actual work. Prescription fields
// are coach-authored at creation; actuals are filled in by the athlete.
// IDs are generated centrally on insert, so set IDs are unique within a
// Block by construction.
type Set struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Type      SetType            `bson:"type" json:"type"`
	CreatedBy SetAuthor          `bson:"createdBy" json:"createdBy"`

	// Prescription (coach side).
	Reps              int      `bson:"reps,omitempty" json:"reps,omitempty"`
	RepsMin           *int     `bson:"repsMin,omitempty" json:"repsMin,omitempty"`
	PrescribedLoad    float64  `bson:"prescribedLoad,omitempty" json:"prescribedLoad,omitempty"`
	PrescribedLoadMin *float64 `bson:"prescribedLoadMin,omitempty" json:"prescribedLoadMin,omitempty"`
	PrescribedRPE     float64  `bson:"prescribedRPE,omitempty" json:"prescribedRPE,omitempty"`
	PrescribedRPEMin  *float64 `bson:"prescribedRPEMin,omitempty" json:"prescribedRPEMin,omitempty"`
	CuesFromCoach     string   `bson:"cuesFromCoach,omitempty" json:"cuesFromCoach,omitempty"`

	// Actuals (athlete side).
	ActualReps   *int     `bson:"actualReps,omitempty" json:"actualReps,omitempty"`
	ActualLoad   *float64 `bson:"actualLoad,omitempty" json:"actualLoad,omitempty"`
	ActualRPEMin *float64 `bson:"actualRPEMin,omitempty" json:"actualRPEMin,omitempty"`
	ActualRPE    *float64 `bson:"actualRPE,omitempty" json:"actualRPE,omitempty"`
	SideNote     string   `bson:"sideNote,omitempty" json:"sideNote,omitempty"`
	CuesNote     string   `bson:"cuesNote,omitempty" json:"cuesNote,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ExerciseEntry places a catalog exercise on a training day with its sets.
type ExerciseEntry struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	SetsDetail []Set              `bson:"setsDetail" json:"setsDetail"`
}

// DailySchedule is one training day within a week.
type DailySchedule struct {
	PrimExercises []string        `bson:"primExercises" json:"primExercises"`
	Exercises     []ExerciseEntry `bson:"exercises" json:"exercises"`
}

// WeeklySchedule is one week of the block, weekNumber is 1-based.
type WeeklySchedule struct {
	WeekNumber    int             `bson:"weekNumber" json:"weekNumber"`
	WeekStartDate time.Time       `bson:"weekStartDate" json:"weekStartDate"`
	DailySchedule []DailySchedule `bson:"dailySchedule" json:"dailySchedule"`
}

// Block is a coach-authored multi-week training schedule for one athlete.
type Block struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Coach          primitive.ObjectID `bson:"coach" json:"coach"`
	Athlete        primitive.ObjectID `bson:"athlete" json:"athlete"`
	BlockName      string             `bson:"blockName" json:"blockName"`
	NumberOfWeeks  int                `bson:"numberOfWeeks" json:"numberOfWeeks"`
	BlockStartDate time.Time          `bson:"blockStartDate" json:"blockStartDate"`
	BlockEndDate   time.Time          `bson:"blockEndDate" json:"blockEndDate"`
	Days           []string           `bson:"days" json:"days"`
	BlockSchedule  []WeeklySchedule   `bson:"blockSchedule" json:"blockSchedule"`

	// Optimistic concurrency token, incremented on every save.
	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MinWeeks and MaxWeeks bound the length of a block.
const (
	MinWeeks = 1
	MaxWeeks = 12
)

// ExpectedEndDate returns the Saturday closing a block that starts on the
// given Sunday and runs for weeks weeks.
func ExpectedEndDate(start time.Time, weeks int) time.Time {
	return start.AddDate(0, 0, weeks*7-1)
}

func validDayName(d string) bool {
	for _, n := range DayNames {
		if n == d {
			return true
		}
	}
	return false
}

func validPrimExercise(p string) bool {
	for _, n := range PrimExercises {
		if n == p {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a block: week and day
// cardinalities, date math, enum membership and set-author rules. now is
// passed in so the today-or-future start rule is testable.
func (b *Block) Validate(now time.Time) error {
	if b.BlockName == "" {
		return ValidationError{Field: "blockName", Reason: "is required"}
	}
	if b.NumberOfWeeks < MinWeeks || b.NumberOfWeeks > MaxWeeks {
		return ValidationError{Field: "numberOfWeeks", Reason: "must be between 1 and 12"}
	}
	if len(b.Days) == 0 {
		return ValidationError{Field: "days", Reason: "select at least one training day"}
	}
	seen := map[string]bool{}
	for _, d := range b.Days {
		if !validDayName(d) {
			return ValidationError{Field: "days", Reason: "unknown day name: " + d}
		}
		if seen[d] {
			return ValidationError{Field: "days", Reason: "duplicate day: " + d}
		}
		seen[d] = true
	}
	if b.BlockStartDate.Weekday() != time.Sunday {
		return ValidationError{Field: "blockStartDate", Reason: "must be a Sunday"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if b.BlockStartDate.Before(today) {
		return ValidationError{Field: "blockStartDate", Reason: "must not be in the past"}
	}
	if !sameDate(b.BlockEndDate, ExpectedEndDate(b.BlockStartDate, b.NumberOfWeeks)) {
		return ValidationError{Field: "blockEndDate", Reason: "must be the Saturday closing the final week"}
	}
	return b.ValidateSchedule()
}

// ValidateSchedule checks the nested schedule alone, without date rules.
// Templates reuse this for their date-agnostic blockSchedule.
func (b *Block) ValidateSchedule() error {
	if len(b.BlockSchedule) != b.NumberOfWeeks {
		return ValidationError{Field: "blockSchedule", Reason: "week count must equal numberOfWeeks"}
	}
	for i, week := range b.BlockSchedule {
		// Weeks are addressed by number everywhere else, so the schedule
		// must carry them as 1..numberOfWeeks in order.
		if week.WeekNumber != i+1 {
			return ValidationError{Field: "blockSchedule", Reason: "weekNumber values must run 1..numberOfWeeks in order"}
		}
		if len(week.DailySchedule) != len(b.Days) {
			return ValidationError{Field: "blockSchedule", Reason: "each week needs one entry per selected day"}
		}
		for _, day := range week.DailySchedule {
			if len(day.PrimExercises) == 0 {
				return ValidationError{Field: "primExercises", Reason: "each day needs at least one primary exercise tag"}
			}
			for _, p := range day.PrimExercises {
				if !validPrimExercise(p) {
					return ValidationError{Field: "primExercises", Reason: "unknown tag: " + p}
				}
			}
			for _, ex := range day.Exercises {
				for _, set := range ex.SetsDetail {
					if !AuthorMayCreate(set.CreatedBy, set.Type) {
						return ValidationError{Field: "setsDetail", Reason: string(set.CreatedBy) + " may not create a " + string(set.Type) + " set"}
					}
				}
			}
		}
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Overlaps reports whether the two inclusive date ranges intersect.
func (b *Block) Overlaps(start, end time.Time) bool {
	return !b.BlockStartDate.After(end) && !b.BlockEndDate.Before(start)
}

// FindExercise walks week -> day -> exercise in document order and returns
// the first entry with the given ID, or nil. Entry IDs are unique within a
// block, so first match is the only match.
func (b *Block) FindExercise(entryID primitive.ObjectID) *ExerciseEntry {
	for wi := range b.BlockSchedule {
		for di := range b.BlockSchedule[wi].DailySchedule {
			day := &b.BlockSchedule[wi].DailySchedule[di]
			for ei := range day.Exercises {
				if day.Exercises[ei].ID == entryID {
					return &day.Exercises[ei]
				}
			}
		}
	}
	return nil
}

// FindSet locates a set inside a specific exercise entry.
func (e *ExerciseEntry) FindSet(setID primitive.ObjectID) *Set {
	for i := range e.SetsDetail {
		if e.SetsDetail[i].ID == setID {
			return &e.SetsDetail[i]
		}
	}
	return nil
}

// RemoveSet deletes a set by ID and reports whether it was present.
func (e *ExerciseEntry) RemoveSet(setID primitive.ObjectID) bool {
	for i := range e.SetsDetail {
		if e.SetsDetail[i].ID == setID {
			e.SetsDetail = append(e.SetsDetail[:i], e.SetsDetail[i+1:]...)
			return true
		}
	}
	return false
}

// Week returns the schedule entry for the 1-based week number, or nil.
func (b *Block) Week(weekNumber int) *WeeklySchedule {
	for i := range b.BlockSchedule {
		if b.BlockSchedule[i].WeekNumber == weekNumber {
			return &b.BlockSchedule[i]
		}
	}
	return nil
}

// Day returns the day entry at dayIndex within the given week, or nil.
func (w *WeeklySchedule) Day(dayIndex int) *DailySchedule {
	if dayIndex < 0 || dayIndex >= len(w.DailySchedule) {
		return nil
	}
	return &w.DailySchedule[dayIndex]
}

// AssignIDs stamps fresh ObjectIDs on every exercise entry and set that is
// missing one. Called on create paths so nested IDs are generated centrally.
func (b *Block) AssignIDs(now time.Time) {
	for wi := range b.BlockSchedule {
		for di := range b.BlockSchedule[wi].DailySchedule {
			day := &b.BlockSchedule[wi].DailySchedule[di]
			for ei := range day.Exercises {
				ex := &day.Exercises[ei]
				if ex.ID.IsZero() {
					ex.ID = primitive.NewObjectID()
				}
				for si := range ex.SetsDetail {
					set := &ex.SetsDetail[si]
					if set.ID.IsZero() {
						set.ID = primitive.NewObjectID()
					}
					if set.CreatedAt.IsZero() {
						set.CreatedAt = now
					}
				}
			}
		}
	}
}

// ValidationError names the offending field so handlers can surface it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
