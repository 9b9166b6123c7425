package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program binds one coach to one athlete and aggregates their blocks and
// competition days into a timeline. Only one non-archived program may exist
// per pair.
type Program struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Coach      primitive.ObjectID   `bson:"coach" json:"coach"`
	Athlete    primitive.ObjectID   `bson:"athlete" json:"athlete"`
	Blocks     []primitive.ObjectID `bson:"blocks" json:"blocks"`
	CompDays   []primitive.ObjectID `bson:"compDays" json:"compDays"`
	IsArchived bool                 `bson:"isArchived" json:"isArchived"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// TrainingItemKind tags entries of the merged block/comp-day timeline.
type TrainingItemKind string

const (
	ItemBlock   TrainingItemKind = "block"
	ItemCompDay TrainingItemKind = "compDay"
)

// TrainingItem is one entry of a program's merged timeline: either a block
// (dated by blockStartDate) or a competition day (dated by its meet date).
type TrainingItem struct {
	Kind    TrainingItemKind `json:"kind"`
	Date    time.Time        `json:"date"`
	Block   *Block           `json:"block,omitempty"`
	CompDay *CompDay         `json:"compDay,omitempty"`
}

// MergeTimeline builds the program timeline: blocks and comp days merged
// into one list sorted descending by date. The head is the "current
// training item". Items on the same date order comp day first so the
// result is deterministic.
func MergeTimeline(blocks []Block, compDays []CompDay) []TrainingItem {
	items := make([]TrainingItem, 0, len(blocks)+len(compDays))
	for i := range blocks {
		items = append(items, TrainingItem{Kind: ItemBlock, Date: blocks[i].BlockStartDate, Block: &blocks[i]})
	}
	for i := range compDays {
		items = append(items, TrainingItem{Kind: ItemCompDay, Date: compDays[i].Date, CompDay: &compDays[i]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].Kind == ItemCompDay && items[j].Kind == ItemBlock
	})
	return items
}
