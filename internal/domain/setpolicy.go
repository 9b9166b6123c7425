package domain

// SetField names a patchable field on a Set. The values mirror the JSON keys.
type SetField string

const (
	FieldActualReps   SetField = "actualReps"
	FieldActualLoad   SetField = "actualLoad"
	FieldActualRPEMin SetField = "actualRPEMin"
	FieldActualRPE    SetField = "actualRPE"
	FieldSideNote     SetField = "sideNote"
	FieldCuesNote     SetField = "cuesNote"
)

// SetPatch carries the athlete-writable fields of a set update. Nil pointers
// mean "not provided"; disallowed keys that were provided are silently
// skipped, matching the permissive patch semantics of the write API.
type SetPatch struct {
	ActualReps   *int     `json:"actualReps,omitempty"`
	ActualLoad   *float64 `json:"actualLoad,omitempty"`
	ActualRPEMin *float64 `json:"actualRPEMin,omitempty"`
	ActualRPE    *float64 `json:"actualRPE,omitempty"`
	SideNote     *string  `json:"sideNote,omitempty"`
	CuesNote     *string  `json:"cuesNote,omitempty"`
}

type policyKey struct {
	author SetAuthor
	typ    SetType
}

// setWritePolicy partitions field-level write access on an existing set by
// who created it and what kind of set it is. Coach-created sets accept the
// full actual/feedback surface from the athlete; athlete-created warmups
// accept only the raw actuals. Everything else is read-only.
var setWritePolicy = map[policyKey][]SetField{
	{AuthorCoach, SetWorking}:  {FieldActualReps, FieldActualLoad, FieldActualRPEMin, FieldActualRPE, FieldSideNote, FieldCuesNote},
	{AuthorCoach, SetTop}:      {FieldActualReps, FieldActualLoad, FieldActualRPEMin, FieldActualRPE, FieldSideNote, FieldCuesNote},
	{AuthorCoach, SetDrop}:     {FieldActualReps, FieldActualLoad, FieldActualRPEMin, FieldActualRPE, FieldSideNote, FieldCuesNote},
	{AuthorAthlete, SetWarmup}: {FieldActualReps, FieldActualLoad},
}

// WritableSetFields returns the fields an athlete may patch on a set with
// the given provenance. ok is false when the set accepts no writes at all.
func WritableSetFields(author SetAuthor, t SetType) (fields []SetField, ok bool) {
	fields, ok = setWritePolicy[policyKey{author, t}]
	return fields, ok
}

func fieldAllowed(allowed []SetField, f SetField) bool {
	for _, a := range allowed {
		if a == f {
			return true
		}
	}
	return false
}

// ApplyPatch writes the allowed, provided fields of p onto s and reports
// whether the set accepts writes at all. Provided-but-disallowed fields are
// ignored.
func (s *Set) ApplyPatch(p SetPatch) bool {
	allowed, ok := WritableSetFields(s.CreatedBy, s.Type)
	if !ok {
		return false
	}
	if p.ActualReps != nil && fieldAllowed(allowed, FieldActualReps) {
		s.ActualReps = p.ActualReps
	}
	if p.ActualLoad != nil && fieldAllowed(allowed, FieldActualLoad) {
		s.ActualLoad = p.ActualLoad
	}
	if p.ActualRPEMin != nil && fieldAllowed(allowed, FieldActualRPEMin) {
		s.ActualRPEMin = p.ActualRPEMin
	}
	if p.ActualRPE != nil && fieldAllowed(allowed, FieldActualRPE) {
		s.ActualRPE = p.ActualRPE
	}
	if p.SideNote != nil && fieldAllowed(allowed, FieldSideNote) {
		s.SideNote = *p.SideNote
	}
	if p.CuesNote != nil && fieldAllowed(allowed, FieldCuesNote) {
		s.CuesNote = *p.CuesNote
	}
	return true
}
