package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

// In-memory repository fakes. They mirror the mongo implementations'
// contracts: owner-scoped lookups miss as ErrNotFound, saves check the
// version token, duplicates surface as ErrConflict.

// deepCopy clones a document the way a mongo round-trip would, so fields
// hidden from JSON responses (password hashes, video object keys) survive.
func deepCopy[T any](v T) T {
	var out T
	b, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	if err := bson.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

// passTx runs the function directly, no transaction semantics.
type passTx struct{}

func (passTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = deepCopy(*user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			out := deepCopy(u)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := deepCopy(u)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(u)
	return &out, nil
}

func (r *fakeUserRepo) GetManyByID(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, deepCopy(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AddAthleteToRoster(_ context.Context, coachID, athleteID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coach, ok := r.users[coachID]
	if !ok || !coach.IsCoach() {
		return repository.ErrNotFound
	}
	for _, id := range coach.Athletes {
		if id == athleteID {
			return nil
		}
	}
	coach.Athletes = append(coach.Athletes, athleteID)
	r.users[coachID] = coach
	return nil
}

func (r *fakeUserRepo) RemoveAthleteFromRoster(_ context.Context, coachID, athleteID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coach, ok := r.users[coachID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, id := range coach.Athletes {
		if id == athleteID {
			coach.Athletes = append(coach.Athletes[:i], coach.Athletes[i+1:]...)
			r.users[coachID] = coach
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- exercises ---

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: map[primitive.ObjectID]domain.Exercise{}}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise.ID = primitive.NewObjectID()
	r.exercises[exercise.ID] = deepCopy(*exercise)
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(e)
	return &out, nil
}

func (r *fakeExerciseRepo) ListForCoach(_ context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.Type == domain.ExercisePreset || e.CreatedBy == coachID {
			out = append(out, deepCopy(e))
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) ListByType(_ context.Context, t domain.ExerciseType) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.Type == t {
			out = append(out, deepCopy(e))
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) ListCustomByCoach(_ context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.Type == domain.ExerciseCustom && e.CreatedBy == coachID {
			out = append(out, deepCopy(e))
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	r.exercises[exercise.ID] = deepCopy(*exercise)
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

// --- blocks ---

type fakeBlockRepo struct {
	mu     sync.Mutex
	blocks map[primitive.ObjectID]domain.Block

	// When set, the next Save fails with this error, emulating a
	// concurrent writer winning the version race.
	saveErr error
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: map[primitive.ObjectID]domain.Block{}}
}

func (r *fakeBlockRepo) Create(_ context.Context, block *domain.Block) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	block.ID = primitive.NewObjectID()
	block.Version = 1
	r.blocks[block.ID] = deepCopy(*block)
	return block.ID, nil
}

func (r *fakeBlockRepo) GetByIDForCoach(_ context.Context, id, coachID primitive.ObjectID) (*domain.Block, error) {
	return r.scoped(id, func(b domain.Block) bool { return b.Coach == coachID })
}

func (r *fakeBlockRepo) GetByIDForAthlete(_ context.Context, id, athleteID primitive.ObjectID) (*domain.Block, error) {
	return r.scoped(id, func(b domain.Block) bool { return b.Athlete == athleteID })
}

func (r *fakeBlockRepo) scoped(id primitive.ObjectID, match func(domain.Block) bool) (*domain.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[id]
	if !ok || !match(b) {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(b)
	return &out, nil
}

func (r *fakeBlockRepo) GetManyByID(_ context.Context, ids []primitive.ObjectID) ([]domain.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Block
	for _, id := range ids {
		if b, ok := r.blocks[id]; ok {
			out = append(out, deepCopy(b))
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) ListByAthlete(_ context.Context, athleteID primitive.ObjectID) ([]domain.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Block
	for _, b := range r.blocks {
		if b.Athlete == athleteID {
			out = append(out, deepCopy(b))
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) FindOverlapping(_ context.Context, athleteID primitive.ObjectID, block *domain.Block) (*domain.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blocks {
		if b.Athlete != athleteID || b.ID == block.ID {
			continue
		}
		if b.Overlaps(block.BlockStartDate, block.BlockEndDate) {
			out := deepCopy(b)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBlockRepo) Save(_ context.Context, block *domain.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		err := r.saveErr
		r.saveErr = nil
		return err
	}
	stored, ok := r.blocks[block.ID]
	if !ok || stored.Version != block.Version {
		return repository.ErrConflict
	}
	block.Version++
	r.blocks[block.ID] = deepCopy(*block)
	return nil
}

func (r *fakeBlockRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[id]
	if !ok || b.Coach != coachID {
		return repository.ErrNotFound
	}
	delete(r.blocks, id)
	return nil
}

func (r *fakeBlockRepo) DeleteManyByID(_ context.Context, ids []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.blocks, id)
	}
	return nil
}

// --- comp days ---

type fakeCompDayRepo struct {
	mu       sync.Mutex
	compDays map[primitive.ObjectID]domain.CompDay
}

func newFakeCompDayRepo() *fakeCompDayRepo {
	return &fakeCompDayRepo{compDays: map[primitive.ObjectID]domain.CompDay{}}
}

func (r *fakeCompDayRepo) Create(_ context.Context, compDay *domain.CompDay) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	compDay.ID = primitive.NewObjectID()
	compDay.Version = 1
	r.compDays[compDay.ID] = deepCopy(*compDay)
	return compDay.ID, nil
}

func (r *fakeCompDayRepo) GetByIDForCoach(_ context.Context, id, coachID primitive.ObjectID) (*domain.CompDay, error) {
	return r.scoped(id, func(c domain.CompDay) bool { return c.Coach == coachID })
}

func (r *fakeCompDayRepo) GetByIDForAthlete(_ context.Context, id, athleteID primitive.ObjectID) (*domain.CompDay, error) {
	return r.scoped(id, func(c domain.CompDay) bool { return c.Athlete == athleteID })
}

func (r *fakeCompDayRepo) scoped(id primitive.ObjectID, match func(domain.CompDay) bool) (*domain.CompDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.compDays[id]
	if !ok || !match(c) {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(c)
	return &out, nil
}

func (r *fakeCompDayRepo) GetManyByID(_ context.Context, ids []primitive.ObjectID) ([]domain.CompDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CompDay
	for _, id := range ids {
		if c, ok := r.compDays[id]; ok {
			out = append(out, deepCopy(c))
		}
	}
	return out, nil
}

func (r *fakeCompDayRepo) Save(_ context.Context, compDay *domain.CompDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.compDays[compDay.ID]
	if !ok || stored.Version != compDay.Version {
		return repository.ErrConflict
	}
	compDay.Version++
	r.compDays[compDay.ID] = deepCopy(*compDay)
	return nil
}

func (r *fakeCompDayRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.compDays[id]
	if !ok || c.Coach != coachID {
		return repository.ErrNotFound
	}
	delete(r.compDays, id)
	return nil
}

func (r *fakeCompDayRepo) DeleteManyByID(_ context.Context, ids []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.compDays, id)
	}
	return nil
}

// --- programs ---

type fakeProgramRepo struct {
	mu       sync.Mutex
	programs map[primitive.ObjectID]domain.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: map[primitive.ObjectID]domain.Program{}}
}

func (r *fakeProgramRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if !p.IsArchived && p.Coach == program.Coach && p.Athlete == program.Athlete {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	program.ID = primitive.NewObjectID()
	if program.Blocks == nil {
		program.Blocks = []primitive.ObjectID{}
	}
	if program.CompDays == nil {
		program.CompDays = []primitive.ObjectID{}
	}
	r.programs[program.ID] = deepCopy(*program)
	return program.ID, nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(p)
	return &out, nil
}

func (r *fakeProgramRepo) GetActiveByPair(_ context.Context, coachID, athleteID primitive.ObjectID) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if !p.IsArchived && p.Coach == coachID && p.Athlete == athleteID {
			out := deepCopy(p)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProgramRepo) GetActiveByAthlete(_ context.Context, athleteID primitive.ObjectID) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if !p.IsArchived && p.Athlete == athleteID {
			out := deepCopy(p)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProgramRepo) AppendBlock(_ context.Context, programID, blockID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[programID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Blocks = append(p.Blocks, blockID)
	r.programs[programID] = p
	return nil
}

func (r *fakeProgramRepo) RemoveBlock(_ context.Context, blockID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.programs {
		for i, b := range p.Blocks {
			if b == blockID {
				p.Blocks = append(p.Blocks[:i], p.Blocks[i+1:]...)
				r.programs[id] = p
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (r *fakeProgramRepo) AppendCompDay(_ context.Context, programID, compDayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[programID]
	if !ok {
		return repository.ErrNotFound
	}
	p.CompDays = append(p.CompDays, compDayID)
	r.programs[programID] = p
	return nil
}

func (r *fakeProgramRepo) RemoveCompDay(_ context.Context, compDayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.programs {
		for i, cd := range p.CompDays {
			if cd == compDayID {
				p.CompDays = append(p.CompDays[:i], p.CompDays[i+1:]...)
				r.programs[id] = p
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (r *fakeProgramRepo) SetArchived(_ context.Context, id primitive.ObjectID, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsArchived = archived
	r.programs[id] = p
	return nil
}

func (r *fakeProgramRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

// --- templates ---

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[primitive.ObjectID]domain.SavedBlockTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[primitive.ObjectID]domain.SavedBlockTemplate{}}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *domain.SavedBlockTemplate) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.Coach == template.Coach && t.TemplateName == template.TemplateName {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now
	r.templates[template.ID] = deepCopy(*template)
	return template.ID, nil
}

func (r *fakeTemplateRepo) GetByIDForCoach(_ context.Context, id, coachID primitive.ObjectID) (*domain.SavedBlockTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok || t.Coach != coachID {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(t)
	return &out, nil
}

func (r *fakeTemplateRepo) ListByCoach(_ context.Context, coachID primitive.ObjectID) ([]domain.SavedBlockTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SavedBlockTemplate
	for _, t := range r.templates {
		if t.Coach == coachID {
			out = append(out, deepCopy(t))
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok || t.Coach != coachID {
		return repository.ErrNotFound
	}
	delete(r.templates, id)
	return nil
}

// --- questionnaires ---

type fakeQuestionnaireRepo struct {
	mu    sync.Mutex
	forms map[primitive.ObjectID]domain.Questionnaire
}

func newFakeQuestionnaireRepo() *fakeQuestionnaireRepo {
	return &fakeQuestionnaireRepo{forms: map[primitive.ObjectID]domain.Questionnaire{}}
}

func (r *fakeQuestionnaireRepo) Upsert(_ context.Context, q *domain.Questionnaire) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.forms[q.Athlete]
	if ok {
		existing.Birthday = q.Birthday
		existing.Gender = q.Gender
		r.forms[q.Athlete] = existing
		return nil
	}
	q.ID = primitive.NewObjectID()
	r.forms[q.Athlete] = deepCopy(*q)
	return nil
}

func (r *fakeQuestionnaireRepo) GetByAthlete(_ context.Context, athleteID primitive.ObjectID) (*domain.Questionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.forms[athleteID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := deepCopy(q)
	return &out, nil
}

// --- storage ---

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey + "?ct=" + contentType, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// --- fixtures ---

// Monday, with the first upcoming Sunday as a canonical block start.
var (
	fixedNow   = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	fixedStart = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
)

func seedUser(r *fakeUserRepo, role domain.Role, username string) primitive.ObjectID {
	id := primitive.NewObjectID()
	r.users[id] = domain.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
	}
	return id
}

func seedPair(r *fakeUserRepo) (coachID, athleteID primitive.ObjectID) {
	coachID = seedUser(r, domain.RoleCoach, "coach_main")
	athleteID = seedUser(r, domain.RoleAthlete, "athlete_main")
	coach := r.users[coachID]
	coach.Athletes = append(coach.Athletes, athleteID)
	r.users[coachID] = coach
	return coachID, athleteID
}

func testBlock(coach, athlete primitive.ObjectID, weeks int) *domain.Block {
	days := []string{"Monday", "Thursday"}
	schedule := make([]domain.WeeklySchedule, 0, weeks)
	for w := 1; w <= weeks; w++ {
		daily := make([]domain.DailySchedule, 0, len(days))
		for range days {
			daily = append(daily, domain.DailySchedule{
				PrimExercises: []string{"Primary Squat"},
			})
		}
		schedule = append(schedule, domain.WeeklySchedule{
			WeekNumber:    w,
			WeekStartDate: fixedStart.AddDate(0, 0, (w-1)*7),
			DailySchedule: daily,
		})
	}
	return &domain.Block{
		Coach:          coach,
		Athlete:        athlete,
		BlockName:      "Volume Block",
		NumberOfWeeks:  weeks,
		BlockStartDate: fixedStart,
		BlockEndDate:   domain.ExpectedEndDate(fixedStart, weeks),
		Days:           days,
		BlockSchedule:  schedule,
	}
}

// The clone must keep fields the API hides from JSON, or the auth and
// video flows read blanks back out of the fakes.
func TestDeepCopyPreservesHiddenFields(t *testing.T) {
	user := domain.User{
		ID:           primitive.NewObjectID(),
		Username:     "hidden_fields",
		Email:        "hidden@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         domain.RoleAthlete,
	}
	assert.Equal(t, user.PasswordHash, deepCopy(user).PasswordHash)

	exercise := domain.Exercise{
		ID:               primitive.NewObjectID(),
		Name:             "Paused Squat",
		VideoObjectKey:   "exercises/abc/demo.mp4",
		VideoContentType: "video/mp4",
		VideoSize:        2048,
	}
	got := deepCopy(exercise)
	assert.Equal(t, exercise.VideoObjectKey, got.VideoObjectKey)
	assert.Equal(t, exercise.VideoContentType, got.VideoContentType)
	assert.Equal(t, exercise.VideoSize, got.VideoSize)
}

func testCompDay(coach, athlete primitive.ObjectID) *domain.CompDay {
	return &domain.CompDay{
		Coach:           coach,
		Athlete:         athlete,
		CompetitionName: "Spring Open",
		Date:            time.Date(2026, time.May, 17, 0, 0, 0, 0, time.UTC),
		WeightClass:     "75kg",
		Lifts: []domain.LiftAttempts{
			{
				Name: "Squat",
				Attempts: domain.Attempts{
					First:  domain.Attempt{Set: 1, Reps: 1, Weight: 170},
					Second: []domain.Attempt{{Set: 2, Reps: 1, Weight: 180}, {Set: 2, Reps: 1, Weight: 182.5}},
					Third:  []domain.Attempt{{Set: 3, Reps: 1, Weight: 190}},
				},
			},
			{
				Name: "Bench",
				Attempts: domain.Attempts{
					First:  domain.Attempt{Set: 1, Reps: 1, Weight: 100},
					Second: []domain.Attempt{{Set: 2, Reps: 1, Weight: 107.5}},
				},
			},
			{
				Name: "Deadlift",
				Attempts: domain.Attempts{
					First: domain.Attempt{Set: 1, Reps: 1, Weight: 190},
					Third: []domain.Attempt{{Set: 3, Reps: 1, Weight: 210}},
				},
			},
		},
	}
}
