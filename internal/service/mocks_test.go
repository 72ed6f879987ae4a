package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"psymetric/internal/domain"
)

// Fakes en memoria de los repositorios, compartidos por los tests del
// paquete. Devuelven pgx.ErrNoRows en ausencia, igual que las
// implementaciones reales.

type fakeUserRepo struct {
	users map[string]domain.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

type fakeTestRepo struct {
	tests map[string]domain.Test
}

func newFakeTestRepo(tests ...domain.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: map[string]domain.Test{}}
	for _, t := range tests {
		r.tests[t.Code] = t
	}
	return r
}

func (r *fakeTestRepo) ListActive(_ context.Context) ([]domain.Test, error) {
	out := []domain.Test{}
	for _, t := range r.tests {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) GetByCode(_ context.Context, code string) (domain.Test, error) {
	t, ok := r.tests[code]
	if !ok {
		return domain.Test{}, pgx.ErrNoRows
	}
	return t, nil
}

type fakeSessionRepo struct {
	sessions map[string]domain.TestSession
}

func newFakeSessionRepo(sessions ...domain.TestSession) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: map[string]domain.TestSession{}}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) Create(_ context.Context, session domain.TestSession) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (domain.TestSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return domain.TestSession{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *fakeSessionRepo) FindInProgress(_ context.Context, userID, testCode string) (domain.TestSession, error) {
	for _, s := range r.sessions {
		if s.UserID == userID && s.TestCode == testCode && s.Status == domain.SessionInProgress {
			return s, nil
		}
	}
	return domain.TestSession{}, pgx.ErrNoRows
}

func (r *fakeSessionRepo) Complete(_ context.Context, id string, completedAt time.Time, timeSpentSeconds int) error {
	s, ok := r.sessions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	s.Status = domain.SessionCompleted
	s.CompletedAt = &completedAt
	s.TimeSpentSeconds = timeSpentSeconds
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) UpdateFraudScore(_ context.Context, id string, score float64) error {
	s, ok := r.sessions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	s.FraudScore = &score
	r.sessions[id] = s
	return nil
}

type fakeResponseRepo struct {
	bySession map[string][]domain.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{bySession: map[string][]domain.Response{}}
}

func (r *fakeResponseRepo) CreateBatch(_ context.Context, responses []domain.Response) error {
	for _, resp := range responses {
		r.bySession[resp.SessionID] = append(r.bySession[resp.SessionID], resp)
	}
	return nil
}

func (r *fakeResponseRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Response, error) {
	return r.bySession[sessionID], nil
}

type fakeResultRepo struct {
	results []domain.ScoringResult
}

func newFakeResultRepo(results ...domain.ScoringResult) *fakeResultRepo {
	return &fakeResultRepo{results: results}
}

func (r *fakeResultRepo) Upsert(_ context.Context, result domain.ScoringResult) error {
	for i, existing := range r.results {
		if existing.SessionID == result.SessionID {
			r.results[i] = result
			return nil
		}
	}
	r.results = append(r.results, result)
	return nil
}

func (r *fakeResultRepo) ListByUser(_ context.Context, userID string) ([]domain.ScoringResult, error) {
	out := []domain.ScoringResult{}
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) GetLatestByTest(_ context.Context, userID, testCode string) (domain.ScoringResult, error) {
	var (
		latest domain.ScoringResult
		found  bool
	)
	for _, res := range r.results {
		if res.UserID != userID || res.TestCode != testCode {
			continue
		}
		if !found || res.CreatedAt.After(latest.CreatedAt) {
			latest = res
			found = true
		}
	}
	if !found {
		return domain.ScoringResult{}, pgx.ErrNoRows
	}
	return latest, nil
}

type fakeFraudLogRepo struct {
	bySession map[string][]domain.Detection
}

func newFakeFraudLogRepo() *fakeFraudLogRepo {
	return &fakeFraudLogRepo{bySession: map[string][]domain.Detection{}}
}

func (r *fakeFraudLogRepo) InsertDetections(_ context.Context, sessionID string, detections []domain.Detection) error {
	r.bySession[sessionID] = append(r.bySession[sessionID], detections...)
	return nil
}

func (r *fakeFraudLogRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Detection, error) {
	return r.bySession[sessionID], nil
}

type fakeAbilityRepo struct {
	scores      map[string][]domain.AbilityScore
	vectors     map[string][]float32
	similar     []domain.SimilarProfile
	lastLimit   int
	lastVector  []float32
	similarCall int
}

func newFakeAbilityRepo() *fakeAbilityRepo {
	return &fakeAbilityRepo{
		scores:  map[string][]domain.AbilityScore{},
		vectors: map[string][]float32{},
	}
}

func (r *fakeAbilityRepo) UpsertScores(_ context.Context, userID string, scores []domain.AbilityScore) error {
	r.scores[userID] = scores
	return nil
}

func (r *fakeAbilityRepo) SaveVector(_ context.Context, userID string, vector []float32) error {
	r.vectors[userID] = vector
	return nil
}

func (r *fakeAbilityRepo) FindSimilar(_ context.Context, _ string, vector []float32, limit int) ([]domain.SimilarProfile, error) {
	r.similarCall++
	r.lastVector = vector
	r.lastLimit = limit
	return r.similar, nil
}
