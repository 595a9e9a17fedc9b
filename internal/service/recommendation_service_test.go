package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/internal/repository/contract"
	"ai-advising-be/internal/repository/memory"
	"ai-advising-be/internal/repository/specification"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/pkg/progress"
	"ai-advising-be/pkg/recommend"
	"ai-advising-be/pkg/search/fusion"
	"ai-advising-be/pkg/search/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- stubs ---

type stubStudentRepo struct {
	sessions map[uuid.UUID]*entity.StudentSession
}

func (r *stubStudentRepo) Create(_ context.Context, s *entity.StudentSession) error {
	r.sessions[s.SessionId] = s
	return nil
}

func (r *stubStudentRepo) FindOne(context.Context, ...specification.Specification) (*entity.StudentSession, error) {
	return nil, nil
}

func (r *stubStudentRepo) FindBySessionId(_ context.Context, sessionId uuid.UUID) (*entity.StudentSession, error) {
	return r.sessions[sessionId], nil
}

func (r *stubStudentRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

type stubRecRepo struct {
	mu      sync.Mutex
	stored  *entity.RecommendationSession
	findErr error
	saveErr error
	creates int
	updates int
}

func (r *stubRecRepo) Create(_ context.Context, s *entity.RecommendationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored = s
	return nil
}

func (r *stubRecRepo) Update(_ context.Context, s *entity.RecommendationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored = s
	return nil
}

func (r *stubRecRepo) FindBySessionId(context.Context, uuid.UUID) (*entity.RecommendationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.stored, nil
}

type stubUow struct {
	studentRepo *stubStudentRepo
	recRepo     *stubRecRepo
}

func (u *stubUow) Begin(context.Context) error { return nil }
func (u *stubUow) Commit() error               { return nil }
func (u *stubUow) Rollback() error             { return nil }

func (u *stubUow) StudentSessionRepository() contract.StudentSessionRepository {
	return u.studentRepo
}

func (u *stubUow) RecommendationSessionRepository() contract.RecommendationSessionRepository {
	return u.recRepo
}

func (u *stubUow) AlumniRecordRepository() contract.AlumniRecordRepository       { return nil }
func (u *stubUow) AlumniEmbeddingRepository() contract.AlumniEmbeddingRepository { return nil }

type stubFactory struct {
	uow *stubUow
}

func (f *stubFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type stubExpander struct {
	calls int
	err   error
}

func (s *stubExpander) Expand(context.Context, string) (*queries.QuerySet, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &queries.QuerySet{
		Database: []string{"q1", "q2", "q3", "q4"},
		Internet: []string{"i1", "i2"},
	}, nil
}

type stubDBSearcher struct {
	calls int
	err   error
}

func (s *stubDBSearcher) SearchAll(context.Context, []string) (*fusion.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &fusion.Result{
		Documents: map[string][]string{"q1": {"doc A"}},
		Failed:    map[string]error{},
	}, nil
}

type stubWebSearcher struct {
	calls int
}

func (s *stubWebSearcher) SearchAll(context.Context, []string) map[string]string {
	s.calls++
	return map[string]string{"i1": "answer one"}
}

type stubSynthesizer struct {
	calls int
	err   error
}

func (s *stubSynthesizer) Synthesize(
	_ context.Context,
	_ string,
	_ recommend.SearchEvidence,
	_ *progress.Tracker,
) (*recommend.RecommendationsResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &recommend.RecommendationsResponse{}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

type fixture struct {
	service     IRecommendationService
	studentRepo *stubStudentRepo
	recRepo     *stubRecRepo
	cache       *memory.SessionCache
	expander    *stubExpander
	dbSearcher  *stubDBSearcher
	webSearcher *stubWebSearcher
	synthesizer *stubSynthesizer
}

func newFixture() *fixture {
	f := &fixture{
		studentRepo: &stubStudentRepo{sessions: map[uuid.UUID]*entity.StudentSession{}},
		recRepo:     &stubRecRepo{},
		cache:       memory.NewSessionCache(),
		expander:    &stubExpander{},
		dbSearcher:  &stubDBSearcher{},
		webSearcher: &stubWebSearcher{},
		synthesizer: &stubSynthesizer{},
	}
	factory := &stubFactory{uow: &stubUow{studentRepo: f.studentRepo, recRepo: f.recRepo}}
	f.service = NewRecommendationService(
		factory,
		f.cache,
		f.expander,
		f.dbSearcher,
		f.webSearcher,
		f.synthesizer,
		nil,
		nopLogger{},
	)
	return f
}

func (f *fixture) addSession(age time.Duration) uuid.UUID {
	sessionId := uuid.New()
	f.studentRepo.sessions[sessionId] = &entity.StudentSession{
		Id:             uuid.New(),
		SessionId:      sessionId,
		FormData:       json.RawMessage(`{}`),
		ProfileSummary: "a student profile",
		CreatedAt:      time.Now().Add(-age),
	}
	return sessionId
}

// --- VerifySession ---

func TestVerifySession(t *testing.T) {
	t.Run("valid session just under the hour", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(3599 * time.Second)

		session, err := f.service.VerifySession(context.Background(), sessionId)
		require.NoError(t, err)
		assert.Equal(t, sessionId, session.SessionId)
	})

	t.Run("expired session just over the hour", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(3601 * time.Second)

		_, err := f.service.VerifySession(context.Background(), sessionId)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("expiry boundary is inclusive", func(t *testing.T) {
		created := time.Now()
		session := &entity.StudentSession{CreatedAt: created}

		assert.False(t, session.ExpiredAt(created.Add(entity.SessionTTL-time.Second)))
		assert.True(t, session.ExpiredAt(created.Add(entity.SessionTTL)))
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.VerifySession(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired cache entry is evicted", func(t *testing.T) {
		f := newFixture()
		sessionId := uuid.New()
		f.cache.Save(&entity.StudentSession{
			SessionId: sessionId,
			CreatedAt: time.Now().Add(-2 * time.Hour),
		})

		_, err := f.service.VerifySession(context.Background(), sessionId)
		assert.ErrorIs(t, err, ErrSessionExpired)
		_, found := f.cache.Get(sessionId)
		assert.False(t, found)
	})

	t.Run("database hit populates the cache", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)

		_, err := f.service.VerifySession(context.Background(), sessionId)
		require.NoError(t, err)

		_, found := f.cache.Get(sessionId)
		assert.True(t, found)
	})
}

// --- EnsureRecommendations ---

func collectEmitter() (progress.Emitter, *[]progress.Event) {
	var mu sync.Mutex
	events := &[]progress.Event{}
	return func(e progress.Event) {
		mu.Lock()
		defer mu.Unlock()
		*events = append(*events, e)
	}, events
}

func TestEnsureRecommendations(t *testing.T) {
	t.Run("full pipeline run persists and completes", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)
		emit, events := collectEmitter()

		result, err := f.service.EnsureRecommendations(context.Background(), sessionId, emit)
		require.NoError(t, err)
		assert.Equal(t, sessionId, result.SessionId)
		assert.False(t, result.FromCache)
		assert.Equal(t, 1, f.expander.calls)
		assert.Equal(t, 1, f.dbSearcher.calls)
		assert.Equal(t, 1, f.webSearcher.calls)
		assert.Equal(t, 1, f.synthesizer.calls)
		require.NotNil(t, f.recRepo.stored)
		assert.Equal(t, sessionId, f.recRepo.stored.SessionId)

		var storedQueries dto.SearchBundleQueries
		require.NoError(t, json.Unmarshal(f.recRepo.stored.SearchQueries, &storedQueries))
		assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, storedQueries.DatabaseQueries)
		assert.Equal(t, []string{"i1", "i2"}, storedQueries.InternetQueries)

		var storedResults dto.SearchBundleResults
		require.NoError(t, json.Unmarshal(f.recRepo.stored.SearchResults, &storedResults))
		assert.Equal(t, map[string][]string{"q1": {"doc A"}}, storedResults.AlumniProfiles)
		assert.Equal(t, map[string]string{"i1": "answer one"}, storedResults.InternetInsights)

		last := (*events)[len(*events)-1]
		assert.Equal(t, progress.PhaseComplete, last.Phase)
		assert.Equal(t, 1.0, last.Progress)
	})

	t.Run("stored set short-circuits the pipeline", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)
		payload := json.RawMessage(`{"recommendations":[]}`)
		f.recRepo.stored = &entity.RecommendationSession{
			Id:              uuid.New(),
			SessionId:       sessionId,
			Recommendations: payload,
			CreatedAt:       time.Now(),
		}

		result, err := f.service.EnsureRecommendations(context.Background(), sessionId, nil)
		require.NoError(t, err)
		assert.True(t, result.FromCache)
		assert.JSONEq(t, string(payload), string(result.Recommendations))
		assert.Zero(t, f.expander.calls)
		assert.Zero(t, f.dbSearcher.calls)
		assert.Zero(t, f.webSearcher.calls)
		assert.Zero(t, f.synthesizer.calls)
	})

	t.Run("expired session stops before the pipeline", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(2 * time.Hour)
		emit, events := collectEmitter()

		_, err := f.service.EnsureRecommendations(context.Background(), sessionId, emit)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Zero(t, f.expander.calls)

		last := (*events)[len(*events)-1]
		assert.Equal(t, progress.PhaseError, last.Phase)
	})

	t.Run("query generation failure surfaces as error phase", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)
		f.expander.err = errors.New("model unavailable")
		emit, events := collectEmitter()

		_, err := f.service.EnsureRecommendations(context.Background(), sessionId, emit)
		require.Error(t, err)
		assert.Zero(t, f.synthesizer.calls)

		last := (*events)[len(*events)-1]
		assert.Equal(t, progress.PhaseError, last.Phase)
	})

	t.Run("alumni search failure is fatal", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)
		f.dbSearcher.err = errors.New("database down")

		_, err := f.service.EnsureRecommendations(context.Background(), sessionId, nil)
		require.Error(t, err)
		assert.Zero(t, f.synthesizer.calls)
	})

	t.Run("persistence failure does not fail the run", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)
		f.recRepo.saveErr = errors.New("disk full")
		emit, events := collectEmitter()

		result, err := f.service.EnsureRecommendations(context.Background(), sessionId, emit)
		require.NoError(t, err)
		assert.False(t, result.FromCache)

		last := (*events)[len(*events)-1]
		assert.Equal(t, progress.PhaseComplete, last.Phase)
	})

	t.Run("phases arrive in canonical order with monotonic progress", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(time.Minute)
		emit, events := collectEmitter()

		_, err := f.service.EnsureRecommendations(context.Background(), sessionId, emit)
		require.NoError(t, err)

		var phases []progress.Phase
		lastProgress := 0.0
		for _, e := range *events {
			phases = append(phases, e.Phase)
			assert.GreaterOrEqual(t, e.Progress, lastProgress)
			lastProgress = e.Progress
		}
		assert.Equal(t, []progress.Phase{
			progress.PhaseInit,
			progress.PhaseQueryGen,
			progress.PhaseSearch,
			progress.PhaseSearchDB,
			progress.PhaseSearchInternet,
			progress.PhaseComplete,
		}, phases)
	})
}
