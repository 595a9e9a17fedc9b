package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/internal/repository/memory"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/pkg/events"
	pktNats "ai-advising-be/pkg/nats"
	"ai-advising-be/pkg/progress"
	"ai-advising-be/pkg/recommend"
	"ai-advising-be/pkg/search/fusion"
	"ai-advising-be/pkg/search/queries"

	"github.com/google/uuid"
)

type IRecommendationService interface {
	VerifySession(ctx context.Context, sessionId uuid.UUID) (*entity.StudentSession, error)
	EnsureRecommendations(ctx context.Context, sessionId uuid.UUID, emit progress.Emitter) (*dto.RecommendationsResult, error)
}

// The pipeline stages the coordinator drives. Narrow interfaces so the
// concrete components stay swappable in tests.

type QueryExpander interface {
	Expand(ctx context.Context, summary string) (*queries.QuerySet, error)
}

type DatabaseSearcher interface {
	SearchAll(ctx context.Context, queries []string) (*fusion.Result, error)
}

type WebSearcher interface {
	SearchAll(ctx context.Context, questions []string) map[string]string
}

type RecommendationSynthesizer interface {
	Synthesize(
		ctx context.Context,
		summary string,
		evidence recommend.SearchEvidence,
		tracker *progress.Tracker,
	) (*recommend.RecommendationsResponse, error)
}

type recommendationService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionCache   *memory.SessionCache
	expander       QueryExpander
	dbSearcher     DatabaseSearcher
	webSearcher    WebSearcher
	synthesizer    RecommendationSynthesizer
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.SessionCache,
	expander QueryExpander,
	dbSearcher DatabaseSearcher,
	webSearcher WebSearcher,
	synthesizer RecommendationSynthesizer,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		uowFactory:     uowFactory,
		sessionCache:   sessionCache,
		expander:       expander,
		dbSearcher:     dbSearcher,
		webSearcher:    webSearcher,
		synthesizer:    synthesizer,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// VerifySession resolves the session handle, going through the in-memory
// cache before Postgres. Expiry is always judged from CreatedAt.
func (s *recommendationService) VerifySession(ctx context.Context, sessionId uuid.UUID) (*entity.StudentSession, error) {
	if session, found := s.sessionCache.Get(sessionId); found {
		if session.ExpiredAt(time.Now()) {
			s.sessionCache.Delete(sessionId)
			return nil, ErrSessionExpired
		}
		return session, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.StudentSessionRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.ExpiredAt(time.Now()) {
		return nil, ErrSessionExpired
	}

	s.sessionCache.Save(session)
	return session, nil
}

// EnsureRecommendations returns the recommendation set for a session,
// generating it at most once: a stored set short-circuits the entire
// pipeline. Progress events go to emit throughout.
func (s *recommendationService) EnsureRecommendations(ctx context.Context, sessionId uuid.UUID, emit progress.Emitter) (*dto.RecommendationsResult, error) {
	tracker := progress.NewTracker(emit)
	tracker.Emit(progress.PhaseInit, "Verifying session")

	session, err := s.VerifySession(ctx, sessionId)
	if err != nil {
		tracker.Emit(progress.PhaseError, err.Error())
		return nil, err
	}

	// Cache hit: no retrieval, no synthesis
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cached, err := uow.RecommendationSessionRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		tracker.Emit(progress.PhaseError, "Failed to read recommendation cache")
		return nil, fmt.Errorf("read recommendation cache: %w", err)
	}
	if cached != nil {
		generatedAt := cached.CreatedAt
		if cached.UpdatedAt != nil {
			generatedAt = *cached.UpdatedAt
		}
		tracker.Emit(progress.PhaseComplete, "Recommendations ready")
		return &dto.RecommendationsResult{
			SessionId:       sessionId,
			Recommendations: cached.Recommendations,
			GeneratedAt:     generatedAt,
			FromCache:       true,
		}, nil
	}

	tracker.Emit(progress.PhaseQueryGen, "Generating search queries")
	querySet, err := s.expander.Expand(ctx, session.ProfileSummary)
	if err != nil {
		tracker.Emit(progress.PhaseError, "Query generation failed")
		return nil, err
	}

	tracker.Emit(progress.PhaseSearch, "Searching alumni records and the web")

	// Database retrieval and web search run in parallel; the join emits the
	// remaining search phases in canonical order.
	var (
		wg         sync.WaitGroup
		dbResult   *fusion.Result
		dbErr      error
		webResults map[string]string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		dbResult, dbErr = s.dbSearcher.SearchAll(ctx, querySet.Database)
	}()
	go func() {
		defer wg.Done()
		webResults = s.webSearcher.SearchAll(ctx, querySet.Internet)
	}()
	wg.Wait()

	if dbErr != nil {
		tracker.Emit(progress.PhaseError, "Alumni search failed")
		return nil, fmt.Errorf("alumni search: %w", dbErr)
	}

	tracker.Emit(progress.PhaseSearchDB, "Alumni search complete")
	tracker.Emit(progress.PhaseSearchInternet, "Web search complete")

	evidence := recommend.SearchEvidence{
		DatabaseQueries:  querySet.Database,
		AlumniDocs:       dbResult.Documents,
		AlumniFailed:     dbResult.Failed,
		InternetQueries:  querySet.Internet,
		InternetInsights: webResults,
	}
	response, err := s.synthesizer.Synthesize(ctx, session.ProfileSummary, evidence, tracker)
	if err != nil {
		tracker.Emit(progress.PhaseError, "Recommendation synthesis failed")
		return nil, err
	}

	payload, err := json.Marshal(response)
	if err != nil {
		tracker.Emit(progress.PhaseError, "Failed to encode recommendations")
		return nil, fmt.Errorf("encode recommendations: %w", err)
	}

	bundle := dto.SearchBundle{
		Queries: dto.SearchBundleQueries{
			DatabaseQueries: querySet.Database,
			InternetQueries: querySet.Internet,
		},
		Results: dto.SearchBundleResults{
			AlumniProfiles:   dbResult.Documents,
			InternetInsights: webResults,
		},
	}
	s.persistRecommendations(ctx, sessionId, bundle, payload)
	s.publishReady(ctx, sessionId)

	tracker.Emit(progress.PhaseComplete, "Recommendations ready")
	return &dto.RecommendationsResult{
		SessionId:       sessionId,
		Recommendations: payload,
		GeneratedAt:     time.Now(),
		FromCache:       false,
	}, nil
}

// persistRecommendations upserts the generated set together with its search
// bundle. Failure is logged but never surfaces: the client still gets its
// recommendations. Concurrent generations race last-write-wins, which is
// acceptable since both wrote a full valid set for the same profile.
func (s *recommendationService) persistRecommendations(ctx context.Context, sessionId uuid.UUID, bundle dto.SearchBundle, payload json.RawMessage) {
	queriesJSON, _ := json.Marshal(bundle.Queries)
	resultsJSON, _ := json.Marshal(bundle.Results)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.RecommendationSessionRepository()

	existing, err := repo.FindBySessionId(ctx, sessionId)
	if err != nil {
		s.logger.Warn("RecommendationService", "Failed to check existing recommendations", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}

	if existing != nil {
		existing.SearchQueries = queriesJSON
		existing.SearchResults = resultsJSON
		existing.Recommendations = payload
		err = repo.Update(ctx, existing)
	} else {
		err = repo.Create(ctx, &entity.RecommendationSession{
			Id:              uuid.New(),
			SessionId:       sessionId,
			SearchQueries:   queriesJSON,
			SearchResults:   resultsJSON,
			Recommendations: payload,
			CreatedAt:       time.Now(),
		})
	}
	if err != nil {
		s.logger.Warn("RecommendationService", "Failed to persist recommendations", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *recommendationService) publishReady(ctx context.Context, sessionId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "RECOMMENDATIONS_READY",
		Data: map[string]interface{}{
			"session_id": sessionId,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("RecommendationService", "Failed to publish RECOMMENDATIONS_READY event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}
