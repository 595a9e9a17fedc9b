package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/repository/specification"
	"ai-advising-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAlumniService interface {
	Create(ctx context.Context, req *dto.CreateAlumniRecordRequest) (*dto.CreateAlumniRecordResponse, error)
	List(ctx context.Context, query string, limit, offset int) ([]*dto.AlumniRecordResponse, error)
	Count(ctx context.Context) (int64, error)
}

type alumniService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewAlumniService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IAlumniService {
	return &alumniService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

// Create persists the record and queues its embedding job. Retrieval only
// sees the record once the consumer has embedded it.
func (s *alumniService) Create(ctx context.Context, req *dto.CreateAlumniRecordRequest) (*dto.CreateAlumniRecordResponse, error) {
	record := entity.AlumniRecord{
		Id:        uuid.New(),
		Source:    req.Source,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AlumniRecordRepository().Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("persist alumni record: %w", err)
	}

	msgJson, err := json.Marshal(dto.PublishEmbedAlumniMessage{RecordId: record.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, fmt.Errorf("queue embedding job: %w", err)
	}

	return &dto.CreateAlumniRecordResponse{Id: record.Id}, nil
}

// List returns records newest first, optionally filtered by a content
// substring. This is the advising office's raw view, not retrieval.
func (s *alumniService) List(ctx context.Context, query string, limit, offset int) ([]*dto.AlumniRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if query != "" {
		specs = append(specs, specification.AlumniContentQuery{Query: query})
	}

	records, err := uow.AlumniRecordRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("list alumni records: %w", err)
	}

	res := make([]*dto.AlumniRecordResponse, len(records))
	for i, record := range records {
		res[i] = &dto.AlumniRecordResponse{
			Id:        record.Id,
			Source:    record.Source,
			Content:   record.Content,
			Metadata:  record.Metadata,
			CreatedAt: record.CreatedAt,
		}
	}
	return res, nil
}

func (s *alumniService) Count(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AlumniRecordRepository().Count(ctx)
}
