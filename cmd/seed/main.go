package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"ai-advising-be/internal/config"
	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/pkg/database"
	"ai-advising-be/pkg/embedding"
	"ai-advising-be/pkg/embedding/jina"
	"ai-advising-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// seedRecord mirrors one entry of the alumni JSON file.
type seedRecord struct {
	Source   string          `json:"source"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
}

// Seeds the alumni corpus: inserts records and embeds them inline, since the
// queue consumer is not running in this one-shot command.
func main() {
	filePath := flag.String("file", "data/alumni.json", "path to the alumni JSON file")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		provider = jina.NewJinaProvider(cfg.Keys.Jina)
	case "gemini":
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	default:
		provider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "", "")
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *filePath, err)
	}

	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("Error: Failed to parse %s: %v", *filePath, err)
	}

	color.Cyan("Seeding %d alumni records from %s", len(records), *filePath)

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	seeded, failed := 0, 0
	for i, rec := range records {
		if err := seedOne(ctx, uowFactory, provider, rec); err != nil {
			color.Red("  [%d/%d] %s: %v", i+1, len(records), rec.Source, err)
			failed++
			continue
		}
		color.Green("  [%d/%d] %s", i+1, len(records), rec.Source)
		seeded++
	}

	if failed > 0 {
		color.Yellow("Done with errors: %d seeded, %d failed", seeded, failed)
		os.Exit(1)
	}
	color.Green("✅ Done: %d alumni records seeded and embedded", seeded)
}

func seedOne(ctx context.Context, uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider, rec seedRecord) error {
	record := entity.AlumniRecord{
		Id:        uuid.New(),
		Source:    rec.Source,
		Content:   rec.Content,
		Metadata:  rec.Metadata,
		CreatedAt: time.Now(),
	}

	chunks := utils.SplitText(record.Content, 1500, 200)

	var embeddings []*entity.AlumniEmbedding
	for i, chunk := range chunks {
		res, err := provider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		embeddings = append(embeddings, &entity.AlumniEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			AlumniRecordId: record.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	uow := uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.AlumniRecordRepository().Create(ctx, &record); err != nil {
		return err
	}
	if err := uow.AlumniEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
		return err
	}
	return uow.Commit()
}
