// kbimport bulk-loads sign knowledge entries for one user from a JSON
// file. Rows can carry pre-computed sha256 hashes or point at local media
// files, which are hashed here. With -embed the entries are also indexed
// for semantic search without going through the API worker.
//
// Usage:
//
//	kbimport -file entries.json -user alice@example.com [-media-dir ./clips] [-embed]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/pkg/database"
	"github.com/Tarunsai01/ARIA/pkg/embedding"
	"github.com/Tarunsai01/ARIA/pkg/embedding/jina"
	"github.com/Tarunsai01/ARIA/pkg/translation/knowledge"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// importRow is one element of the import file. Exactly one of the hash or
// file fields must identify the sign media.
type importRow struct {
	Translation     string `json:"translation"`
	Gloss           string `json:"gloss"`
	SignDescription string `json:"sign_description"`
	Category        string `json:"category"`
	Confidence      int    `json:"confidence"`
	VideoHash       string `json:"video_hash"`
	ImageHash       string `json:"image_hash"`
	VideoFile       string `json:"video_file"`
	ImageFile       string `json:"image_file"`
}

func main() {
	filePath := flag.String("file", "", "JSON file holding an array of entries")
	userRef := flag.String("user", "", "target user, UUID or email")
	mediaDir := flag.String("media-dir", "", "base directory for relative video_file/image_file paths")
	embed := flag.Bool("embed", false, "generate search embeddings inline (needs an embedding provider configured)")
	flag.Parse()

	if *filePath == "" || *userRef == "" {
		fmt.Println("Usage: kbimport -file entries.json -user <uuid|email> [-media-dir ./clips] [-embed]")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	userId, err := resolveUser(db, *userRef)
	if err != nil {
		color.Red("Failed to resolve user %q: %v", *userRef, err)
		os.Exit(1)
	}

	rows, err := loadRows(*filePath)
	if err != nil {
		color.Red("Failed to load %s: %v", *filePath, err)
		os.Exit(1)
	}

	var provider embedding.EmbeddingProvider
	if *embed {
		provider, err = embeddingFromEnv()
		if err != nil {
			color.Red("Cannot embed: %v", err)
			os.Exit(1)
		}
	}

	color.Cyan("📚 Importing %d knowledge entries for user %s\n", len(rows), userId)

	created, updated, failed := 0, 0, 0
	for i, row := range rows {
		label := row.Translation
		if len(label) > 40 {
			label = label[:37] + "..."
		}
		color.Yellow("[%d/%d] %s", i+1, len(rows), label)

		entry, wasNew, err := importOne(db, userId, *mediaDir, row)
		if err != nil {
			failed++
			color.Red("  ✗ %v", err)
			continue
		}

		if wasNew {
			created++
			color.Green("  ✓ created %s", entry.Id)
		} else {
			updated++
			color.Green("  ✓ updated %s", entry.Id)
		}

		if provider != nil {
			if err := indexEntry(db, provider, entry); err != nil {
				color.Red("  ✗ embedding failed: %v", err)
				continue
			}
			color.Green("  ✓ indexed for search")
		}
	}

	fmt.Println()
	color.Cyan("Done: %d created, %d updated, %d failed", created, updated, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func loadRows(path string) ([]importRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []importRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file contains no entries")
	}
	return rows, nil
}

func resolveUser(db *gorm.DB, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		var count int64
		if err := db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return uuid.Nil, err
		}
		if count == 0 {
			return uuid.Nil, fmt.Errorf("no user with id %s", id)
		}
		return id, nil
	}

	var user model.User
	if err := db.Where("email = ?", ref).First(&user).Error; err != nil {
		return uuid.Nil, err
	}
	return user.Id, nil
}

// importOne upserts a single entry keyed by (user, media hash), the same
// identity rule the API uses, so re-running an import refreshes rows
// instead of duplicating them.
func importOne(db *gorm.DB, userId uuid.UUID, mediaDir string, row importRow) (*model.KnowledgeBaseEntry, bool, error) {
	if strings.TrimSpace(row.Translation) == "" {
		return nil, false, fmt.Errorf("translation is required")
	}

	videoHash, imageHash, err := resolveHashes(mediaDir, row)
	if err != nil {
		return nil, false, err
	}

	query := db.Where("user_id = ?", userId)
	switch {
	case videoHash != "":
		query = query.Where("video_hash = ?", videoHash)
	case imageHash != "":
		query = query.Where("image_hash = ?", imageHash)
	default:
		return nil, false, fmt.Errorf("needs video_hash, image_hash, video_file or image_file")
	}

	confidence := row.Confidence
	if confidence == 0 {
		confidence = 100
	}

	var existing model.KnowledgeBaseEntry
	err = query.First(&existing).Error
	switch {
	case err == nil:
		existing.Translation = row.Translation
		existing.Gloss = optional(row.Gloss)
		existing.SignDescription = optional(row.SignDescription)
		existing.Category = optional(row.Category)
		existing.Confidence = confidence
		existing.IsActive = true
		if err := db.Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil

	case err == gorm.ErrRecordNotFound:
		entry := model.KnowledgeBaseEntry{
			Id:              uuid.New(),
			UserId:          userId,
			Translation:     row.Translation,
			Gloss:           optional(row.Gloss),
			SignDescription: optional(row.SignDescription),
			Category:        optional(row.Category),
			Confidence:      confidence,
			IsActive:        true,
			VideoHash:       optional(videoHash),
			ImageHash:       optional(imageHash),
		}
		if err := db.Create(&entry).Error; err != nil {
			return nil, false, err
		}
		return &entry, true, nil

	default:
		return nil, false, err
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func resolveHashes(mediaDir string, row importRow) (videoHash, imageHash string, err error) {
	videoHash = strings.ToLower(strings.TrimSpace(row.VideoHash))
	imageHash = strings.ToLower(strings.TrimSpace(row.ImageHash))

	if row.VideoFile != "" {
		videoHash, err = hashFile(mediaDir, row.VideoFile)
		if err != nil {
			return "", "", err
		}
	}
	if row.ImageFile != "" {
		imageHash, err = hashFile(mediaDir, row.ImageFile)
		if err != nil {
			return "", "", err
		}
	}
	return videoHash, imageHash, nil
}

func hashFile(mediaDir, name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(mediaDir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read media %s: %w", name, err)
	}
	return knowledge.HashBytes(data), nil
}

// indexEntry writes the search embedding directly, delete-then-create per
// entry like the API worker, so an inline import and a queued re-embed
// never leave two vectors behind.
func indexEntry(db *gorm.DB, provider embedding.EmbeddingProvider, entry *model.KnowledgeBaseEntry) error {
	document := "Translation: " + entry.Translation
	if entry.Gloss != nil && *entry.Gloss != "" {
		document += "\nGloss: " + *entry.Gloss
	}
	if entry.SignDescription != nil && *entry.SignDescription != "" {
		document += "\nSign description: " + *entry.SignDescription
	}
	if entry.Category != nil && *entry.Category != "" {
		document += "\nCategory: " + *entry.Category
	}

	res, err := provider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entry.Id).Delete(&model.KnowledgeEmbedding{}).Error; err != nil {
			return err
		}
		row := model.KnowledgeEmbedding{
			Id:             uuid.New(),
			EntryId:        entry.Id,
			UserId:         entry.UserId,
			Document:       document,
			EmbeddingValue: pgvector.NewVector(res.Embedding.Values),
			CreatedAt:      time.Now(),
		}
		return tx.Create(&row).Error
	})
}

// embeddingFromEnv picks the same provider the server would.
func embeddingFromEnv() (embedding.EmbeddingProvider, error) {
	cfg := config.Load()
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel), nil
	case "jina":
		if cfg.Ai.JinaAPIKey == "" {
			return nil, fmt.Errorf("JINA_API_KEY is not set")
		}
		return jina.NewJinaProvider(cfg.Ai.JinaAPIKey), nil
	default:
		if cfg.Ai.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY is not set")
		}
		return embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel), nil
	}
}
