package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/pkg/database"

	"github.com/joho/godotenv"
)

// Checks that the async embed pipeline kept knowledge_base_entries and
// knowledge_embeddings in sync. Entries gain their embedding after the
// worker consumes the embed event, so a missing embedding usually means
// a dropped message; an orphaned embedding means an entry was hard
// deleted without its vector.
func main() {
	prune := flag.Bool("prune", false, "delete embeddings whose entry is gone")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("🔍 EMBEDDING INTEGRITY CHECK")

	var entryCount, embeddingCount int64
	db.Model(&model.KnowledgeBaseEntry{}).Where("is_active = ?", true).Count(&entryCount)
	db.Model(&model.KnowledgeEmbedding{}).Count(&embeddingCount)
	log.Printf("Active entries: %d, embeddings: %d", entryCount, embeddingCount)

	// 1. Active entries with no embedding. These never get found by
	// semantic search until re-saved or re-imported with -embed.
	var missing []model.KnowledgeBaseEntry
	err = db.
		Where("is_active = ?", true).
		Where("id NOT IN (SELECT entry_id FROM knowledge_embeddings WHERE deleted_at IS NULL)").
		Find(&missing).Error
	if err != nil {
		log.Fatal("Query failed:", err)
	}

	log.Println(strings.Repeat("─", 50))
	log.Printf("Entries missing an embedding: %d", len(missing))
	for i, e := range missing {
		log.Printf("[%d] %s  user=%s  %q", i+1, e.Id, e.UserId, truncate(e.Translation, 40))
	}

	// 2. Embeddings whose entry is gone. Soft-deleted entries keep
	// their embedding row (both share the soft-delete), so only a hard
	// delete produces these.
	var orphans []model.KnowledgeEmbedding
	err = db.
		Where("entry_id NOT IN (SELECT id FROM knowledge_base_entries)").
		Find(&orphans).Error
	if err != nil {
		log.Fatal("Query failed:", err)
	}

	log.Println(strings.Repeat("─", 50))
	log.Printf("Orphaned embeddings: %d", len(orphans))
	for i, o := range orphans {
		log.Printf("[%d] %s  entry=%s  user=%s", i+1, o.Id, o.EntryId, o.UserId)
	}

	if len(orphans) > 0 && *prune {
		res := db.Unscoped().Where("entry_id NOT IN (SELECT id FROM knowledge_base_entries)").Delete(&model.KnowledgeEmbedding{})
		if res.Error != nil {
			log.Fatal("Prune failed:", res.Error)
		}
		log.Printf("Pruned %d orphaned embeddings", res.RowsAffected)
	}

	if len(missing) == 0 && len(orphans) == 0 {
		log.Println("✅ Knowledge base and embeddings are consistent")
		return
	}
	if len(missing) > 0 {
		log.Println("Hint: re-run the importer with -embed, or update the entries through the API to re-queue them")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
