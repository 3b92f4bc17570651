package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/pkg/database"

	"github.com/joho/godotenv"
)

// Removes files from the upload directory that no user_files row points
// at anymore. Rows are deleted before their files when an upload is
// removed through the API, so anything left on disk without a row is an
// interrupted delete or a crashed upload.
func main() {
	dryRun := flag.Bool("dry-run", false, "list orphaned files without deleting them")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}

	uploadDir := cfg.Storage.UploadDir
	if _, err := os.Stat(uploadDir); err != nil {
		log.Fatalf("Upload directory %s is not readable: %v", uploadDir, err)
	}

	// 1. Load every stored path into a set. Soft-deleted rows keep
	// their file until the hard delete runs, so use Unscoped.
	var paths []string
	if err := db.Unscoped().Model(&model.UserFile{}).Pluck("file_path", &paths).Error; err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[filepath.Clean(p)] = struct{}{}
	}
	log.Printf("🔍 %d files registered in user_files", len(known))

	// 2. Walk the upload directory and collect files with no row.
	var orphans []string
	var scanned int
	err = filepath.WalkDir(uploadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		scanned++
		if _, ok := known[filepath.Clean(path)]; !ok {
			orphans = append(orphans, path)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Walk failed: %v", err)
	}
	log.Printf("Scanned %d files on disk, found %d orphans", scanned, len(orphans))

	if len(orphans) == 0 {
		log.Println("Nothing to clean up.")
		return
	}

	// 3. Delete (or just list with -dry-run).
	var removed, failed int
	for _, path := range orphans {
		if *dryRun {
			log.Printf("[dry-run] would remove %s", path)
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("⚠️ Failed to remove %s: %v", path, err)
			failed++
			continue
		}
		log.Printf("Removed %s", path)
		removed++
	}

	if *dryRun {
		log.Printf("Dry run complete: %d files would be removed", len(orphans))
		return
	}
	log.Printf("Done: %d removed, %d failed", removed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
