package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"foodiefriends/internal/config"
	"foodiefriends/internal/database"
	"foodiefriends/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	exportEmail := exportCmd.Bool("email", false, "Also email the export to the configured backup address")

	importInput := importCmd.String("input", "", "Input file path (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, cfg, *exportOutput, *exportEmail)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, cfg *config.Config, outputPath string, email bool) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting database to: %s", outputPath)
	if err := backupService.Export(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Println("Export completed")

	if !email {
		return
	}

	toEmail := cfg.BackupEmail
	if toEmail == "" {
		log.Fatal("Email requested but BACKUP_EMAIL is not configured")
	}

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, "Foodie Friends")
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Fatal("Email requested but SES_FROM_EMAIL is not configured")
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		log.Fatalf("Failed to read export for emailing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := emailService.SendBackupEmail(ctx, toEmail, data); err != nil {
		log.Fatalf("Failed to email backup: %v", err)
	}
	log.Printf("Backup emailed to %s", toEmail)
}

func handleImport(backupService *service.BackupService, inputPath string) {
	log.Printf("Importing database from: %s", inputPath)
	log.Println("WARNING: this replaces the food catalog, the Hall of Fame, and the settings")

	if err := backupService.Import(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import completed")
}

func printUsage() {
	fmt.Println("Usage: backup <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    Export the database to a JSON file")
	fmt.Println("  import    Restore the database from a JSON file")
	fmt.Println()
	fmt.Println("Run 'backup <command> -h' for command flags.")
}
