// Command crmdex indexes CRM entities into Postgres full-text search
// and serves queries from a CLI and TUI.
package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/coveline/crmdex/internal/adapters/driven/config/file"
	"github.com/coveline/crmdex/internal/adapters/driven/storage/postgres"
	"github.com/coveline/crmdex/internal/adapters/driven/storage/sqlite"
	"github.com/coveline/crmdex/internal/adapters/driving/cli"
	crmconn "github.com/coveline/crmdex/internal/connectors/crm"
	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/services"
	crmnorm "github.com/coveline/crmdex/internal/normalisers/crm"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Best effort; secrets usually come from the environment directly.
	_ = godotenv.Load()

	apiKey := os.Getenv("CRMDEX_API_KEY")
	storeURL := os.Getenv("CRMDEX_STORE_URL")
	storeKey := os.Getenv("CRMDEX_STORE_KEY")

	var missing []string
	for _, v := range []struct{ name, value string }{
		{"CRMDEX_API_KEY", apiKey},
		{"CRMDEX_STORE_URL", storeURL},
		{"CRMDEX_STORE_KEY", storeKey},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}

	configDir, err := configDir()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	dsn, err := buildStoreDSN(storeURL, storeKey)
	if err != nil {
		return fmt.Errorf("building store connection string: %w", err)
	}

	itemStore, err := postgres.Open(dsn)
	if err != nil {
		return fmt.Errorf("opening item store: %w", err)
	}
	defer itemStore.Close()

	journal, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return fmt.Errorf("opening sync journal: %w", err)
	}
	defer journal.Close()

	nameSlugs := configStore.GetStringSlice("crm.name_slugs")
	connectorCfg := crmconn.Config{
		APIKey:            apiKey,
		BaseURL:           configStore.GetString("crm.base_url"),
		WebURL:            configStore.GetString("crm.web_url"),
		CallsObject:       configStore.GetString("crm.calls_object"),
		TranscriptSlug:    configStore.GetString("crm.transcript_slug"),
		NameSlugs:         nameSlugs,
		PageLimit:         configStore.GetInt("crm.page_limit"),
		RequestsPerSecond: float64(configStore.GetInt("crm.requests_per_second")),
	}

	webURL := connectorCfg.WebURL
	if webURL == "" {
		webURL = crmconn.DefaultWebURL
	}
	mapper := crmnorm.New(webURL, nameSlugs)
	connector := crmconn.New(connectorCfg, mapper, domain.NewNameCache())
	defer connector.Close()

	searchService := services.NewSearchService(itemStore, configStore.GetInt("search.limit"))
	syncOrchestrator := services.NewSyncOrchestrator(
		connector, itemStore, journal, configStore.GetInt("sync.batch_size"))

	cli.SetVersion(version)
	cli.SetServices(searchService, syncOrchestrator, journal)
	cli.SetTUIConfig(&cli.TUIConfig{
		SearchService:    searchService,
		SyncOrchestrator: syncOrchestrator,
	})

	return cli.Execute()
}

// configDir returns ~/.crmdex, creating it if needed.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".crmdex")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

// buildStoreDSN combines the store URL with the store key. The key is
// injected as the connection password so it never has to appear in the
// URL itself.
func buildStoreDSN(storeURL, storeKey string) (string, error) {
	u, err := url.Parse(storeURL)
	if err != nil {
		return "", fmt.Errorf("invalid store URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported store URL scheme %q", u.Scheme)
	}

	username := "postgres"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}
	u.User = url.UserPassword(username, storeKey)

	return u.String(), nil
}
