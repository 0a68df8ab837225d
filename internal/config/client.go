package config

import (
    "os"
    "path/filepath"
    "time"

    "github.com/iliyamo/dacha-booking/internal/logger"
)

// ClientConfig configures the terminal front end.
type ClientConfig struct {
    APIURL      string        // backend base URL; empty means the bundled demo catalog
    HTTPTimeout time.Duration // per-request timeout of the API client
    CatalogMode string        // local | remote | auto
    LocalLimit  int           // largest catalog filtered in memory
    StateStore  string        // file | redis
    StateDir    string        // directory of the file state store
    StatePrefix string        // key prefix of the redis state store
    AdminToken  string        // bearer token for admin commands
}

// LoadClientConfig reads DACHA_* variables.
func LoadClientConfig() ClientConfig {
    return ClientConfig{
        APIURL:      os.Getenv("DACHA_API_URL"),
        HTTPTimeout: envDur("DACHA_HTTP_TIMEOUT", 15*time.Second),
        CatalogMode: envStr("DACHA_CATALOG_MODE", "auto"),
        LocalLimit:  envInt("DACHA_LOCAL_LIMIT", 100),
        StateStore:  envStr("DACHA_STATE_STORE", "file"),
        StateDir:    envStr("DACHA_STATE_DIR", defaultStateDir()),
        StatePrefix: envStr("DACHA_STATE_PREFIX", "dacha"),
        AdminToken:  os.Getenv("DACHA_ADMIN_TOKEN"),
    }
}

func defaultStateDir() string {
    if dir, err := os.UserConfigDir(); err == nil {
        return filepath.Join(dir, "dacha")
    }
    return ".dacha"
}

// LoadLogConfig reads LOG_* and FLUENT_* variables.
func LoadLogConfig() logger.Config {
    return logger.Config{
        Level:      logger.ParseLevel(os.Getenv("LOG_LEVEL")),
        JSON:       envStr("LOG_FORMAT", "text") == "json",
        NoColor:    envBool("LOG_NO_COLOR", false),
        AddSource:  envBool("LOG_SOURCE", false),
        FluentHost: os.Getenv("FLUENT_HOST"),
        FluentPort: envInt("FLUENT_PORT", 24224),
        FluentTag:  envStr("FLUENT_TAG", "dacha"),
    }
}
