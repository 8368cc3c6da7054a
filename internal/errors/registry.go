package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

var registryMu sync.RWMutex

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (V100-V149)
	"V100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "vlite looks for vlite.yaml in the working directory unless --config is given.",
	},
	"V101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed as YAML.",
	},
	"V102": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
	},
	"V103": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "Durations use Go syntax, e.g. \"15s\" or \"1m30s\".",
	},
	"V104": {
		Category: CategoryConfig,
		Message:  "Unknown application",
		Detail:   "The app setting must name one of the built-in applications.",
	},
	"V105": {
		Category: CategoryConfig,
		Message:  "Unknown persistence backend",
		Detail:   "Supported backends are none, memory, file, redis and s3.",
	},
	"V106": {
		Category: CategoryConfig,
		Message:  "Redis address missing",
		Detail:   "The redis backend needs persist.redis.addr.",
	},
	"V107": {
		Category: CategoryConfig,
		Message:  "S3 bucket missing",
		Detail:   "The s3 backend needs persist.s3.bucket.",
	},
	"V108": {
		Category: CategoryConfig,
		Message:  "Invalid log setting",
		Detail:   "log.level must be debug, info, warn or error; log.format must be text or json.",
	},
	"V109": {
		Category: CategoryConfig,
		Message:  "Persistence key missing",
		Detail:   "persist.key names the record the application state is saved under.",
	},

	// Runtime (V200-V249)
	"V200": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
	"V201": {
		Category: CategoryPersist,
		Message:  "Persistence backend unavailable",
		Detail:   "The configured persistence backend could not be opened.",
	},
	"V202": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The application tree could not be materialized.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a given error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[code] = template
}
