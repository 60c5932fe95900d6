package models

// Status strings reported by GET /test.
const (
	BackendRunning = "✅ Running"

	DatabaseNotAvailable   = "❌ Not Available"
	DatabaseAvailable      = "✅ Available"
	DatabaseWorking        = "✅ Connected & Working"
	DatabaseNotInitialized = "⚠️  Available but not initialized"
	DatabaseConnectedError = "⚠️  Connected but Error: "
	DatabaseError          = "❌ Error: "

	ConnectionConnected    = "Connected"
	ConnectionNotConnected = "Not Connected"

	EnvSet    = "✅ Set"
	EnvNotSet = "❌ Not Set"
)

// Diagnostics describes backend and database availability.
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
