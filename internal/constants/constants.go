package constants

// Centralized constants for headers, env keys and router paths.
const (
	// Environment variable keys
	EnvServerAddress = "BEASTGRID_ADDRESS"
	EnvDatabasePath  = "BEASTGRID_DB"
	EnvConfigPath    = "BEASTGRID_CONFIG"
	EnvCreaturesPath = "BEASTGRID_CREATURES"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteHealth             = "/health"
	RouteCreatures          = "/creatures"
	RouteHeroes             = "/heroes"
	RouteHeroByID           = "/heroes/:heroID"
	RouteHeroRoster         = "/heroes/:heroID/roster"
	RouteEncounters         = "/encounters"
	RouteEncounterByID      = "/encounters/:encounterID"
	RouteEncounterAttack    = "/encounters/:encounterID/attack"
	RouteEncounterConvert   = "/encounters/:encounterID/convert"
	RouteEncounterEnemyTurn = "/encounters/:encounterID/enemy-turn"
	RouteEncounterEnd       = "/encounters/:encounterID/end"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidHeroID      = "Invalid hero ID"
	ErrHeroNotFound       = "Hero not found"
	ErrEncounterNotFound  = "Encounter not found"
	ErrEncounterOver      = "Encounter is already over"
	ErrInvalidSquare      = "Declared square is off the grid"
	ErrUnknownCreature    = "Unknown creature"
	ErrUnknownTerrain     = "Unknown biome or terrain"
	ErrFailedCreateHero   = "Failed to create hero"
	ErrFailedFetchHero    = "Failed to fetch hero"
	ErrFailedFetchRoster  = "Failed to fetch roster"
	ErrFailedSaveRoster   = "Failed to save roster"
	ErrFailedListCreature = "Failed to list creatures"
)

// Logging field names
const (
	LogFieldEncounterID = "encounter_id"
	LogFieldHeroID      = "hero_id"
	LogFieldUnit        = "unit"
	LogFieldCreature    = "creature"
	LogFieldBiome       = "biome"
	LogFieldTerrain     = "terrain"
	LogFieldSource      = "source"
	LogFieldKey         = "key"
	LogFieldAddr        = "addr"
	LogFieldPath        = "path"
)
