package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port             string
	APIAccessKey     string
	CronSecret       string
	DripFeedInterval int

	// Gemini (text generation)
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string

	// DataForSEO (keyword metrics)
	UseDataForSEO      bool
	DataForSEOUsername string
	DataForSEOPassword string
	DataForSEOBaseURL  string
	LocationCode       int
	LanguageCode       string

	// Namecheap (registrar)
	NamecheapUser     string
	NamecheapKey      string
	NamecheapClientIP string
	NamecheapSandbox  bool
	RegistrantProfile string

	// Vercel (deployment platform)
	VercelToken  string
	VercelTeamID string
	TemplateRepo string

	// Value of the DATABASE_URL variable injected into deployed
	// lander projects, so live sites can read their articles.
	SiteDatabaseURL string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
