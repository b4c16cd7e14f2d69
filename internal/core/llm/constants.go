package llm

// Error message templates
const (
	errRateLimiter          = "rate limiter error: %w"
	errOpenAIChatCompletion = "openai chat completion error: %w"
	errEncodeTopics         = "encode topic texts: %w"
)

const (
	llmAPIKeyMock   = "mock"
	defaultLanguage = "Thai"
	providerOpenAI  = "openai"
	providerMock    = "mock"
)

// Log key strings
const (
	logKeyModel    = "model"
	logKeyLanguage = "language"
	logKeyTopics   = "topics"
)
