package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.baseUrl", "")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.reasoningEffort", "")
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Fit evaluation defaults
	v.SetDefault("ai.fit.provider", "gemini")
	v.SetDefault("ai.fit.model", "")
	v.SetDefault("ai.fit.timeout", 60*time.Second)
	v.SetDefault("ai.fit.apiKey", "")
	v.SetDefault("ai.fit.maxRetries", 2)
	v.SetDefault("ai.fit.temperature", 0.1) // Low temperature for consistent verdicts
	v.SetDefault("ai.fit.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults
	v.SetDefault("ai.fit.circuitBreaker.enabled", true)
	v.SetDefault("ai.fit.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.fit.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.fit.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.fit.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.fit.circuitBreaker.failureThreshold", 0.6)

	// Scoring Configuration
	defaults := DefaultScoringConfig()
	v.SetDefault("scoring.weights.mustHave", defaults.Weights.MustHave)
	v.SetDefault("scoring.weights.preferred", defaults.Weights.Preferred)
	v.SetDefault("scoring.weights.experience", defaults.Weights.Experience)
	v.SetDefault("scoring.weights.education", defaults.Weights.Education)
	v.SetDefault("scoring.fitScoreThreshold", defaults.FitScoreThreshold)
	v.SetDefault("scoring.reviewMargin", defaults.ReviewMargin)
	v.SetDefault("scoring.skillFuzzyMatch", defaults.SkillFuzzyMatch)
	v.SetDefault("scoring.skillFuzzyThreshold", defaults.SkillFuzzyThreshold)
	v.SetDefault("scoring.experienceToleranceYears", defaults.ExperienceToleranceYears)
	v.SetDefault("scoring.locationStrict", false)
	v.SetDefault("scoring.visaStrict", false)
	v.SetDefault("scoring.salaryStrict", false)
	v.SetDefault("scoring.mode", defaults.Mode)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.apiKeys", []string{})

	// Server TLS Configuration
	v.SetDefault("server.tls.mode", "disabled")
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.autoReload", false)

	// Rate Limiting Configuration
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", int64(1024*1024)) // 1MB

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "jobfit")
	v.SetDefault("observability.serviceVersion", "")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 30*time.Second)
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", false)
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.healthCheck.timeout", 10*time.Second)
	v.SetDefault("observability.healthCheck.modelCheckTimeout", 10*time.Second)
}
