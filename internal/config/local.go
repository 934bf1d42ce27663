package config

import "time"

func defaults(env string) Config {
	cfg := Config{
		Port: ":8080",
		LLM: LLMConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 30 * time.Second,
		},
		Figma: FigmaConfig{
			BaseURL: "https://api.figma.com",
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			MemoryEntries: 256,
			TTL:           time.Hour,
		},
	}
	if env == "local" {
		cfg.Cache.S3 = S3Config{
			Endpoint:  "minio:9000",
			Region:    "us-east-1",
			AccessKey: "ticketsmith",
			SecretKey: "ticketsmith123",
			Bucket:    "ticketsmith-cache",
			UseSSL:    false,
		}
	}
	return cfg
}
