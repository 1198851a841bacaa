package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/osusume/data/db/catalog.db"
	}
	if cfg.Storage.AuthorIndexPath == "" {
		cfg.Storage.AuthorIndexPath = "/usr/local/var/osusume/data/indices/authors.json"
	}
	if cfg.Storage.RatingModelPath == "" {
		cfg.Storage.RatingModelPath = "/usr/local/var/osusume/data/models/rating-svd.json"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/osusume/data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Engine.DefaultK == 0 {
		cfg.Engine.DefaultK = 20
	}
	if cfg.Engine.MaxK == 0 {
		cfg.Engine.MaxK = 100
	}
	if cfg.Engine.DefaultBoostFactor == 0 {
		cfg.Engine.DefaultBoostFactor = 1.5
	}
	if cfg.Engine.ModelTimeoutSeconds == 0 {
		cfg.Engine.ModelTimeoutSeconds = 10
	}
}
