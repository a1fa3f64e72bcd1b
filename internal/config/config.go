package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	PostgresURL         string `mapstructure:"POSTGRES_URL"`
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret           string `mapstructure:"JWT_SECRET"`
	SupabaseURL         string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceRole string `mapstructure:"SUPABASE_SERVICE_ROLE"`
	SupabaseAnonKey     string `mapstructure:"SUPABASE_ANON_KEY"`
	DataDir             string `mapstructure:"DATA_DIR"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8787")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("DATA_DIR", ".")
	// Empty defaults register the optional keys so AutomaticEnv sees them.
	viper.SetDefault("POSTGRES_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_SERVICE_ROLE", "")
	viper.SetDefault("SUPABASE_ANON_KEY", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
