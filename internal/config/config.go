package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	JWTLifetime time.Duration

	// GrantProhibitedRoles lists role names that may not grant company
	// membership to other users, even when the role carries the
	// "Add employee" permission.
	GrantProhibitedRoles []string

	GinMode string
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "dmauser")
	v.SetDefault("DB_PASSWORD", "dmapassword")
	v.SetDefault("DB_NAME", "donation_platform")
	v.SetDefault("JWT_SECRET", "default-secret-key-change-me")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("GRANT_PROHIBITED_ROLES", []string{"Donor"})
	v.SetDefault("GIN_MODE", "debug")

	return &Config{
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTLifetime:          time.Duration(v.GetInt("JWT_EXPIRATION_MINUTES")) * time.Minute,
		GrantProhibitedRoles: v.GetStringSlice("GRANT_PROHIBITED_ROLES"),
		GinMode:              v.GetString("GIN_MODE"),
	}
}
