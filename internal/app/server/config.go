package server

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	AllowedOrigin  string
	JwtSecret      string
	RecognitionUrl string
}

func NewConfig() Config {
	var config Config

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs/server")
	viper.AddConfigPath(".")

	viper.SetDefault("Server.Port", "8080")
	viper.SetDefault("Server.AllowedOrigin", "http://localhost:3000")
	viper.SetDefault("Recognition.Url", "http://localhost:8000")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	config.Port = viper.GetString("Server.Port")
	config.AllowedOrigin = viper.GetString("Server.AllowedOrigin")
	config.RecognitionUrl = viper.GetString("Recognition.Url")
	config.JwtSecret = viper.GetString("JWT_SECRET")
	if config.JwtSecret == "" {
		panic("JWT_SECRET not configured")
	}

	return config
}
