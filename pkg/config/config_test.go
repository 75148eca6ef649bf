package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "back-ims", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "./data/print_templates.json", cfg.PrintTemplates.Path)
}

func TestFromViper_OverridesYEnterosInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("HTTP_PORT", "no-es-numero")
	v.Set("LOG_LEVEL", "debug")

	cfg := fromViper(v)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un entero inválido debe caer al valor por defecto")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ims", Password: "p@ss:w/rd", DBName: "back_ims", SSLMode: "disable"}
	assert.Equal(t, "postgres://ims:p%40ss%3Aw%2Frd@db:5432/back_ims?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestFromViper_AutoMigrate(t *testing.T) {
	assert.True(t, fromViper(viper.New()).DB.AutoMigrate)

	v := viper.New()
	v.Set("DB_AUTO_MIGRATE", "false")
	assert.False(t, fromViper(v).DB.AutoMigrate)

	v.Set("DB_AUTO_MIGRATE", "quizás")
	assert.True(t, fromViper(v).DB.AutoMigrate, "un booleano inválido debe caer al valor por defecto")
}
