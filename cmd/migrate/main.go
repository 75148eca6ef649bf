// migrate aplica o revierte las migraciones embebidas del esquema.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [n]
//	go run ./cmd/migrate version
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/IhsanMhd-mr/back-ims/internal/infrastructure/postgres"
	"github.com/IhsanMhd-mr/back-ims/pkg/config"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up | down [n] | version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer mg.Close()

	switch os.Args[1] {
	case "up":
		err = mg.Up()
	case "down":
		n := 1
		if len(os.Args) > 2 {
			if n, err = strconv.Atoi(os.Args[2]); err != nil || n <= 0 {
				log.Fatal().Str("n", os.Args[2]).Msg("down: n debe ser un entero positivo")
			}
		}
		err = mg.Down(n)
	case "version":
	default:
		log.Fatal().Str("cmd", os.Args[1]).Msg("comando desconocido")
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", os.Args[1]).Msg("migración fallida")
		mg.Close()
		os.Exit(1)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Error().Err(err).Msg("leer versión")
		mg.Close()
		os.Exit(1)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("esquema")
}
