// clinicctl: tarefas administrativas que não têm rota pública (criar admin,
// especialidades, médicos, desativar contas).
package main

import (
	"fmt"
	"os"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
	"github.com/BruksfildServices01/clinic-scheduler/pkg/logger"
)

func main() {
	if err := rootCmd(openStore).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// storeOpener abre o store e o hasher configurado; o teste troca por memória.
type storeOpener func() (store.Store, auth.Hasher, func(), error)

func openStore() (store.Store, auth.Hasher, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewGormStore(db), auth.NewBcryptHasher(cfg.BcryptCost), closeFn, nil
}
