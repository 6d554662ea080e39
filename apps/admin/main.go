package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
	logsvc "github.com/trezcool/amenagement/services/logger"
	"github.com/trezcool/amenagement/storage/kv"
	"github.com/trezcool/amenagement/storage/seed"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(os.Stderr, conf)
	logger.Enable(!conf.Debug)

	store, err := kv.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening %s store: %v", conf.Store.Backend, err), err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	dataset.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		store:  store,
		usrSvc: user.NewService(store, validate, translator, collection.WithLogger(logger)),
		data:   dataset.New(store, validate, translator, seed.Default(), collection.WithLogger(logger)),
	}
	err = cli.rootCommand().ExecuteContext(context.Background())
	if cerr := store.Close(); cerr != nil {
		logger.Error("closing store", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		os.Exit(1)
	}
}
