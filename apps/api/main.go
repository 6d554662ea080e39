package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/amenagement/apps/api/echo"
	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
	logsvc "github.com/trezcool/amenagement/services/logger"
	"github.com/trezcool/amenagement/services/metrics"
	"github.com/trezcool/amenagement/storage/kv"
	"github.com/trezcool/amenagement/storage/seed"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(os.Stdout, conf)
	logger.Enable(!conf.Debug)

	store, err := kv.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening %s store: %v", conf.Store.Backend, err), err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store", err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	dataset.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	recorder := metrics.NewRecorder()
	collOpts := []collection.Option{collection.WithLogger(logger), collection.WithObserver(recorder)}

	data := dataset.New(store, validate, translator, seed.Default(), collOpts...)
	usrSvc := user.NewService(store, validate, translator, collOpts...)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     logger,
		Metrics:    recorder,
		UserSvc:    usrSvc,
		Data:       data,
		Validate:   validate,
		Translator: translator,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address))
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Error(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
