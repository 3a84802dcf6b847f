package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/companieshouse/chs.go/log"

	"github.com/gorilla/mux"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/handlers"
)

func main() {
	log.Namespace = "refunds.api.salonkit.io"

	cfg, err := config.Get()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: %s. Exiting", err))
		os.Exit(1)
	}

	mainRouter := mux.NewRouter()
	handlers.Register(mainRouter, *cfg)

	log.Info("Starting refunds.api.salonkit.io service")
	err = http.ListenAndServe(cfg.BindAddr, mainRouter)

	if err != nil {
		log.Error(err)
	}
	log.Trace("Exiting refunds.api.salonkit.io service")
}
