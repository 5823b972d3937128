package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/ping-keeper/internal/handler"
	"github.com/angeloszaimis/ping-keeper/internal/metrics"
)

func setupRouter(status *handler.StatusHandler, collector *metrics.Collector) *mux.Router {
	router := mux.NewRouter()

	router.Handle("/status", status).Methods(http.MethodGet)
	router.HandleFunc("/metrics", collector.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", handler.Healthz).Methods(http.MethodGet, http.MethodHead)

	return router
}
