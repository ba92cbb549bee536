package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	server "stock-and-swipe/server"
	"stock-and-swipe/server/logging"
	"stock-and-swipe/server/logging/sinks"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "listen address")
		configPath  = flag.String("config", "", "optional YAML tuning file")
		journalPath = flag.String("journal", "", "optional zstd event journal path")
		clientDir   = flag.String("client", "", "optional static client directory")
	)
	flag.Parse()

	cfg := server.DefaultConfig()
	if *configPath != "" {
		loaded, err := server.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout)},
	}
	if *journalPath != "" {
		journal, err := sinks.NewJournalSink(*journalPath)
		if err != nil {
			log.Fatalf("open journal: %v", err)
		}
		named = append(named, logging.NamedSink{Name: "journal", Sink: journal})
	}
	router := logging.NewRouter(nil, logging.SeverityInfo, named)
	defer router.Close(context.Background())

	world, err := server.NewWorld(cfg, router)
	if err != nil {
		log.Fatalf("new world: %v", err)
	}

	hub := server.NewHub(world)
	stop := make(chan struct{})
	go hub.Run(stop)
	defer close(stop)

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	http.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		payload := struct {
			Status     string             `json:"status"`
			ServerTime int64              `json:"serverTime"`
			Hub        server.Diagnostics `json:"hub"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			Hub:        hub.DiagnosticsSnapshot(),
		}
		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	http.HandleFunc("/ws", hub.ServeWS)

	if *clientDir != "" {
		http.Handle("/", http.FileServer(http.Dir(*clientDir)))
	}

	log.Printf("server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
