// Target is a demo HTTP server for exercising the keepalive against
// controllable latency.
//
// Usage:
//
//	go run target.go -port 3000 -delay 1200ms
//
// GET /health answers after the configured delay. POST /delay?d=300ms changes
// the delay at runtime, and -fail-every N makes every Nth request answer 503.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/angeloszaimis/ping-keeper/pkg/logger"
)

type target struct {
	mutex     sync.Mutex
	delay     time.Duration
	failEvery int
	requests  int
}

func (t *target) health(w http.ResponseWriter, r *http.Request) {
	t.mutex.Lock()
	t.requests++
	delay := t.delay
	fail := t.failEvery > 0 && t.requests%t.failEvery == 0
	t.mutex.Unlock()

	time.Sleep(delay)

	if fail {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (t *target) setDelay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	d, err := time.ParseDuration(r.URL.Query().Get("d"))
	if err != nil || d < 0 {
		http.Error(w, "invalid duration", http.StatusBadRequest)
		return
	}

	t.mutex.Lock()
	t.delay = d
	t.mutex.Unlock()

	fmt.Fprintf(w, "delay=%s\n", d)
}

func main() {
	port := flag.Int("port", 3000, "port to listen on")
	delay := flag.Duration("delay", 0, "response delay for /health")
	failEvery := flag.Int("fail-every", 0, "answer 503 on every Nth request, 0 disables")
	flag.Parse()

	log := logger.New("info", false, "dev")
	t := &target{delay: *delay, failEvery: *failEvery}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		log.Info("request",
			slog.String("method", r.Method),
			slog.String("from", r.RemoteAddr))
		t.health(w, r)
	})
	mux.HandleFunc("/delay", t.setDelay)

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting target", slog.String("address", addr), slog.Duration("delay", *delay))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("server failed", slog.Any("err", err))
	}
}
