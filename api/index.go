// Package handler adapts the service to serverless platforms that invoke a
// plain http.HandlerFunc instead of owning the listener.
package handler

import (
	"net/http"
	"sync"

	"nestling/config"
	"nestling/di"
	"nestling/shared/logger"
)

var (
	once sync.Once
	app  http.Handler
)

// Handler is the platform entry point. The service is wired on the first
// invocation and reused for the lifetime of the instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		app = di.InitializeService()
	})

	// Some platforms hand over requests without RequestURI set.
	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
