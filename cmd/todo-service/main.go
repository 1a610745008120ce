package main

import (
	"net/http"
	"os"

	_ "github.com/KarpovAlexandrGo/todo-service/docs" // Для Swagger (сгенерируется swag)
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/go-chi/chi"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title           Todo Service API
// @version         1.0
// @description     Lists and tasks: create, rename, complete, move, delete.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

// setupSwagger настраивает маршруты для Swagger UI.
func setupSwagger(handler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Mount("/", handler)

	return r
}
