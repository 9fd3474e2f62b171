package internal

import (
	"net/http"

	"dbpd/internal/controllers"
	"dbpd/internal/providers"
	"dbpd/internal/structures"
)

func InitRoutes(promptController *controllers.PromptController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/tick", http.HandlerFunc(promptController.Tick))
	routers.Post("/evaluate", http.HandlerFunc(promptController.Evaluate))
	routers.Get("/prompt", http.HandlerFunc(promptController.GetPrompt))
	routers.Post("/prompt/outcome", http.HandlerFunc(promptController.ResolvePrompt))
	routers.Get("/status", http.HandlerFunc(promptController.Status))
	routers.Post("/reset", http.HandlerFunc(promptController.Reset))
	return routers
}
