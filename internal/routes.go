package internal

import (
	"net/http"
	"techpulse/internal/controllers"
	"techpulse/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, stateController *controllers.StateController, aiController *controllers.AIController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/feed", http.HandlerFunc(apiController.GetFeed))
	routers.Get("/search", http.HandlerFunc(apiController.Search))
	routers.Get("/sources", http.HandlerFunc(apiController.GetSources))

	routers.Get("/state", http.HandlerFunc(stateController.GetState))
	routers.Get("/bookmarks", http.HandlerFunc(stateController.GetBookmarks))
	routers.Post("/bookmarks", http.HandlerFunc(stateController.AddBookmark))
	routers.Delete("/bookmarks", http.HandlerFunc(stateController.RemoveBookmark))
	routers.Get("/bookmarks/check", http.HandlerFunc(stateController.CheckBookmark))
	routers.Get("/history", http.HandlerFunc(stateController.GetHistory))
	routers.Post("/history", http.HandlerFunc(stateController.RecordRead))
	routers.Delete("/history", http.HandlerFunc(stateController.ClearHistory))
	routers.Post("/preferences", http.HandlerFunc(stateController.UpdatePreferences))
	routers.Post("/dark-mode", http.HandlerFunc(stateController.ToggleDarkMode))

	routers.Get("/ai/status", http.HandlerFunc(aiController.Status))
	routers.Post("/ai/summarize", http.HandlerFunc(aiController.Summarize))
	routers.Post("/ai/chat", http.HandlerFunc(aiController.Chat))
	routers.Post("/ai/analyze", http.HandlerFunc(aiController.Analyze))
	routers.Post("/ai/digest", http.HandlerFunc(aiController.Digest))
	return routers
}
