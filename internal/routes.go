package internal

import (
	"net/http"

	"mindbloom/internal/controllers"
	"mindbloom/internal/providers"
	"mindbloom/internal/structures"
)

func InitRoutes(progressController *controllers.ProgressController,
	notificationController *controllers.NotificationController,
	trackingController *controllers.TrackingController,
	conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/progress", http.HandlerFunc(progressController.GetProgress))
	routers.Get("/coping", http.HandlerFunc(progressController.GetCoping))
	routers.Get("/notifications", http.HandlerFunc(notificationController.GetNotifications))
	routers.Post("/notifications/read", http.HandlerFunc(notificationController.MarkRead))
	routers.Post("/mood", http.HandlerFunc(trackingController.ReceiveMood))
	routers.Post("/stress", http.HandlerFunc(trackingController.ReceiveStress))
	routers.Post("/sleep", http.HandlerFunc(trackingController.ReceiveSleep))
	routers.Post("/habits/complete", http.HandlerFunc(trackingController.ReceiveHabitCompletion))
	return routers
}
