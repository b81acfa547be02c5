package api

import (
	"campushub/cmd/middleware"
	"campushub/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	svc := r.Service
	admin := svc.RequireAdmin()

	apiGroup := app.Group("/v1")

	apiGroup.GET("/events", svc.ListEvents)
	apiGroup.GET("/events/:id", svc.GetEvent)
	apiGroup.POST("/events", admin, svc.CreateEvent)
	apiGroup.DELETE("/events/:id", admin, svc.DeleteEvent)

	apiGroup.POST("/events/:id/register", svc.BeginRegistration)
	apiGroup.GET("/register/:draft/qr", svc.PaymentQR)
	apiGroup.POST("/register/:draft/payment", svc.SubmitPayment)
	apiGroup.DELETE("/register/:draft", svc.DiscardRegistration)

	apiGroup.GET("/blog", svc.ListBlogPosts)
	apiGroup.POST("/blog", admin, svc.CreateBlogPost)
	apiGroup.DELETE("/blog/:id", admin, svc.DeleteBlogPost)

	apiGroup.GET("/achievements", svc.Achievements)
	apiGroup.GET("/contact/info", svc.ContactInfo)
	apiGroup.POST("/contact", svc.SubmitContact)

	apiGroup.POST("/auth/login", svc.Login)
	apiGroup.POST("/auth/logout", svc.Logout)
	apiGroup.GET("/auth/session", svc.Session)

	adminGroup := apiGroup.Group("/admin", admin)
	adminGroup.GET("/summary", svc.AdminSummary)
	adminGroup.GET("/registrations", svc.AdminRegistrations)
	adminGroup.GET("/registrations/export", svc.ExportRegistrations)
	adminGroup.GET("/registrations/:id/proof", svc.PaymentProof)

	return app
}
