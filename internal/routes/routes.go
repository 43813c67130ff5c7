package routes

import (
	"github.com/Heshmert/P2-31499269/internal/handlers"
	"github.com/Heshmert/P2-31499269/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AppHandlers groups everything RegisterRoutes wires up.
type AppHandlers struct {
	Pages   *handlers.PagesHandler
	Contact *handlers.ContactHandler
	Payment *handlers.PaymentHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, h *AppHandlers) {
	// Public pages
	r.GET("/", h.Pages.Home)
	r.GET("/servicios", h.Pages.Services)
	r.GET("/informacion", h.Pages.Information)

	// Contact form
	r.GET("/contacto", h.Contact.ShowForm)
	r.POST("/contacto", h.Contact.Submit)

	// Payments
	r.GET("/payment", h.Payment.ShowForm)
	r.POST("/payment", h.Payment.Submit)

	// Authentication
	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	r.GET("/logout", middleware.RequireAuth(), h.Auth.Logout)
	r.GET("/auth/google", h.Auth.GoogleLogin)
	r.GET("/auth/google/callback", h.Auth.GoogleCallback)

	// Admin area, role-gated. Account creation included: only an admin
	// may register new local users.
	admin := r.Group("/", middleware.RequireAdmin())
	admin.GET("/admin", h.Admin.Dashboard)
	admin.POST("/admin/replies/send/:messageId", h.Admin.SendReply)
	admin.GET("/register", h.Auth.ShowRegister)
	admin.POST("/register", h.Auth.Register)

	r.NoRoute(h.Pages.NotFound)
}
