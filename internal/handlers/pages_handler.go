package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct {
	*BaseHandler
}

func NewPagesHandler(base *BaseHandler) *PagesHandler {
	return &PagesHandler{BaseHandler: base}
}

func (h *PagesHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.TemplateData(c, gin.H{
		"Title": "Ciclexpress",
	}))
}

func (h *PagesHandler) Services(c *gin.Context) {
	c.HTML(http.StatusOK, "servicios.html", h.TemplateData(c, gin.H{
		"Title": "Servicios - Ciclexpress",
	}))
}

func (h *PagesHandler) Information(c *gin.Context) {
	c.HTML(http.StatusOK, "informacion.html", h.TemplateData(c, gin.H{
		"Title": "Información - Ciclexpress",
	}))
}

func (h *PagesHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", h.TemplateData(c, gin.H{
		"Title":   "Página no encontrada",
		"Message": "La página que buscas no existe.",
	}))
}
