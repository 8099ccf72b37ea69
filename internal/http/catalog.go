package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeController struct {
	views
	home HomeService
}

func NewHomeController(home HomeService, v views) *HomeController {
	return &HomeController{views: v, home: home}
}

// Index renders the catalog totals.
func (hc *HomeController) Index(c *gin.Context) {
	counts, err := hc.home.Counts(c.Request.Context())
	if err != nil {
		hc.renderError(c, err)
		return
	}
	hc.render(c, http.StatusOK, "home", gin.H{
		"Title":  "Local Library Home",
		"Counts": counts,
	})
}
