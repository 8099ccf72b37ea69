package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const activityPageSize = 50

type ActivityController struct {
	views
	events ActivityReader
}

func NewActivityController(events ActivityReader, v views) *ActivityController {
	return &ActivityController{views: v, events: events}
}

// Page lists recent catalog changes, newest first. ?page=N selects older events.
func (ac *ActivityController) Page(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	events, total, err := ac.events.GetEvents(c.Request.Context(), activityPageSize, (page-1)*activityPageSize)
	if err != nil {
		ac.renderError(c, err)
		return
	}

	data := gin.H{
		"Title":  "Recent Activity",
		"Events": events,
		"Total":  total,
		"Page":   page,
	}
	if page > 1 {
		data["PrevPage"] = page - 1
	}
	if int64(page*activityPageSize) < total {
		data["NextPage"] = page + 1
	}
	ac.render(c, http.StatusOK, "activity", data)
}
