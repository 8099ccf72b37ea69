package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/forms"
	"github.com/mrlokans/locallibrary/internal/security"
)

// views renders pages with the data every layout needs. Controllers embed it.
type views struct {
	sessions *security.SessionManager
}

// render executes the named template, adding the CSRF field and any
// pending flash message to data.
func (v views) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFField"] = template.HTML(security.CSRFTokenField(c))
	if v.sessions != nil {
		msg, err := v.sessions.PopFlash(c.Writer, c.Request)
		if err != nil {
			requestLogger(c).Warn().Err(err).Msg("Failed to clear flash message")
		}
		if msg != "" {
			data["Flash"] = msg
		}
	}
	// Set by the CSRF failure redirect.
	if msg := c.Query("error"); msg != "" {
		data["Alert"] = msg
	}
	c.HTML(status, name, data)
}

func (v views) renderStatus(c *gin.Context, status int, title, message string) {
	v.render(c, status, "error", gin.H{
		"Title":   title,
		"Status":  status,
		"Message": message,
	})
}

// renderError maps a catalog error to an error page. Missing records are 404;
// anything else is logged and shown as a 500.
func (v views) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		v.renderStatus(c, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		requestLogger(c).Warn().Err(err).Msg("Request timed out")
		v.renderStatus(c, http.StatusServiceUnavailable, "Timed Out", "The catalog took too long to respond.")
	default:
		requestLogger(c).Error().Err(err).Msg("Request failed")
		v.renderStatus(c, http.StatusInternalServerError, "Something Went Wrong", "The request could not be completed.")
	}
}

// redirect sends a 303 to location, queueing flash for the next page.
func (v views) redirect(c *gin.Context, location, flash string) {
	if flash != "" && v.sessions != nil {
		if err := v.sessions.SetFlash(c.Writer, c.Request, flash); err != nil {
			requestLogger(c).Warn().Err(err).Msg("Failed to store flash message")
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// idParam extracts the :id URL parameter. Anything that is not a positive
// integer renders a 404 and returns false.
func (v views) idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		v.renderStatus(c, http.StatusNotFound, "Not Found", "invalid id "+strconv.Quote(c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

// bindForm binds the POSTed form into F, sanitizes it and validates it.
// Validation failures come back as forms.Errors alongside the sanitized
// values; a malformed body is returned as err.
func bindForm[F any, PF interface {
	*F
	Sanitize()
	Validate() error
}](c *gin.Context) (F, forms.Errors, error) {
	var form F
	if err := c.ShouldBind(PF(&form)); err != nil {
		return form, nil, err
	}
	PF(&form).Sanitize()
	if err := PF(&form).Validate(); err != nil {
		if errs, ok := forms.AsErrors(err); ok {
			return form, errs, nil
		}
		return form, nil, err
	}
	return form, nil, nil
}
