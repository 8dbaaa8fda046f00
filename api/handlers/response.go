package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/ui"
)

// ContextKeyView is where the session middleware stores the consult view of
// the request.
const ContextKeyView = "consult_view"

type response struct {
	Data   any      `json:"data"`
	Errors []string `json:"errors"`
}

// page is the data of the rendered consult page.
type page struct {
	consult.Snapshot
	Errors []string
}

func writeResponse(c *gin.Context, data interface{}, statusCode int, errors []string) {

	if statusCode == http.StatusNoContent {
		c.JSON(statusCode, nil)
		return

	}

	response := response{
		Data:   data,
		Errors: errors,
	}

	c.JSON(statusCode, response)
}

// writeView answers with the view snapshot: the consult page for clients
// asking for HTML, the JSON envelope for everyone else.
func writeView(c *gin.Context, view *consult.View, statusCode int, errors []string) {
	snapshot := view.Snapshot()

	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.HTML(statusCode, ui.ConsultPage, page{Snapshot: snapshot, Errors: errors})
		return
	}

	writeResponse(c, snapshot, statusCode, errors)
}

func viewFrom(c *gin.Context) *consult.View {
	value, ok := c.Get(ContextKeyView)
	if !ok {
		return nil
	}
	view, _ := value.(*consult.View)
	return view
}

// withView hands the session view to h, or answers 500 when no session
// middleware ran.
func withView(h func(c *gin.Context, view *consult.View)) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := viewFrom(c)
		if view == nil {
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{"no consult session"})
			return
		}
		h(c, view)
	}
}

type rowURI struct {
	Index int `uri:"index" json:"index" validate:"min=0"`
}
