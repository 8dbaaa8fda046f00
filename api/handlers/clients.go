package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/validation"
)

type SuggestRequest struct {
	Fragment string `form:"fragment" json:"fragment" validate:"valid_fragment,max=100"`
}

type SelectRequest struct {
	Name string `form:"name" json:"name" validate:"valid_name,max=100"`
}

type ClientLookupRequest struct {
	ClientID int `form:"client_id" json:"client_id" validate:"min=1"`
}

func SetupClients(router gin.IRoutes, logger logger.Logger, validator *validation.Validator) {
	router.POST("/clients/suggest", withView(handleSuggest(logger, validator)))
	router.POST("/clients/select", withView(handleSelect(logger, validator)))
	router.POST("/documents/rows/:index/client", withView(handleClientLookup(logger, validator)))
}

func handleSuggest(logger logger.Logger, validator *validation.Validator) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		request := SuggestRequest{}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from suggest request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}
		if err := validator.Validate(request); err != nil {
			c.Abort()
			writeView(c, view, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		view.OnClientNameChange(c.Request.Context(), request.Fragment)
		writeView(c, view, http.StatusOK, nil)
	}
}

func handleSelect(logger logger.Logger, validator *validation.Validator) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		request := SelectRequest{}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from select request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}
		if err := validator.Validate(request); err != nil {
			c.Abort()
			writeView(c, view, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		view.OnClientSelected(request.Name)
		form := view.Form()
		form.ClientName = request.Name
		view.UpdateForm(form)

		writeView(c, view, http.StatusOK, nil)
	}
}

func handleClientLookup(logger logger.Logger, validator *validation.Validator) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		row := rowURI{}
		request := ClientLookupRequest{}
		if err := c.ShouldBindUri(&row); err != nil {
			logger.Warn("could not extract row index from client lookup request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusUnprocessableEntity, []string{"failed to extract request path parameters"})
			return
		}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from client lookup request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}
		for _, r := range []any{row, request} {
			if err := validator.Validate(r); err != nil {
				c.Abort()
				writeView(c, view, http.StatusNotAcceptable, []string{err.Error()})
				return
			}
		}

		view.LookupClientName(c.Request.Context(), row.Index, request.ClientID)
		writeView(c, view, http.StatusOK, nil)
	}
}
