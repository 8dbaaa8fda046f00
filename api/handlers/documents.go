package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/services/report"
	"github.com/meghashyamc/docregistry/validation"
)

const exportFilename = "documentos.xlsx"

type SearchRequest struct {
	ClientName string `form:"nome_cliente" json:"nome_cliente" validate:"valid_fragment,max=100"`
	ClientID   int    `form:"id_cliente" json:"id_cliente" validate:"min=0"`
	Box        int    `form:"caixa" json:"caixa" validate:"min=0"`
	TypeID     int    `form:"tipo" json:"tipo" validate:"min=0"`
	Name       string `form:"nome" json:"nome" validate:"valid_fragment,max=200"`
}

func (r SearchRequest) form() consult.Form {
	return consult.Form{
		ClientName: r.ClientName,
		ClientID:   r.ClientID,
		Box:        r.Box,
		TypeID:     r.TypeID,
		Name:       r.Name,
	}
}

type EditRequest struct {
	DocumentID int `uri:"id" json:"id" validate:"min=1"`
}

func SetupDocuments(router gin.IRoutes, logger logger.Logger, reports *report.Service, validator *validation.Validator) {
	router.GET("/documents", withView(handleShow()))
	router.POST("/documents/search", withView(handleSearch(logger, validator)))
	router.POST("/documents/clear", withView(handleClear()))
	router.GET("/documents/:id/edit", withView(handleEdit(logger, validator)))
	router.GET("/documents/export", withView(handleExport(logger, reports)))
}

func handleShow() func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		writeView(c, view, http.StatusOK, nil)
	}
}

func handleSearch(logger logger.Logger, validator *validation.Validator) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		request := SearchRequest{}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		if err := view.SearchForm(c.Request.Context(), request.form()); err != nil {
			logger.Warn("search rejected", "err", err.Error())
			c.Abort()
			writeView(c, view, statusFor(err), []string{err.Error()})
			return
		}

		writeView(c, view, http.StatusOK, nil)
	}
}

func handleClear() func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		view.Clear()
		writeView(c, view, http.StatusOK, nil)
	}
}

func handleEdit(logger logger.Logger, validator *validation.Validator) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		request := EditRequest{}
		if err := c.ShouldBindUri(&request); err != nil {
			logger.Warn("could not extract document id from edit request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request path parameters"})
			return
		}
		if err := validator.Validate(request); err != nil {
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		c.Redirect(http.StatusFound, view.Edit(request.DocumentID))
	}
}

func handleExport(logger logger.Logger, reports *report.Service) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		var buf bytes.Buffer
		if err := reports.Write(&buf, view.Rows()); err != nil {
			logger.Error("could not write documents report", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{"could not export documents"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
		c.Data(http.StatusOK, report.ContentType, buf.Bytes())
	}
}

// statusFor maps the view's guard errors to response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, consult.ErrBusy), errors.Is(err, consult.ErrDialogOpen):
		return http.StatusConflict
	case errors.Is(err, consult.ErrNoDialog):
		return http.StatusNotFound
	case errors.Is(err, consult.ErrRowOutOfRange), errors.Is(err, consult.ErrRowMismatch):
		return http.StatusNotAcceptable
	default:
		return http.StatusInternalServerError
	}
}
