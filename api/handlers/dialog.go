package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/validation"
)

type DeleteRequest struct {
	DocumentID int `form:"document_id" json:"document_id" validate:"min=1"`
}

func SetupDialog(router gin.IRoutes, logger logger.Logger, validator *validation.Validator) {
	router.POST("/documents/rows/:index/delete", withView(handleRequestDelete(logger, validator)))
	router.POST("/dialog/confirm", withView(handleConfirm(logger)))
	router.POST("/dialog/cancel", withView(handleCancel(logger)))
}

func handleRequestDelete(logger logger.Logger, validator *validation.Validator) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		row := rowURI{}
		request := DeleteRequest{}
		if err := c.ShouldBindUri(&row); err != nil {
			logger.Warn("could not extract row index from delete request", "err", err.Error())
			c.Abort()
			writeView(c, view, http.StatusUnprocessableEntity, []string{"failed to extract request path parameters"})
			return
		}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from delete request", "err", err.Error())
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

		if _, err := view.RequestDelete(row.Index, request.DocumentID); err != nil {
			logger.Warn("could not open delete dialog", "row", row.Index, "document_id", request.DocumentID, "err", err.Error())
			c.Abort()
			writeView(c, view, statusFor(err), []string{err.Error()})
			return
		}

		writeView(c, view, http.StatusOK, nil)
	}
}

func handleConfirm(logger logger.Logger) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		dialog := view.Dialog()
		if dialog == nil {
			c.Abort()
			writeView(c, view, http.StatusNotFound, []string{consult.ErrNoDialog.Error()})
			return
		}

		result, err := dialog.Delete(c.Request.Context())
		if err != nil {
			c.Abort()
			writeView(c, view, statusFor(err), []string{err.Error()})
			return
		}
		closeDialog(c, logger, view, result)
	}
}

func handleCancel(logger logger.Logger) func(c *gin.Context, view *consult.View) {
	return func(c *gin.Context, view *consult.View) {
		dialog := view.Dialog()
		if dialog == nil {
			c.Abort()
			writeView(c, view, http.StatusNotFound, []string{consult.ErrNoDialog.Error()})
			return
		}

		result, err := dialog.Cancel()
		if err != nil {
			c.Abort()
			writeView(c, view, statusFor(err), []string{err.Error()})
			return
		}
		closeDialog(c, logger, view, result)
	}
}

func closeDialog(c *gin.Context, logger logger.Logger, view *consult.View, result consult.DialogResult) {
	if err := view.CloseDialog(result); err != nil {
		// Another request closed it first.
		logger.Warn("could not close delete dialog", "result", result.String(), "err", err.Error())
		c.Abort()
		writeView(c, view, statusFor(err), []string{err.Error()})
		return
	}

	logger.Info("delete dialog closed", "result", result.String())
	writeView(c, view, http.StatusOK, nil)
}
