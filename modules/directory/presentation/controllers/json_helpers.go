package controllers

import (
	"errors"
	"net/http"

	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/modules/directory/services"
	"github.com/jacksonlee411/hcdash/pkg/authz"
	"github.com/jacksonlee411/hcdash/pkg/httpapi"
	"github.com/jacksonlee411/hcdash/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string, meta map[string]string) {
	_ = httpapi.WriteRequestError(w, r, status, code, message, meta)
}

// writeServiceError maps directory service errors onto the JSON envelope.
func (c *DirectoryAPIController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var base *serrors.BaseError
	_ = errors.As(err, &base)

	switch {
	case errors.Is(err, authz.ErrForbidden):
		meta := map[string]string{}
		if base != nil {
			meta["object"] = base.TemplateData["object"]
			meta["action"] = base.TemplateData["action"]
		}
		writeAPIError(w, r, http.StatusForbidden, "DIRECTORY_FORBIDDEN", "permission denied", meta)
	case errors.Is(err, services.ErrInvalidParams):
		var meta map[string]string
		if base != nil {
			meta = base.TemplateData
		}
		writeAPIError(w, r, http.StatusBadRequest, services.ErrInvalidParams.Code, services.ErrInvalidParams.Message, meta)
	case errors.Is(err, sheet.ErrSourceUnavailable):
		writeAPIError(w, r, http.StatusBadGateway, sheet.ErrSourceUnavailable.Code, err.Error(), nil)
	default:
		c.log.WithContext(r.Context()).WithError(err).Error("directory request failed")
		writeAPIError(w, r, http.StatusInternalServerError, "DIRECTORY_INTERNAL", "internal error", nil)
	}
}
