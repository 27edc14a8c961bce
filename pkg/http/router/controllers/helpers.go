package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *openlrAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *openlrAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	if err := api.writeJSON(w, status, envelope{"error": message}, nil); err != nil {
		api.log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *openlrAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func (api *openlrAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *openlrAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *openlrAPI) UnprocessableEntityResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
}

// getStatusCode. respond according to the util.Error code of err.
func (api *openlrAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}
	switch ierr.Code() {
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, err)
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, err)
	case util.ErrUnprocessable:
		api.UnprocessableEntityResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
