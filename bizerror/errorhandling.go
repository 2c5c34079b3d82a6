package bizerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bneibrit/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = fmt.Errorf("%v", ret)
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func abort(c *gin.Context, status int, body *common.ErrorBody) {
	c.JSON(status, body)
	c.Abort()
}

func HandleError(c *gin.Context, err error) {
	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	status, body := classify(genericErr)
	entry := common.Log.WithField("path", c.Request.URL.Path).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.WithError(genericErr).Error("request failed")
	} else {
		entry.WithError(genericErr).Warn("request rejected")
	}
	abort(c, status, body)
}

func classify(err error) (int, *common.ErrorBody) {
	if bizErr, ok := err.(common.BizError); ok {
		respond := bizErr.Respond()
		return respond.Status, &common.ErrorBody{Code: respond.Code, Message: respond.Message, Data: respond.Data}
	}
	// bad request: io.EOF (no body)
	if errors.Is(err, io.EOF) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.body_not_found", Message: "body not found"}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: syntaxErr.Error()}
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.validation_failed", Message: "validation failed", Data: validationErr.Error()}
	}

	if errors.Is(err, ErrSessionAlreadyOpen) {
		return http.StatusConflict, &common.ErrorBody{Code: "session.already_open", Message: err.Error()}
	}
	if errors.Is(err, ErrUnknownEmployer) {
		return http.StatusNotFound, &common.ErrorBody{Code: "employer.not_found", Message: "unknown employer"}
	}
	if errors.Is(err, ErrUnknownHoliday) {
		return http.StatusNotFound, &common.ErrorBody{Code: "holiday.not_found", Message: "unknown holiday"}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
		return http.StatusNotFound, &common.ErrorBody{Code: "common.record_not_found", Message: "record not found"}
	}

	return http.StatusInternalServerError, &common.ErrorBody{Code: "common.internal_server_error", Message: err.Error()}
}
