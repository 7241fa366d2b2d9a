package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/service"
)

const genericError = "Something went wrong"

var kindStatus = map[apperr.Kind]int{
	apperr.KindNotFound:  http.StatusNotFound,
	apperr.KindInvalid:   http.StatusBadRequest,
	apperr.KindConflict:  http.StatusConflict,
	apperr.KindForbidden: http.StatusForbidden,
}

// fail writes the status for err's kind. Unclassified failures are logged and
// answered with a fixed body.
func fail(c *gin.Context, err error) {
	status, ok := kindStatus[apperr.KindOf(err)]
	if !ok {
		logger(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericError})
		return
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// paramID reads a positive integer path parameter. It answers 400 and returns
// false when the parameter is not one.
func paramID(c *gin.Context, name, label string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || !service.ValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s id %q is not a positive integer", label, raw)})
		return 0, false
	}
	return id, true
}

// list answers 204 for an empty collection.
func list[T any](c *gin.Context, items []T) {
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, items)
}

func created(c *gin.Context, path string, id int, body any) {
	c.Header("Location", fmt.Sprintf("/api/%s/%d", path, id))
	c.JSON(http.StatusCreated, body)
}

func updated(c *gin.Context, label string, id int) {
	c.JSON(http.StatusOK, fmt.Sprintf("%s with id %d is successfully updated", label, id))
}

func deleted(c *gin.Context, label string, id int) {
	c.JSON(http.StatusOK, fmt.Sprintf("%s with id %d is successfully deleted", label, id))
}

// bind decodes and validates the JSON body, answering 400 with per-field
// messages when validation fails.
func bind(c *gin.Context, dst any) bool {
	return bindErr(c, c.ShouldBindJSON(dst))
}

// bindOptional is bind for endpoints whose body may be left out entirely.
func bindOptional(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	return bindErr(c, err)
}

func bindErr(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "role":
		return "must be a known role code"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
