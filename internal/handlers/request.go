package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
)

func init() {
	// Field errors report json names, e.g. "vehicle.make".
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON decodes the body and answers 400 itself when that fails.
func bindJSON(c *gin.Context, log *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Respond(c, log, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fieldPath(fe.Namespace())
		if fe.Tag() == "required" {
			return httperr.ErrValidation("missing_field", field)
		}
		return httperr.ErrValidation("invalid_request", field)
	}
	return httperr.ErrValidation("invalid_request", "")
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
