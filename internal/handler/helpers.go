package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/lisalescano/back-mapp/internal/apierror"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=-90, max=90 work on coordinates without panicking.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Enum tags delegate to the model helpers so the accepted values live in
	// exactly one place.
	enums := map[string]func(string) bool{
		"incident_category": model.ValidCategory,
		"incident_status":   model.ValidStatus,
		"incident_priority": model.ValidPriority,
		"user_role":         model.ValidRole,
	}
	for tag, valid := range enums {
		valid := valid
		if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
}

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller must return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithDetails("JSON inválido", err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQueryAndValidate is the query-string counterpart for filter structs.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithDetails("Parámetros inválidos", err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New("Error de validación"))
			return false
		}
		fields := make([]apierror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apierror.FieldError{
				Field:   fe.Field(),
				Message: "no cumple la regla '" + fe.Tag() + "'",
			})
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a domain error kind to its transport status. Unknown
// errors are attached to the context; the ErrorHandler middleware turns them
// into a logged 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrSelfModification):
		status = http.StatusBadRequest
	default:
		_ = c.Error(err)
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
