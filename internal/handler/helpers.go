package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// claimUserID extracts the authenticated user's id from the JWT claims.
func claimUserID(c *gin.Context) (uuid.UUID, error) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil, errors.New("sin credenciales")
	}
	return uuid.Parse(claims.UserID)
}

// claimCondominioID extracts the tenant id; SuperAdmin tokens carry none.
func claimCondominioID(c *gin.Context) (uuid.UUID, error) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.CondominioID == nil {
		return uuid.Nil, errors.New("sin condominio asociado")
	}
	return uuid.Parse(*claims.CondominioID)
}

// pathUUID parses a :param path segment as a UUID, writing the 400 itself.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Identificador invalido"))
		return uuid.Nil, false
	}
	return id, true
}
