package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/middleware"
	"github.com/adrianopessanha/blacksalon/internal/service"

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
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
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

// atorFromClaims converts JWT claims into the service-layer actor.
func atorFromClaims(c *gin.Context) service.Ator {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Ator{}
	}
	id, _ := uuid.Parse(claims.BarbeiroID)
	return service.Ator{
		ID:     id,
		Nome:   claims.Nome,
		LojaID: claims.LojaID,
		Admin:  claims.Admin,
	}
}

// respondError maps domain sentinels to HTTP status codes. Anything unmapped
// is attached to the context for the ErrorHandler middleware (500, logged).
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDadosInvalidos):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrFechamentoDuplicado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrSaldoInsuficiente):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrSemPermissao):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrNaoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrCredenciaisInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrRegrasAusentes):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
