package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
)

var validate = newValidator()

// newValidator usa los nombres JSON en los errores por campo.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// bind parsea el cuerpo y valida las etiquetas `validate`. Si falla, ya respondió con 400/422
// y devuelve false.
func bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, writeError(c, err)
		}
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Errors:  fieldErrors(verrs),
		})
	}
	return true, nil
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		switch fe.Tag() {
		case "required":
			out[field] = "es requerido"
		case "email":
			out[field] = "debe ser un email válido"
		case "min":
			out[field] = fmt.Sprintf("mínimo %s", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("máximo %s", fe.Param())
		case "len":
			out[field] = fmt.Sprintf("debe tener longitud %s", fe.Param())
		case "gt":
			out[field] = fmt.Sprintf("debe ser mayor que %s", fe.Param())
		default:
			out[field] = fmt.Sprintf("falla la regla %s", fe.Tag())
		}
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreatePlanRequest.features[0].name" -> "features[0].name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// paramID lee un ID entero positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" debe ser un entero positivo")
	}
	return int64(id), nil
}
