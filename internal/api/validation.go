package api

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"moodmeal/internal/meal"
)

var registerOnce sync.Once

// RegisterValidators installs the enum rule on gin's validator and makes
// field errors report json names. It runs once per process.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected gin validator engine")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		err = v.RegisterValidation("enum", validateEnum)
	})
	return err
}

// validateEnum checks a value against the domain named by the tag param,
// e.g. `binding:"enum=mood"`.
func validateEnum(fl validator.FieldLevel) bool {
	return meal.IsValid(meal.Attribute(fl.Param()), fl.Field().String())
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// respondBindError writes a 400 with one entry per failed field.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": fields})
}
