package httpapi

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/workflow"
)

var validatorsOnce sync.Once

// registerValidators installs the domain validators on gin's validator and
// makes validation errors report JSON field names.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("workflow_index", validateWorkflowIndex)
		_ = v.RegisterValidation("gap_type", validateGapType)
		_ = v.RegisterValidation("severity", validateSeverity)
	})
}

func validateWorkflowIndex(fl validator.FieldLevel) bool {
	return workflow.ValidIndex(int(fl.Field().Int()))
}

func validateGapType(fl validator.FieldLevel) bool {
	return gap.ValidType(fl.Field().String())
}

func validateSeverity(fl validator.FieldLevel) bool {
	return gap.ValidSeverity(fl.Field().String())
}
