package feedback

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// messages maps field/tag pairs to the user-facing constraint text.
var messages = map[string]map[string]string{
	"Name": {
		"required": "Please provide a name",
		"max":      "Name cannot be more than 60 characters",
	},
	"Feedback": {
		"required": "Please provide feedback",
		"max":      "Feedback cannot be more than 1000 characters",
	},
}

var jsonFields = map[string]string{"Name": "name", "Feedback": "feedback"}

// Validate checks s against the record schema. Lengths are counted in
// Unicode code points. The returned error is a *ValidationError listing
// violations in field order.
func Validate(s Submission) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Violations: []Violation{{Message: err.Error()}}}
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()][fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out.Violations = append(out.Violations, Violation{Field: jsonFields[fe.StructField()], Message: msg})
	}
	return out
}
