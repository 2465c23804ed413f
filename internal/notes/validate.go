package notes

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// titleRequiredMessage is the inline message shown under the title field.
const titleRequiredMessage = "Title is required"

var validate = validator.New()

// Input is the create/edit form buffer.
type Input struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// Normalize returns the input with both fields trimmed.
func (in Input) Normalize() Input {
	return Input{
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
	}
}

// Validate normalizes the input and checks it. The returned input is the
// normalized one, ready to commit.
func Validate(in Input) (Input, error) {
	in = in.Normalize()
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Field() == "Title" {
					return in, &ValidationError{Field: "title", Message: titleRequiredMessage}
				}
			}
		}
		return in, err
	}
	return in, nil
}
