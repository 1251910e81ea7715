package subscription

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// forbiddenNameChars are characters that never appear in a legitimate
// display name and are common injection vectors.
var forbiddenNameChars = regexp.MustCompile(`[/()"<>\\{}]`)

// SubscribeRequest carries the raw form fields of POST /subscriptions.
type SubscribeRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 256).Error("name must be at most 256 characters"),
			validation.By(validName),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(3, 255),
		),
	)
}

func validName(value interface{}) error {
	name, _ := value.(string)
	if forbiddenNameChars.MatchString(name) {
		return errors.New("name contains forbidden characters")
	}
	return nil
}

// NewSubscriber is a validated (name, email) pair, the only shape the
// workflow accepts. Syntactic validation happens here, before any store
// access.
type NewSubscriber struct {
	Name  string
	Email string
}

// ToNewSubscriber validates the raw form input and converts it. The
// returned error is a validation error suitable for a 400 response.
func (r SubscribeRequest) ToNewSubscriber() (NewSubscriber, error) {
	if err := r.Validate(); err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Name: r.Name, Email: r.Email}, nil
}
