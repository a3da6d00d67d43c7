package faq

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/vendor-insights/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims every text field and drops blank tags.
func Normalize(req types.CreateFAQRequest) types.CreateFAQRequest {
	out := types.CreateFAQRequest{
		Question: strings.TrimSpace(req.Question),
		Answer:   strings.TrimSpace(req.Answer),
		Category: strings.TrimSpace(req.Category),
	}
	for _, tag := range req.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out.Tags = append(out.Tags, tag)
		}
	}
	return out
}

// tagSeparator joins tags in the CSV tags column, so no single tag may contain it.
const tagSeparator = ";"

// Validate checks a normalized request. Missing fields are listed in declaration order.
func Validate(req types.CreateFAQRequest) error {
	verr := &ValidationError{}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				verr.Missing = append(verr.Missing, fe.Field())
			} else {
				verr.Invalid = append(verr.Invalid, fe.Field())
			}
		}
	}

	for _, tag := range req.Tags {
		if strings.Contains(tag, tagSeparator) {
			verr.Invalid = append(verr.Invalid, "tags")
			break
		}
	}

	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}
