// Package validation checks request inputs with go-playground/validator and
// reports failures as *common.ValidationError.
//
// Input structs use the usual `validate` tag plus two optional tags:
// `msg` overrides the reported message for that field and `redact:"true"`
// keeps the rejected value out of the error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{v: v}
}

// Struct validates s, a struct or pointer to struct. A nil return means the
// input is acceptable.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	t := reflect.Indirect(reflect.ValueOf(s)).Type()
	out := &common.ValidationError{Fields: make([]common.FieldError, 0, len(ves))}

	for _, fe := range ves {
		fieldErr := common.FieldError{
			Param:    fe.Field(),
			Msg:      fmt.Sprintf("failed on '%s'", fe.Tag()),
			Value:    fmt.Sprint(fe.Value()),
			Location: "body",
		}
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if m := f.Tag.Get("msg"); m != "" {
				fieldErr.Msg = m
			}
			if f.Tag.Get("redact") == "true" {
				fieldErr.Value = ""
			}
		}
		out.Fields = append(out.Fields, fieldErr)
	}

	return out
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
