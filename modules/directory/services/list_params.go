package services

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
	"github.com/jacksonlee411/hcdash/pkg/serrors"
)

const MaxPageSize = 500

var ErrInvalidParams = serrors.NewError(
	"DIRECTORY_INVALID_PARAMS",
	"invalid directory query",
	"Directory.Errors.InvalidParams",
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("profilekey", func(fl validator.FieldLevel) bool {
		return profile.IsCanonicalKey(fl.Field().String())
	})
	return v
}

type ListParams struct {
	Q         string `json:"q"`
	UnitKerja string `json:"unitKerja"`
	Area      string `json:"area"`
	Level     string `json:"level"`
	Sort      string `json:"sort" validate:"omitempty,profilekey"`
	Order     string `json:"order" validate:"omitempty,oneof=asc desc"`
	// Limit 0 selects the default page size.
	Limit  int `json:"limit" validate:"min=0,max=500"`
	Offset int `json:"offset" validate:"min=0"`
}

func (p *ListParams) Normalize() {
	p.Q = strings.TrimSpace(p.Q)
	p.UnitKerja = strings.TrimSpace(p.UnitKerja)
	p.Area = strings.TrimSpace(p.Area)
	p.Level = strings.TrimSpace(p.Level)
	p.Sort = strings.TrimSpace(p.Sort)
	p.Order = strings.ToLower(strings.TrimSpace(p.Order))
}

// Validate reports the first invalid field as ErrInvalidParams with the
// field and rule attached.
func (p *ListParams) Validate() error {
	p.Normalize()
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ErrInvalidParams.WithTemplateData(map[string]string{"reason": err.Error()})
	}
	return ErrInvalidParams.WithTemplateData(map[string]string{
		"field": verrs[0].Field(),
		"rule":  verrs[0].Tag(),
	})
}
