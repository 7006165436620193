package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate 校验 TripContext 的必填字段与取值范围。
// 空 Activities 是合法的：活动匹配分退化为 0。
func (t *TripContext) Validate() error {
	if t == nil {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "trip context is nil")
	}
	err := getValidator().Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "invalid trip context: "+strings.Join(msgs, "; "))
}
