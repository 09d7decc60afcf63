package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initValidatorOnce sync.Once

// InitValidator 在gin的验证器上注册自定义规则，并使用json字段名报告错误
func InitValidator() {
	initValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("idlist", validateIDList)
	})
}

// jsonFieldName 获取结构体字段的json名
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

// validateIDList ID列表中不能出现0
func validateIDList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if field.Index(i).Uint() == 0 {
			return false
		}
	}
	return true
}

// FormatValidationError 将绑定错误转换为字段到错误信息的映射
func FormatValidationError(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["non_field_errors"] = "请求格式错误: " + err.Error()
		return fields
	}

	for _, e := range validationErrors {
		field := e.Field()
		param := e.Param()

		var message string
		switch e.Tag() {
		case "required":
			message = "该字段是必填项"
		case "min":
			if e.Kind() == reflect.String {
				message = fmt.Sprintf("长度不能小于%s", param)
			} else {
				message = fmt.Sprintf("不能小于%s", param)
			}
		case "max":
			if e.Kind() == reflect.String {
				message = fmt.Sprintf("长度不能大于%s", param)
			} else {
				message = fmt.Sprintf("不能大于%s", param)
			}
		case "email":
			message = "必须是有效的邮箱地址"
		case "idlist":
			message = "ID必须为正整数"
		default:
			message = fmt.Sprintf("验证失败: %s", e.Tag())
		}

		fields[field] = message
	}

	return fields
}
