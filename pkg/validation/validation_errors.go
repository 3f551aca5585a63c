package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"pickme-backend/pkg/apperror"
)

// FieldLabels maps json field names to Korean labels used in messages.
var FieldLabels = map[string]string{
	// Account
	"email":            "이메일",
	"password":         "비밀번호",
	"nickName":         "닉네임",
	"oneLineIntroduce": "한 줄 소개",
	"socialLink":       "소셜 링크",
	"technologies":     "기술 스택",
	"code":             "인증 코드",

	// Enterprise
	"registrationNumber": "사업자 등록번호",
	"name":               "이름",
	"address":            "주소",
	"ceoName":            "대표자명",

	// Sub-resources
	"companyName": "회사명",
	"joinedAt":    "입사일",
	"retiredAt":   "퇴사일",
	"issuedDate":  "취득일",
	"competition": "대회명",
	"startedAt":   "시작일",
	"endedAt":     "종료일",
	"projectLink": "프로젝트 링크",
	"title":       "제목",
	"content":     "내용",
}

// FieldErrors converts validator errors into field-level messages. Any other error becomes a
// single entry without a field.
func FieldErrors(err error) []apperror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apperror.FieldError{{DefaultMessage: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:          e.Field(),
			Code:           e.Tag(),
			ObjectName:     objectName(e.StructNamespace()),
			DefaultMessage: formatSingleError(e),
		})
	}
	return fields
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: 필수 입력 항목입니다.", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: %s자 이상이어야 합니다.", label, param)
		}
		return fmt.Sprintf("%s: %s 이상이어야 합니다.", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: %s자 이하여야 합니다.", label, param)
		}
		return fmt.Sprintf("%s: %s 이하여야 합니다.", label, param)
	case "len":
		return fmt.Sprintf("%s: 정확히 %s자여야 합니다.", label, param)
	case "numeric":
		return fmt.Sprintf("%s: 숫자만 입력할 수 있습니다.", label)
	case "email":
		return fmt.Sprintf("%s: 이메일 형식이 올바르지 않습니다.", label)
	case "url":
		return fmt.Sprintf("%s: URL 형식이 올바르지 않습니다.", label)
	case "datetime":
		return fmt.Sprintf("%s: 날짜 형식(%s)이 올바르지 않습니다.", label, param)
	case "no_emoji":
		return fmt.Sprintf("%s: 이모지나 특수 기호를 포함할 수 없습니다.", label)
	case "not_future":
		return fmt.Sprintf("%s: 미래 날짜일 수 없습니다.", label)
	default:
		return fmt.Sprintf("%s: 유효하지 않은 값입니다. (%s)", label, e.Tag())
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

// objectName turns "AccountInitialRequest.Email" into "accountInitialRequest".
func objectName(namespace string) string {
	name, _, _ := strings.Cut(namespace, ".")
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
