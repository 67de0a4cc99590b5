// Package validators registra as tags de validação do domínio no engine do
// gin e traduz falhas de binding para mensagens em português.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	registerOnce sync.Once
	registerErr  error
)

// Register liga as tags phone, gender, date e clock ao validator do gin.
// Pode ser chamada mais de uma vez.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validators: gin engine is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

func RegisterOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"phone":  isPhone,
		"gender": isGender,
		"date":   isDate,
		"clock":  isClock,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validators: register %s: %w", tag, err)
		}
	}
	return nil
}

func isPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func isGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "M", "F":
		return true
	}
	return false
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// Message resume um erro de binding numa frase para o cliente.
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Dados inválidos."
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " é obrigatório"
	case "email":
		return field + " deve ser um e-mail válido"
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, fe.Param())
	case "phone":
		return field + " deve ter 10 ou 11 dígitos"
	case "gender":
		return field + " deve ser M ou F"
	case "date":
		return field + " deve estar no formato AAAA-MM-DD"
	case "clock":
		return field + " deve estar no formato HH:MM"
	default:
		return fmt.Sprintf("%s inválido (%s)", field, fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
