package utils

import (
	"strings"
	"time"
	"unicode/utf8"

	"main/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 2000
	MessageMaxLen     = 10000
)

// InitValidator registers the priority and theme rules on gin's binding
// engine so request structs can carry them as binding tags.
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("priority", validatePriorityRule)
		v.RegisterValidation("theme", validateThemeRule)
	}
}

func validatePriorityRule(fl validator.FieldLevel) bool {
	return IsValidPriority(fl.Field().String())
}

func validateThemeRule(fl validator.FieldLevel) bool {
	return IsValidTheme(fl.Field().String())
}

// IsValidTitle reports whether the trimmed title is 1 to 200 characters.
// Lengths are counted in runes, not bytes.
func IsValidTitle(title string) bool {
	count := utf8.RuneCountInString(strings.TrimSpace(title))
	return count >= 1 && count <= TitleMaxLen
}

// IsValidDescription reports whether the description is absent or at most
// 2000 characters. Callers pass nil for an absent description.
func IsValidDescription(description *string) bool {
	if description == nil {
		return true
	}
	return utf8.RuneCountInString(*description) <= DescriptionMaxLen
}

// IsValidDueDate reports whether the due date is absent or strictly in the
// future at call time.
func IsValidDueDate(dueDate *time.Time) bool {
	if dueDate == nil {
		return true
	}
	return dueDate.After(time.Now())
}

// IsOverdue reports whether the due date is present and strictly in the past.
func IsOverdue(dueDate *time.Time) bool {
	if dueDate == nil {
		return false
	}
	return dueDate.Before(time.Now())
}

func IsValidPriority(priority string) bool {
	switch model.Priority(priority) {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return true
	}
	return false
}

func IsValidTheme(theme string) bool {
	switch model.Theme(theme) {
	case model.ThemeLight, model.ThemeDark, model.ThemeSystem:
		return true
	}
	return false
}

// SanitizeInput trims surrounding whitespace and caps the length at 10k
// bytes. The cut never splits a multi-byte rune, so the result is always
// valid UTF-8.
func SanitizeInput(input string) string {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) <= MessageMaxLen {
		return trimmed
	}
	cut := MessageMaxLen
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}
