// Package validation holds the input rules shared by the API server and the
// Go client, and registers them with gin's validator engine.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"wanderquest/pkg/utils"
)

const (
	MinPasswordLength    = 8
	PasswordRequirements = "Password must be at least 8 characters with 1 uppercase, 1 lowercase, and 1 number"
	InvalidEmailMessage  = "Must be a valid email address"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MaxBudget is the exclusive magnitude bound of the NUMERIC(10,2) budget
// column.
var MaxBudget = decimal.New(1, 8)

func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// ValidPassword reports whether password has at least eight characters with
// an upper case letter, a lower case letter and a digit.
func ValidPassword(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// ValidBudget reports whether s is a decimal that fits the budget column
// once rounded to cents.
func ValidBudget(s string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil && BudgetInRange(d)
}

func BudgetInRange(d decimal.Decimal) bool {
	return d.Round(2).Abs().LessThan(MaxBudget)
}

func isNumeric(s string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil
}

// Credentials checks an email/password pair before it is sent to
// register. Login only needs a well formed email and a non-empty password.
func Credentials(email, password string, register bool) *utils.ValidationError {
	verr := &utils.ValidationError{}
	if !ValidEmail(email) {
		verr.Fields = append(verr.Fields, utils.FieldError{Field: "email", Message: InvalidEmailMessage})
	}
	switch {
	case password == "":
		verr.Fields = append(verr.Fields, utils.FieldError{Field: "password", Message: "Password is required"})
	case register && !ValidPassword(password):
		verr.Fields = append(verr.Fields, utils.FieldError{Field: "password", Message: PasswordRequirements})
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

// Draft is the subset of itinerary fields checked before create or update.
type Draft struct {
	Title     string
	StartDate string
	EndDate   string
	Budget    string
	Location  string
}

// CheckDraft applies the form rules, including end date on or after start
// date which the server does not re-check.
func CheckDraft(d Draft) *utils.ValidationError {
	verr := &utils.ValidationError{}
	add := func(field, msg string) {
		verr.Fields = append(verr.Fields, utils.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(d.Title) == "" {
		add("title", "Title is required")
	}
	start, startErr := utils.ParseISODate(d.StartDate)
	if startErr != nil {
		add("startDate", "Start date must be a valid ISO-8601 date")
	}
	end, endErr := utils.ParseISODate(d.EndDate)
	if endErr != nil {
		add("endDate", "End date must be a valid ISO-8601 date")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		add("endDate", "End date must be on or after the start date")
	}
	switch {
	case !isNumeric(d.Budget):
		add("budget", "Budget must be numeric")
	case !ValidBudget(d.Budget):
		add("budget", "Budget must be less than "+MaxBudget.String())
	}
	if strings.TrimSpace(d.Location) == "" {
		add("location", "Location is required")
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}
