package identity

import "unicode"

const MinPasswordLength = 8

// ValidatePassword applies the club password policy and returns every
// failed rule as a message.
func ValidatePassword(password string) []string {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	var problems []string
	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "Passwords must be at least 8 characters.")
	}
	if !hasSymbol {
		problems = append(problems, "Passwords must have at least one non alphanumeric character.")
	}
	if !hasDigit {
		problems = append(problems, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		problems = append(problems, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		problems = append(problems, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	return problems
}
