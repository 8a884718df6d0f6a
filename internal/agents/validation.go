package agents

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/khatabook/number-change-portal/internal/auth"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	agentIDPattern = regexp.MustCompile(`^AG(\d+)$`)
)

// ValidationError lists every rule an input violated.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

type fields struct {
	id       string
	name     string
	email    string
	phone    string
	password string
}

func validate(f fields, checkID, checkPassword bool) error {
	var errs []string

	if checkID && len(strings.TrimSpace(f.id)) < 2 {
		errs = append(errs, "Agent ID must be at least 2 characters long")
	}
	if len(strings.TrimSpace(f.name)) < 2 {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if !emailPattern.MatchString(f.email) {
		errs = append(errs, "Valid email is required")
	}
	if !phonePattern.MatchString(f.phone) {
		errs = append(errs, "Phone number must be a 10-digit number")
	}
	if checkPassword {
		if len(f.password) < 6 {
			errs = append(errs, "Password must be at least 6 characters long")
		} else if len(f.password) > auth.MaxPasswordBytes {
			errs = append(errs, fmt.Sprintf("Password must be at most %d bytes long", auth.MaxPasswordBytes))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// NextAgentID returns AG followed by the highest numeric suffix among the
// AG<digits> ids plus one, zero padded to three digits.
func NextAgentID(existing []string) string {
	highest := 0
	for _, id := range existing {
		m := agentIDPattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("AG%03d", highest+1)
}
