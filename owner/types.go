package owner

import (
	"fmt"
	"regexp"
	"time"

	"slotbook/faults"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Owner struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Owner) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("%w: name is required", faults.ErrValidation)
	}
	if !emailPattern.MatchString(o.Email) {
		return fmt.Errorf("%w: invalid email address", faults.ErrValidation)
	}
	return nil
}
