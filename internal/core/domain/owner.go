package domain

import (
	"fmt"
	"strings"
	"time"
)

// BirthdayLayout — формат даты рождения владельца на проводе.
const BirthdayLayout = "2006-01-02"

// Owner — владелец, на которого ссылаются объекты через OwnerID.
type Owner struct {
	ID       string
	Name     string
	Address  string
	Photo    string
	Birthday time.Time
}

// ParseBirthday принимает дату в виде 2006-01-02 или полный RFC3339.
func ParseBirthday(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(BirthdayLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birthday %q: expected YYYY-MM-DD", raw)
	}
	return t.UTC().Truncate(24 * time.Hour), nil
}
