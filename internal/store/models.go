package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"
)

// CountryList is an ordered list of country codes, persisted as a JSON text
// column the way the original schema stored it.
type CountryList []string

var (
	_ driver.Valuer = (CountryList)(nil)
	_ sql.Scanner   = (*CountryList)(nil)
)

func (c CountryList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CountryList) Scan(src any) error {
	if src == nil {
		*c = CountryList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("countries: cannot scan %T", src)
	}

	if len(data) == 0 {
		*c = CountryList{}
		return nil
	}

	return json.Unmarshal(data, c)
}

// User is the only persisted entity. Email is the identity key for both local
// and federated login; ID is the subject embedded in every issued token.
// Password holds a bcrypt hash and stays null for accounts provisioned via
// federated login that have not set a local password yet.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID        int64       `bun:"id,pk,autoincrement" json:"id"`
	Name      string      `bun:"name" json:"name"`
	Birthday  *string     `bun:"birthday,nullzero" json:"birthday"`
	Email     string      `bun:"email,notnull" json:"email"`
	Countries CountryList `bun:"countries,type:text" json:"countries"`
	Password  *string     `bun:"password,nullzero" json:"-"`
}
