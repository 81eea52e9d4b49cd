package userservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	minUsernameLength = 3
	minPasswordLength = 3
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// ValidateCredentials checks raw registration input. Checks run in a fixed
// order and the first failure is returned as a common.ValidationError.
func ValidateCredentials(username, password any) error {
	v := common.NewValidator()

	v.Check(present(username) && present(password), "username", "missing username or password")

	u, ok := username.(string)
	v.Check(ok, "username", "username must be a string")

	p, ok := password.(string)
	v.Check(ok, "password", "password must be a string")

	v.Check(v.CheckStringLength(u, minUsernameLength, 0), "username", "username must be at least 3 characters long")
	v.Check(v.CheckStringLength(p, minPasswordLength, 0), "password", "password must be at least 3 characters long")
	v.Check(len(p) <= maxPasswordBytes, "password", "password must be at most 72 bytes long")

	return v.ValidationError()
}

// present mirrors how a JSON value counts as given: null, "", 0 and false do not.
func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	case bool:
		return v
	default:
		return true
	}
}
