package mailer

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	UsernameKey = "MAIL_USERNAME"
	PasswordKey = "MAIL_PASSWORD"
)

type Credentials struct {
	Username string
	Password string
}

// CredentialSource is called once per send, credentials are never cached.
type CredentialSource func() (Credentials, error)

// StaticCredentials always returns the same credentials.
func StaticCredentials(creds Credentials) CredentialSource {
	return func() (Credentials, error) {
		return creds, nil
	}
}

// EnvFileCredentials reads MAIL_USERNAME and MAIL_PASSWORD from a dotenv
// file, process environment variables of the same name are used when the file
// does not exist or `path` is empty.
func EnvFileCredentials(path string) CredentialSource {
	return func() (Credentials, error) {
		values := map[string]string{
			UsernameKey: os.Getenv(UsernameKey),
			PasswordKey: os.Getenv(PasswordKey),
		}
		if path != "" {
			fileValues, err := godotenv.Read(path)
			if err != nil && !os.IsNotExist(err) {
				return Credentials{}, fmt.Errorf("read credentials file %s: %w", path, err)
			}
			for k, v := range fileValues {
				values[k] = v
			}
		}

		creds := Credentials{
			Username: values[UsernameKey],
			Password: values[PasswordKey],
		}
		if creds.Username == "" {
			return Credentials{}, fmt.Errorf("%s is not set", UsernameKey)
		}
		return creds, nil
	}
}
