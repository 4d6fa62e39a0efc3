package workflows

import "github.com/google/uuid"

// requestTokenNamespace scopes content-derived request tokens to ssh-keys.
var requestTokenNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/PolarWolf314/ssh-keys/request-token"))

// NewRequestToken returns a random token, unique to this invocation.
func NewRequestToken() string {
	return uuid.NewString()
}

// ContentRequestToken derives a token from the secret id and payload, so a
// rerun of the same write after a failure sends the same token.
func ContentRequestToken(secretID, payload string) string {
	data := make([]byte, 0, len(secretID)+1+len(payload))
	data = append(data, secretID...)
	data = append(data, 0)
	data = append(data, payload...)
	return uuid.NewSHA1(requestTokenNamespace, data).String()
}
