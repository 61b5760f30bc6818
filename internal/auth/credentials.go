package auth

import "encoding/base64"

// BasicAuthHeader encodes OAuth client credentials for an
// "Authorization: Basic" header: base64 of "client_id:client_secret".
func BasicAuthHeader(clientID, clientSecret string) string {
	creds := clientID + ":" + clientSecret
	return base64.StdEncoding.EncodeToString([]byte(creds))
}
