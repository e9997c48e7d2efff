package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/a-h/templ"
)

type nonceKey struct{}

// CSPNonce gives each request a fresh script nonce, readable by templ
// components through templ.GetNonce and by SecurityHeaders through nonceFrom.
func CSPNonce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 16)
		if _, err := rand.Read(b); err != nil {
			next.ServeHTTP(w, r)
			return
		}
		nonce := base64.StdEncoding.EncodeToString(b)

		ctx := context.WithValue(templ.WithNonce(r.Context(), nonce), nonceKey{}, nonce)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func nonceFrom(ctx context.Context) string {
	n, _ := ctx.Value(nonceKey{}).(string)
	return n
}
