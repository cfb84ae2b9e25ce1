package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/notelab/notelab-api/store"
)

// SyncUser ensures the authenticated caller exists in the user directory
// and attaches the resolved record to the request context. Requests with
// no validated identity stop here with a 401.
func SyncUser(st *store.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := st.ResolveOrCreateUser(identity.Subject, identity.Email, identity.Name)
		if err != nil {
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				log.Printf("SyncUser: rejected identity %s: %v", identity.Subject, err)
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}
			log.Printf("SyncUser: failed to resolve user for %s: %v", identity.Subject, err)
			writeError(w, http.StatusInternalServerError, "Failed to resolve user")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), user)))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
