package security

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/originality-tools/oriscan/controller"
	"github.com/originality-tools/oriscan/exception"

	"github.com/shaj13/go-guardian/v2/auth"
	log "github.com/sirupsen/logrus"
)

func Secure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Request failed with panic: %v", err)
				log.Tracef("Stacktrace: %v", string(debug.Stack()))
				controller.RespondWithCustomError(w, &exception.CustomError{
					Status:  http.StatusInternalServerError,
					Message: http.StatusText(http.StatusInternalServerError),
					Debug:   fmt.Sprintf("%v", err),
				})
				return
			}
		}()
		if authEnabled {
			user, err := authenticate(r)
			if err != nil {
				log.Debugf("Authorization failed(401): %+v", err)
				controller.RespondWithCustomError(w, &exception.CustomError{
					Status:  http.StatusUnauthorized,
					Message: http.StatusText(http.StatusUnauthorized),
					Debug:   fmt.Sprintf("%v", err),
				})
				return
			}
			r = auth.RequestWithUser(user, r)
		}
		next.ServeHTTP(w, r)
	}
}

func NoSecure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Request failed with panic: %v", err)
				log.Tracef("Stacktrace: %v", string(debug.Stack()))
				controller.RespondWithCustomError(w, &exception.CustomError{
					Status:  http.StatusInternalServerError,
					Message: http.StatusText(http.StatusInternalServerError),
					Debug:   fmt.Sprintf("%v", err),
				})
				return
			}
		}()
		next.ServeHTTP(w, r)
	}
}
