package middleware

import (
	"fmt"
	"warehouse/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

// How strictly endpoint must be protected from abuse.
// Rate limiting picks its quota by this value.
type EndpointSensivity int

const (
	// Health checks, metrics, docs
	InsignificantEndpoint EndpointSensivity = iota
	DefaultEndpoint
	// Credential checks
	SensitiveEndpoint
)

var sensivityNames = [...]string{
	InsignificantEndpoint: "insignificant",
	DefaultEndpoint:       "default",
	SensitiveEndpoint:     "sensitive",
}

func (s EndpointSensivity) String() string {
	if s.Validate() != nil {
		return fmt.Sprintf("EndpointSensivity(%d)", int(s))
	}
	return sensivityNames[s]
}

func (s EndpointSensivity) Validate() error {
	if s < InsignificantEndpoint || s > SensitiveEndpoint {
		return fmt.Errorf("unknown endpoint sensivity: %d", int(s))
	}
	return nil
}

const sensivityKey = "endpoint.sensivity"

// Marks endpoint with the given sensivity. Panics on unknown value.
func Sensivity(s EndpointSensivity) echo.MiddlewareFunc {
	if err := s.Validate(); err != nil {
		log.Panic("Invalid endpoint sensivity", err.Error(), nil)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(sensivityKey, s)
			return next(ctx)
		}
	}
}

// Falls back to DefaultEndpoint for routes without Sensivity middleware.
func GetSensivity(ctx echo.Context) EndpointSensivity {
	if s, ok := ctx.Get(sensivityKey).(EndpointSensivity); ok {
		return s
	}

	log.Trace("Endpoint sensivity isn't set, assuming "+DefaultEndpoint.String(), request.GetMetadata(ctx))

	return DefaultEndpoint
}
