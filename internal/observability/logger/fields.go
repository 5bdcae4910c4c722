package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP fields.

// RequestID creates a field for the request ID.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method creates a field for the HTTP method.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path creates a field for the request path.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status creates a field for the HTTP status code.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration creates a field for the request duration.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// ClientIP creates a field for the client IP.
func ClientIP(v string) zap.Field {
	return zap.String("client_ip", v)
}

// Domain fields.

// AccountID creates a field for an account identifier.
func AccountID(v string) zap.Field {
	return zap.String("account_id", v)
}

// PostID creates a field for a post identifier.
func PostID(v string) zap.Field {
	return zap.String("post_id", v)
}

// Email creates a field for an email (use with care in prod).
func Email(v string) zap.Field {
	return zap.String("email", v)
}

// Count creates a field for a result count.
func Count(v int64) zap.Field {
	return zap.Int64("count", v)
}

// System fields.

// Component creates a field for the component/module.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op creates a field for the current operation.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Layer creates a field for the layer (controller, service, repository).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Driver creates a field for the storage driver name.
func Driver(v string) zap.Field {
	return zap.String("driver", v)
}

// Err creates a field for an error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Any creates a field with an arbitrary value.
func Any(key string, v any) zap.Field {
	return zap.Any(key, v)
}
