package httpapi

import "github.com/go-chi/cors"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
// Base64 images inflate uploads by a third, so the default is 10 MiB.
var maxBodyBytes int64 = 10 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 10 << 20
		return
	}
	maxBodyBytes = n
}

// maxImagePixels bounds width*height of a decoded image. Compressed formats
// can expand a small body into a huge raster, so the header is checked first.
var maxImagePixels int64 = 40_000_000

// SetMaxImagePixels sets the decoded-size budget. Non-positive restores the default.
func SetMaxImagePixels(n int64) {
	if n <= 0 {
		maxImagePixels = 40_000_000
		return
	}
	maxImagePixels = n
}

// imageRoot confines path predictions. Empty disables the endpoint.
var imageRoot string

// SetImageRoot enables POST /api/models/predict/path for files under dir.
func SetImageRoot(dir string) { imageRoot = dir }

// CORS configuration. The browser demo calls the API cross-origin, so CORS
// is on for every origin unless configured otherwise.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"Content-Type", "X-Request-Id", "X-Log-Level"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty method
// or header lists keep the defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	if len(methods) > 0 {
		corsAllowedMethods = append([]string(nil), methods...)
	}
	if len(headers) > 0 {
		corsAllowedHeaders = append([]string(nil), headers...)
	}
}

func corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: corsAllowedMethods,
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}
