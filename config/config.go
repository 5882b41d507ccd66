package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/models"
)

// Defaults for the Ventanilla deployment
const (
	DefaultTimeout = 15 * time.Second
	DefaultRetries = 3
	DefaultLat     = -11.875
	DefaultLng     = -77.125
	DefaultZoom    = 14
	DefaultTileURL = "https://{s}.basemaps.cartocdn.com/rastertiles/voyager/{z}/{x}/{y}{r}.png"

	defaultLocateWait = 10 * time.Second
)

// Config holds the project config values
type Config struct {
	Port        string
	UpstreamURL string
	Timeout     time.Duration
	MaxRetries  int
	DefaultLat  float64
	DefaultLng  float64
	DefaultZoom int
	TileURL     string
	LocateWait  time.Duration
	JWTSecret   string
	DigestTo    string
	DigestFrom  string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, _ := setLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:        os.Getenv("PORT"),
		UpstreamURL: os.Getenv("UPSTREAM_URL"),
		Timeout:     envDuration("API_TIMEOUT_MS", DefaultTimeout),
		MaxRetries:  envInt("MAX_RETRIES", DefaultRetries),
		DefaultLat:  envFloat("DEFAULT_LAT", DefaultLat),
		DefaultLng:  envFloat("DEFAULT_LNG", DefaultLng),
		DefaultZoom: envInt("DEFAULT_ZOOM", DefaultZoom),
		TileURL:     envString("TILE_URL", DefaultTileURL),
		LocateWait:  envDuration("LOCATE_TIMEOUT_MS", defaultLocateWait),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DigestTo:    os.Getenv("DIGEST_TO"),
		DigestFrom:  os.Getenv("DIGEST_FROM"),
	}

}

// DefaultCenter returns the configured fallback map center
func (c *Config) DefaultCenter() models.Coordinate {
	return models.Coordinate{Lat: c.DefaultLat, Lng: c.DefaultLng}
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		zap.S().Warnf("invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		zap.S().Warnf("invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}

// envDuration reads a millisecond value, matching the original field
// deployment convention
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		zap.S().Warnf("invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errText}})
	w.Write(b)
}
