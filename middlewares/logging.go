package middlewares

import (
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger instances for different log levels
var (
	AuditLogger *log.Logger
	DebugLogger *log.Logger
	ErrorLogger *log.Logger
)

// initLoggers initializes loggers for audit, debug and error logs.
func initLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		log.Fatalf("Could not create log directory %s: %v", logDir, err)
	}

	AuditLogger = log.New(newRotatingLog(logDir, "audit.log"), "AUDIT: ", log.LstdFlags)
	DebugLogger = log.New(newRotatingLog(logDir, "debug.log"), "DEBUG: ", log.LstdFlags)
	ErrorLogger = log.New(newRotatingLog(logDir, "error.log"), "ERROR: ", log.LstdFlags)
}

// newRotatingLog sets up Lumberjack rotation for one log file.
func newRotatingLog(dir, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    1,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

func init() {
	initLoggers()
}

// LoggingMiddleware logs audit information for every request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timestamp := time.Now().Format(time.RFC3339)
		method := r.Method
		url := r.URL.String()
		userAgent := r.UserAgent()
		ip := getIPAddress(r)

		// Log as an audit log entry
		AuditLogger.Printf("Time: %s | Method: %s | URL: %s | User-Agent: %s | IP: %s", timestamp, method, url, userAgent, ip)

		next.ServeHTTP(w, r)
	})
}

func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header for proxies
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	// Fallback to RemoteAddr (trim port)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
