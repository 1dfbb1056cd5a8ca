package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"5002"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"30"`

	// Admin login
	// petcare hash-password to generate a value
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	LoginMaxAttempts  int    `envconfig:"LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginLockoutMin   int    `envconfig:"LOGIN_LOCKOUT_MIN" default:"15"`
	AdminRedirectPath string `envconfig:"ADMIN_REDIRECT_PATH" default:"/admin"`
	CookieName        string `envconfig:"SESSION_COOKIE_NAME" default:"admin_session"`
	SessionMaxAgeSec  int    `envconfig:"SESSION_MAX_AGE_SEC" default:"86400"` // 1 day
	SecureCookies     bool   `envconfig:"SECURE_COOKIES" default:"false"`

	// Cookie encryption keys (base64 encoded)
	// petcare cookie-keys
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Media
	MediaBackend string `envconfig:"MEDIA_BACKEND" default:"filesystem"` // filesystem or s3
	MediaRoot    string `envconfig:"MEDIA_ROOT" default:"public/images"`
	MediaURLPath string `envconfig:"MEDIA_URL_PATH" default:"/images"`
	S3BucketName string `envconfig:"S3_BUCKET_NAME"`
	S3KeyPrefix  string `envconfig:"S3_KEY_PREFIX" default:"images"`
	MaxUploadMB  int64  `envconfig:"MAX_UPLOAD_MB" default:"20"`

	// Prebuilt client bundle, served when set
	StaticDir string `envconfig:"STATIC_DIR"`
}
