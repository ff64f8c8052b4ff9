package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bnema/splice/internal/adapter/export"
	"github.com/bnema/splice/internal/domain"
)

const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"

	ProbeFFprobe = "ffprobe"
	ProbeVidio   = "vidio"
)

type Config struct {
	FFmpegPath        string               `yaml:"ffmpeg_path"`
	FFprobePath       string               `yaml:"ffprobe_path"`
	ProbeBackend      string               `yaml:"probe_backend"`
	ProbePolicy       domain.ProbePolicy   `yaml:"probe_policy"`
	NormalizeWeight   float64              `yaml:"normalize_weight"`
	PollInterval      time.Duration        `yaml:"poll_interval"`
	WorkDir           string               `yaml:"work_dir"`
	KeepIntermediates bool                 `yaml:"keep_intermediates"`
	DataDir           string               `yaml:"data_dir"`
	Store             string               `yaml:"store"`
	DurationCache     bool                 `yaml:"duration_cache"`
	Profile           domain.TargetProfile `yaml:"profile"`
	Server            ServerConfig         `yaml:"server"`
	Export            export.Config        `yaml:"export"`
	Verbose           bool                 `yaml:"verbose"`
}

type ServerConfig struct {
	// Host is the listen address. Empty binds all interfaces when an API key
	// is configured and loopback only otherwise.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// APIKeyHash is a bcrypt hash of the shared API key. Empty disables auth.
	APIKeyHash string `yaml:"api_key_hash"`
}

// ListenAddr returns host:port for the HTTP server. An unauthenticated
// server without an explicit host only listens on loopback.
func (s ServerConfig) ListenAddr() string {
	host := s.Host
	if host == "" && s.APIKeyHash == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(s.Port))
}

// Load reads the optional YAML file at path, applies environment overrides and
// defaults, then validates the result. An empty path falls back to
// SPLICE_CONFIG and then to no file at all.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SPLICE_CONFIG")
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if len(bytes.TrimSpace(data)) > 0 {
			decoder := yaml.NewDecoder(bytes.NewReader(data))
			decoder.KnownFields(true)
			if err := decoder.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("decode config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.FFmpegPath, "SPLICE_FFMPEG_PATH", "FFMPEG_PATH")
	setString(&c.FFprobePath, "SPLICE_FFPROBE_PATH", "FFPROBE_PATH")
	setString(&c.ProbeBackend, "SPLICE_PROBE_BACKEND")
	setString(&c.WorkDir, "SPLICE_WORK_DIR")
	setString(&c.DataDir, "SPLICE_DATA_DIR", "DATA_DIR")
	setString(&c.Store, "SPLICE_STORE")
	setString(&c.Server.APIKeyHash, "SPLICE_API_KEY_HASH")
	setString(&c.Server.Host, "SPLICE_HOST")

	setString(&c.Export.S3.Region, "SPLICE_S3_REGION", "AWS_REGION")
	setString(&c.Export.S3.AccessKey, "SPLICE_S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	setString(&c.Export.S3.SecretKey, "SPLICE_S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	setString(&c.Export.S3.Endpoint, "SPLICE_S3_ENDPOINT")
	setString(&c.Export.GCS.CredentialsFile, "SPLICE_GCS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&c.Export.SFTP.Password, "SPLICE_SFTP_PASSWORD")
	setString(&c.Export.SFTP.PrivateKeyFile, "SPLICE_SFTP_PRIVATE_KEY_FILE")
	setString(&c.Export.SFTP.KnownHostsFile, "SPLICE_SFTP_KNOWN_HOSTS_FILE")

	if v := getEnv("SPLICE_PROBE_POLICY", ""); v != "" {
		c.ProbePolicy = domain.ProbePolicy(v)
	}
	if v := getEnv("SPLICE_NORMALIZE_WEIGHT", ""); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SPLICE_NORMALIZE_WEIGHT: %w", err)
		}
		c.NormalizeWeight = w
	}
	if v := getEnv("SPLICE_POLL_INTERVAL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SPLICE_POLL_INTERVAL: %w", err)
		}
		c.PollInterval = d
	}
	if v := getEnv("PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Server.Port = port
	}
	for key, dst := range map[string]*bool{
		"SPLICE_KEEP_INTERMEDIATES": &c.KeepIntermediates,
		"SPLICE_DURATION_CACHE":     &c.DurationCache,
		"SPLICE_VERBOSE":            &c.Verbose,
	} {
		if v := getEnv(key, ""); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
	if c.ProbeBackend == "" {
		c.ProbeBackend = ProbeFFprobe
	}
	if c.ProbePolicy == "" {
		c.ProbePolicy = domain.ProbePolicyDegrade
	}
	if c.NormalizeWeight == 0 {
		c.NormalizeWeight = 0.8
	}
	if c.PollInterval == 0 {
		c.PollInterval = time.Second
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.Store == "" {
		c.Store = StoreSQLite
	}
	if c.Server.Port == 0 {
		c.Server.Port = 7891
	}
	c.Profile = withProfileDefaults(c.Profile)
}

// withProfileDefaults fills every unset profile field from the default
// profile so a config file can override a single setting.
func withProfileDefaults(p domain.TargetProfile) domain.TargetProfile {
	d := domain.DefaultProfile()
	if p.Width == 0 {
		p.Width = d.Width
	}
	if p.Height == 0 {
		p.Height = d.Height
	}
	if p.FPS == 0 {
		p.FPS = d.FPS
	}
	if p.VideoCodec == "" {
		p.VideoCodec = d.VideoCodec
	}
	if p.CRF == 0 {
		p.CRF = d.CRF
	}
	if p.Preset == "" {
		p.Preset = d.Preset
	}
	if p.PixFmt == "" {
		p.PixFmt = d.PixFmt
	}
	if p.AudioCodec == "" {
		p.AudioCodec = d.AudioCodec
	}
	if p.AudioRate == 0 {
		p.AudioRate = d.AudioRate
	}
	if p.AudioChannels == 0 {
		p.AudioChannels = d.AudioChannels
	}
	if p.AudioBitrate == "" {
		p.AudioBitrate = d.AudioBitrate
	}
	if p.Container == "" {
		p.Container = d.Container
	}
	return p
}

func (c *Config) Validate() error {
	var errs []error
	if c.NormalizeWeight <= 0 || c.NormalizeWeight >= 1 {
		errs = append(errs, fmt.Errorf("normalize_weight must be between 0 and 1 (exclusive), got %g", c.NormalizeWeight))
	}
	if c.PollInterval < 10*time.Millisecond {
		errs = append(errs, fmt.Errorf("poll_interval must be at least 10ms, got %s", c.PollInterval))
	}
	switch c.ProbePolicy {
	case domain.ProbePolicyDegrade, domain.ProbePolicyStrict:
	default:
		errs = append(errs, fmt.Errorf("probe_policy must be %q or %q, got %q", domain.ProbePolicyDegrade, domain.ProbePolicyStrict, c.ProbePolicy))
	}
	switch c.ProbeBackend {
	case ProbeFFprobe, ProbeVidio:
	default:
		errs = append(errs, fmt.Errorf("probe_backend must be %q or %q, got %q", ProbeFFprobe, ProbeVidio, c.ProbeBackend))
	}
	switch c.Store {
	case StoreSQLite, StoreJSON:
	default:
		errs = append(errs, fmt.Errorf("store must be %q or %q, got %q", StoreSQLite, StoreJSON, c.Store))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.APIKeyHash != "" && !strings.HasPrefix(c.Server.APIKeyHash, "$2") {
		errs = append(errs, errors.New("server.api_key_hash must be a bcrypt hash"))
	}
	if err := c.Profile.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "splice")
	}
	return ".splice"
}

func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
