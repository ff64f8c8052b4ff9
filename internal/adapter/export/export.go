// Package export uploads finished merges to object storage, SFTP servers or
// another local path, selected by the target URL scheme.
package export

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

type S3Config struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
}

type GCSConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

type SFTPConfig struct {
	Password       string `yaml:"password"`
	PrivateKeyFile string `yaml:"private_key_file"`
	KnownHostsFile string `yaml:"known_hosts_file"`
}

type Config struct {
	S3   S3Config   `yaml:"s3"`
	GCS  GCSConfig  `yaml:"gcs"`
	SFTP SFTPConfig `yaml:"sftp"`
}

// Target is a parsed export URL such as s3://bucket/key or
// sftp://user@host:22/path.
type Target struct {
	Scheme string
	Host   string
	Port   string
	User   string
	Path   string
}

func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid export target: %w", err)
	}
	t := Target{
		Scheme: strings.ToLower(u.Scheme),
		Host:   u.Hostname(),
		Port:   u.Port(),
		Path:   u.Path,
	}
	if u.User != nil {
		t.User = u.User.Username()
	}

	switch t.Scheme {
	case "s3", "gs":
		t.Path = strings.TrimPrefix(t.Path, "/")
		if t.Host == "" || t.Path == "" {
			return Target{}, fmt.Errorf("export target %q needs a bucket and an object key", raw)
		}
	case "sftp":
		if t.Host == "" || t.User == "" || t.Path == "" || t.Path == "/" {
			return Target{}, fmt.Errorf("export target %q needs user@host and a remote path", raw)
		}
		if t.Port == "" {
			t.Port = "22"
		}
	case "file":
		if t.Path == "" {
			return Target{}, fmt.Errorf("export target %q needs a path", raw)
		}
	default:
		return Target{}, fmt.Errorf("unsupported export scheme %q", u.Scheme)
	}
	return t, nil
}

func (t Target) String() string {
	switch t.Scheme {
	case "sftp":
		return fmt.Sprintf("sftp://%s@%s:%s%s", t.User, t.Host, t.Port, t.Path)
	case "file":
		return "file://" + t.Path
	default:
		return fmt.Sprintf("%s://%s/%s", t.Scheme, t.Host, t.Path)
	}
}

type uploader func(ctx context.Context, f *os.File, t Target) error

type Exporter struct {
	cfg       Config
	uploaders map[string]uploader
}

func New(cfg Config) *Exporter {
	e := &Exporter{cfg: cfg}
	e.uploaders = map[string]uploader{
		"s3":   e.uploadS3,
		"gs":   e.uploadGCS,
		"sftp": e.uploadSFTP,
		"file": copyFile,
	}
	return e
}

// Check rejects targets that are malformed or lack the credentials they need.
func (e *Exporter) Check(raw string) error {
	t, err := ParseTarget(raw)
	if err != nil {
		return err
	}
	switch t.Scheme {
	case "s3":
		if e.cfg.S3.Region == "" || e.cfg.S3.AccessKey == "" || e.cfg.S3.SecretKey == "" {
			return fmt.Errorf("s3 export needs region, access_key and secret_key")
		}
	case "sftp":
		if e.cfg.SFTP.Password == "" && e.cfg.SFTP.PrivateKeyFile == "" {
			return fmt.Errorf("sftp export needs a password or private_key_file")
		}
	}
	return nil
}

func (e *Exporter) Export(ctx context.Context, localPath, raw string) (string, error) {
	if err := e.Check(raw); err != nil {
		return "", err
	}
	t, _ := ParseTarget(raw)

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat output: %w", err)
	}

	if err := e.uploaders[t.Scheme](ctx, f, t); err != nil {
		return "", err
	}
	logger.Info.Printf("exported %s (%d bytes) to %s", logger.SanitizeForLog(localPath), info.Size(), t)
	return t.String(), nil
}

var _ port.Exporter = (*Exporter)(nil)
