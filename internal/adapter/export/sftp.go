package export

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func (e *Exporter) sshConfig(user string) (*ssh.ClientConfig, error) {
	c := e.cfg.SFTP

	var auths []ssh.AuthMethod
	if c.PrivateKeyFile != "" {
		keyBytes, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}
	if c.Password != "" {
		auths = append(auths, ssh.Password(c.Password))
	}

	hostKey := ssh.InsecureIgnoreHostKey()
	if c.KnownHostsFile != "" {
		cb, err := knownhosts.New(c.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("load known hosts: %w", err)
		}
		hostKey = cb
	}

	return &ssh.ClientConfig{
		User:            user,
		Auth:            auths,
		HostKeyCallback: hostKey,
		Timeout:         10 * time.Second,
	}, nil
}

func (e *Exporter) uploadSFTP(ctx context.Context, f *os.File, t Target) error {
	config, err := e.sshConfig(t.User)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(t.Host, t.Port)
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial tcp %s: %w", addr, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	sshClient := ssh.NewClient(clientConn, chans, reqs)
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("create sftp client: %w", err)
	}
	defer client.Close()

	if err := mkdirAllSFTP(client, path.Dir(t.Path)); err != nil {
		return fmt.Errorf("ensure remote dir: %w", err)
	}

	remote, err := client.Create(t.Path)
	if err != nil {
		return fmt.Errorf("create remote file %s: %w", t.Path, err)
	}
	defer remote.Close()

	if _, err := io.Copy(remote, f); err != nil {
		return fmt.Errorf("copy to remote file %s: %w", t.Path, err)
	}
	return nil
}

// mkdirAllSFTP creates each missing segment of dir on the server.
func mkdirAllSFTP(client *sftp.Client, dir string) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}

	cur := ""
	if strings.HasPrefix(dir, "/") {
		cur = "/"
	}
	for _, p := range strings.Split(dir, "/") {
		if p == "" {
			continue
		}
		cur = path.Join(cur, p)
		if _, err := client.Stat(cur); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("stat %s: %w", cur, err)
			}
			if err := client.Mkdir(cur); err != nil {
				return fmt.Errorf("mkdir %s: %w", cur, err)
			}
		}
	}
	return nil
}
