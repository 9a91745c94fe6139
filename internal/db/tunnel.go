package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/aptmap/backend/internal/config"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

var ErrTunnelConfig = errors.New("ssh tunnel config invalid")

// Tunnel forwards database connections through an SSH bastion. The database
// address in the DSN is dialed from the bastion side.
type Tunnel struct {
	client *ssh.Client
}

func NewTunnel(cfg config.SSHConfig, log *slog.Logger) (*Tunnel, error) {
	if cfg.User == "" {
		return nil, fmt.Errorf("%w: SSH_USER is required", ErrTunnelConfig)
	}

	var methods []ssh.AuthMethod
	if cfg.PrivateKeyPath != "" {
		key, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read private key: %v", ErrTunnelConfig, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: parse private key: %v", ErrTunnelConfig, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: SSH_PASSWORD or SSH_PRIVATE_KEY_PATH is required", ErrTunnelConfig)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHostsPath != "" {
		cb, err := knownhosts.New(cfg.KnownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: known_hosts: %v", ErrTunnelConfig, err)
		}
		hostKeyCallback = cb
	} else {
		log.Warn("ssh.tunnel.host_key_unverified", "host", cfg.Host)
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            methods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", addr, err)
	}

	log.Info("ssh.tunnel.open", "addr", addr, "user", cfg.User)
	return &Tunnel{client: client}, nil
}

// DialContext matches pgconn.DialFunc.
func (t *Tunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return t.client.DialContext(ctx, network, addr)
}

func (t *Tunnel) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
