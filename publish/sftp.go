// Package publish delivers the cleaned CSV files to a remote SFTP inbox.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"campaign-cleaner/config"
	"campaign-cleaner/utils"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const dialTimeout = 20 * time.Second

// ErrMissingCredentials is returned when host, user or password is empty
var ErrMissingCredentials = errors.New("sftp: missing SFTP_HOST / SFTP_USER / SFTP_PASS")

// SFTPUploader copies local files into one remote directory
type SFTPUploader struct {
	host       string
	port       int
	user       string
	pass       string
	remoteDir  string
	knownHosts string
	maxRetries int
	logger     *utils.Logger
}

// NewSFTPUploader creates a new SFTPUploader from the SFTP_* settings
func NewSFTPUploader(cfg *config.Config, logger *utils.Logger) *SFTPUploader {
	return &SFTPUploader{
		host:       cfg.SFTPHost,
		port:       cfg.SFTPPort,
		user:       cfg.SFTPUser,
		pass:       cfg.SFTPPass,
		remoteDir:  cfg.SFTPDir,
		knownHosts: cfg.SFTPKnownHosts,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// UploadFiles uploads every path under its base name. A failed attempt is
// retried as a whole, over a fresh connection.
func (u *SFTPUploader) UploadFiles(ctx context.Context, paths []string) error {
	if u.host == "" || u.user == "" || u.pass == "" {
		return ErrMissingCredentials
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("sftp: local file: %w", err)
		}
	}

	return utils.RetryWithBackoff(ctx, u.maxRetries, func(ctx context.Context) error {
		return u.upload(ctx, paths)
	}, u.logger)
}

func (u *SFTPUploader) upload(ctx context.Context, paths []string) error {
	sshClient, err := u.dial(ctx)
	if err != nil {
		return err
	}
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer client.Close()

	if err := client.MkdirAll(u.remoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", u.remoteDir, err)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		remote := path.Join(u.remoteDir, filepath.Base(p))
		if err := putFile(client, p, remote); err != nil {
			return err
		}
		u.logger.Info("Uploaded %s to %s:%s", p, u.host, remote)
	}
	return nil
}

// dial opens the SSH connection, giving up when ctx is done
func (u *SFTPUploader) dial(ctx context.Context) (*ssh.Client, error) {
	callback, err := u.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            u.user,
		Auth:            []ssh.AuthMethod{ssh.Password(u.pass)},
		HostKeyCallback: callback,
		Timeout:         dialTimeout,
	}
	addr := fmt.Sprintf("%s:%d", u.host, u.port)

	type dialResult struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialResult, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialResult{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		// close the connection if the dial still completes
		go func() {
			if r := <-ch; r.client != nil {
				r.client.Close()
			}
		}()
		return nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("sftp: dial %s: %w", addr, r.err)
		}
		return r.client, nil
	}
}

func (u *SFTPUploader) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if u.knownHosts == "" {
		u.logger.Warn("SFTP_KNOWN_HOSTS not set; host key of %s is not verified", u.host)
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(u.knownHosts)
	if err != nil {
		return nil, fmt.Errorf("sftp: known hosts %s: %w", u.knownHosts, err)
	}
	return cb, nil
}

// putFile writes to a temporary remote name first so readers of the inbox
// never see a partial file
func putFile(client *sftp.Client, local, remote string) error {
	src, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	tmp := remote + ".part"
	dst, err := client.Create(tmp)
	if err != nil {
		return fmt.Errorf("sftp: create %s: %w", tmp, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = client.Remove(tmp)
		return fmt.Errorf("sftp: upload %s: %w", local, err)
	}
	if err := dst.Close(); err != nil {
		_ = client.Remove(tmp)
		return fmt.Errorf("sftp: close %s: %w", tmp, err)
	}

	if err := client.PosixRename(tmp, remote); err != nil {
		// server without posix-rename: replace by hand
		_ = client.Remove(remote)
		if err := client.Rename(tmp, remote); err != nil {
			return fmt.Errorf("sftp: rename %s: %w", tmp, err)
		}
	}
	return nil
}
