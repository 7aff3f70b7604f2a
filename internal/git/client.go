package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Client is the interface for git operations
type Client interface {
	Clone(url, destPath string) error
	Pull(repoPath string) error
	Fetch(repoPath string) error
	GetCurrentCommit(repoPath string) (string, error)
	GetRemoteCommit(repoPath, branch string) (string, error)
	HasUpdates(repoPath string) (bool, error)
	IsGitRepository(path string) bool
}

// DefaultClient is the default git client implementation
type DefaultClient struct {
	Timeout time.Duration
}

// NewClient creates a new git client
func NewClient() *DefaultClient {
	return &DefaultClient{
		Timeout: 5 * time.Minute,
	}
}

// run executes a git command with the client timeout applied
func (c *DefaultClient) run(args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Clone clones a git repository to the specified path
func (c *DefaultClient) Clone(url, destPath string) error {
	_, stderr, err := c.run("clone", "--depth", "1", url, destPath)
	if err != nil {
		if isAuthError(stderr) {
			return &AuthError{URL: url, Message: stderr}
		}
		return fmt.Errorf("git clone failed: %s", stderr)
	}
	return nil
}

// Pull pulls the latest changes in a git repository
func (c *DefaultClient) Pull(repoPath string) error {
	_, stderr, err := c.run("-C", repoPath, "pull", "--ff-only")
	if err != nil {
		if isAuthError(stderr) {
			return &AuthError{URL: repoPath, Message: stderr}
		}
		return fmt.Errorf("git pull failed: %s", stderr)
	}
	return nil
}

// Fetch fetches changes from remote without merging
func (c *DefaultClient) Fetch(repoPath string) error {
	_, stderr, err := c.run("-C", repoPath, "fetch", "--quiet")
	if err != nil {
		if isAuthError(stderr) {
			return &AuthError{URL: repoPath, Message: stderr}
		}
		return fmt.Errorf("git fetch failed: %s", stderr)
	}
	return nil
}

// GetCurrentCommit returns the current commit SHA
func (c *DefaultClient) GetCurrentCommit(repoPath string) (string, error) {
	stdout, _, err := c.run("-C", repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current commit: %w", err)
	}
	return strings.TrimSpace(stdout), nil
}

// GetRemoteCommit returns the latest commit SHA of a remote branch
func (c *DefaultClient) GetRemoteCommit(repoPath, branch string) (string, error) {
	if branch == "" {
		branch = "origin/HEAD"
	} else {
		branch = "origin/" + branch
	}

	stdout, stderr, err := c.run("-C", repoPath, "rev-parse", branch)
	if err != nil {
		return "", fmt.Errorf("failed to get remote commit: %s", stderr)
	}
	return strings.TrimSpace(stdout), nil
}

// HasUpdates checks if the local repository is behind the remote
func (c *DefaultClient) HasUpdates(repoPath string) (bool, error) {
	if err := c.Fetch(repoPath); err != nil {
		return false, err
	}

	stdout, _, err := c.run("-C", repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return false, fmt.Errorf("failed to get current branch: %w", err)
	}
	branch := strings.TrimSpace(stdout)

	localCommit, err := c.GetCurrentCommit(repoPath)
	if err != nil {
		return false, err
	}

	remoteCommit, err := c.GetRemoteCommit(repoPath, branch)
	if err != nil {
		return false, err
	}

	return localCommit != remoteCommit, nil
}

// IsGitRepository checks if the given path is a git repository
func (c *DefaultClient) IsGitRepository(path string) bool {
	_, _, err := c.run("-C", path, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// AuthError represents a git authentication error
type AuthError struct {
	URL     string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for '%s': %s", e.URL, e.Message)
}

// isAuthError checks if the error message indicates an authentication failure
func isAuthError(msg string) bool {
	authPatterns := []string{
		"Authentication failed",
		"Permission denied",
		"could not read Username",
		"fatal: repository",
		"not found",
		"403",
		"401",
	}

	for _, pattern := range authPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
