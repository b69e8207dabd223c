package usecase

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidRepositoryRef is returned for input that names no repository.
var ErrInvalidRepositoryRef = errors.New("Invalid GitHub repository URL or format. Use: owner/repo or full GitHub URL")

var (
	repoURLPattern   = regexp.MustCompile(`github\.com/([^/?#]+)/([^/?#]+)`)
	repoShortPattern = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)
)

// ParseRepositoryRef extracts owner and repository name from "owner/repo" or
// a GitHub URL. A trailing ".git" is dropped.
func ParseRepositoryRef(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)
	m := repoURLPattern.FindStringSubmatch(ref)
	if m == nil {
		m = repoShortPattern.FindStringSubmatch(ref)
	}
	if m == nil {
		return "", "", ErrInvalidRepositoryRef
	}
	owner, repo = m[1], strings.TrimSuffix(m[2], ".git")
	if owner == "" || repo == "" {
		return "", "", ErrInvalidRepositoryRef
	}
	return owner, repo, nil
}
