package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

var repoPartPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// RepositoryRef identifies a repository on the hosting service
type RepositoryRef struct {
	Owner string
	Name  string
}

func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses an "owner/name" slug. Both parts must be non-empty
// and restricted to [A-Za-z0-9_.-].
func ParseRepository(s string) (RepositoryRef, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(name, "/") {
		return RepositoryRef{}, goerr.New("repository must be in owner/name form",
			goerr.V("repository", s), goerr.T(types.ErrTagBadInput))
	}

	if !repoPartPattern.MatchString(owner) || !repoPartPattern.MatchString(name) {
		return RepositoryRef{}, goerr.New("repository contains invalid characters",
			goerr.V("repository", s), goerr.T(types.ErrTagBadInput))
	}

	return RepositoryRef{Owner: owner, Name: name}, nil
}

// ParseNumericID parses a decimal identifier such as a workflow run ID or
// release ID. Only digit characters are accepted: no sign, no spaces, no
// empty string.
func ParseNumericID(s string) (int64, error) {
	if s == "" {
		return 0, goerr.New("numeric ID must not be empty", goerr.T(types.ErrTagBadInput))
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, goerr.New("numeric ID must contain only digits",
				goerr.V("id", s), goerr.T(types.ErrTagBadInput))
		}
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "numeric ID out of range",
			goerr.V("id", s), goerr.T(types.ErrTagBadInput))
	}

	return id, nil
}
