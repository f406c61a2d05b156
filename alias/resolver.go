// Package alias maps symbolic path tokens like @base to absolute paths
package alias

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Base is the alias token for the project base directory
const Base = "@base"

// ErrUnknownAlias is returned for @-prefixed paths without a registered alias
var ErrUnknownAlias = errors.New("unknown path alias")

type Resolver struct {
	aliases map[string]string
}

// New creates a resolver with @base pointing at basePath,
// an empty basePath falls back to the working directory.
func New(basePath string) (*Resolver, error) {
	r := &Resolver{aliases: make(map[string]string)}
	if basePath == "" {
		basePath = "."
	}
	if err := r.Set(Base, basePath); err != nil {
		return nil, err
	}
	return r, nil
}

// Set registers (or replaces) an alias, the target is made absolute
func (r *Resolver) Set(name string, target string) error {
	if !strings.HasPrefix(name, "@") || strings.ContainsAny(name, `/\`) {
		return errors.Newf("invalid alias name %q", name)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return errors.Wrapf(err, "unable to resolve alias target %q", target)
	}
	r.aliases[name] = abs
	return nil
}

// Resolve replaces a leading alias token with its target
func (r *Resolver) Resolve(symbolicPath string) (string, error) {
	if !strings.HasPrefix(symbolicPath, "@") {
		return filepath.Clean(symbolicPath), nil
	}
	name, rest := symbolicPath, ""
	if i := strings.IndexAny(symbolicPath, `/\`); i >= 0 {
		name, rest = symbolicPath[:i], symbolicPath[i+1:]
	}
	target, ok := r.aliases[name]
	if !ok {
		return "", errors.WithHint(
			errors.Wrapf(ErrUnknownAlias, "resolving %q", symbolicPath),
			"only "+Base+" is registered by default",
		)
	}
	if rest == "" {
		return target, nil
	}
	return filepath.Join(target, filepath.FromSlash(rest)), nil
}
