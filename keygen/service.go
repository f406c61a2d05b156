package keygen

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/eisenwinter/appkey/config"
	"github.com/eisenwinter/appkey/console"
	"github.com/eisenwinter/appkey/envfile"
	"github.com/eisenwinter/appkey/generator"
	"github.com/eisenwinter/appkey/sanitize"
	"go.uber.org/zap"
)

// KeyName is the environment variable holding the application key
const KeyName = "APP_KEY"

// ErrRandomSource indicates no key could be generated
var ErrRandomSource = generator.ErrRandomSource

// ErrFileIO indicates the environment file could not be read or written
var ErrFileIO = envfile.ErrFileIO

const replaceConfirmation = "APP_KEY exist! This command will replace current key!\nDo you really wish to run this command?"

type KeyGenerator struct {
	log     *zap.Logger
	cfg     *config.AppConfiguration
	keys    KeySource
	paths   PathResolver
	confirm Confirmer
	out     Writer
	force   bool
}

func New(log *zap.Logger,
	cfg *config.AppConfiguration,
	keys KeySource,
	paths PathResolver,
	confirm Confirmer,
	out Writer) *KeyGenerator {
	return &KeyGenerator{
		log:     log,
		cfg:     cfg,
		keys:    keys,
		paths:   paths,
		confirm: confirm,
		out:     out,
	}
}

// WithForce skips the replace confirmation if force is set
func (g *KeyGenerator) WithForce(force bool) *KeyGenerator {
	g.force = force
	return g
}

func (g *KeyGenerator) GenerateKey() (string, error) {
	key, err := g.keys.CreateAppKey()
	if err != nil {
		if !errors.Is(err, ErrRandomSource) {
			err = errors.Mark(err, ErrRandomSource)
		}
		return "", err
	}
	return key, nil
}

// Run generates a key and either only prints it (showOnly) or stores it
// in the environment file. A declined confirmation is not an error.
func (g *KeyGenerator) Run(showOnly bool) error {
	key, err := g.GenerateKey()
	if err != nil {
		return err
	}
	if showOnly {
		return g.out.WriteLine(key, console.Comment)
	}
	written, err := g.SetKeyInEnvironmentFile(key)
	if err != nil {
		return err
	}
	if !written {
		g.log.Debug("key replacement declined")
		return nil
	}
	return g.out.WriteLine(fmt.Sprintf("Application key [%s] set successfully.", key), console.Info)
}

// SetKeyInEnvironmentFile asks before replacing an existing key and
// reports whether the file was written.
func (g *KeyGenerator) SetKeyInEnvironmentFile(newKey string) (bool, error) {
	currentKey := g.cfg.Key
	if currentKey != "" {
		if !g.force {
			ok, err := g.confirm.Confirm(replaceConfirmation, false)
			if err != nil {
				return false, errors.Wrap(err, "unable to confirm key replacement")
			}
			if !ok {
				return false, nil
			}
		}
		msg := fmt.Sprintf("Old APP_KEY is: %s, please backup if you need.", currentKey)
		if err := g.out.WriteLine(msg, console.Warning); err != nil {
			return false, err
		}
	}
	if err := g.WriteNewEnvironmentFileWith(newKey); err != nil {
		return false, err
	}
	return true, nil
}

// WriteNewEnvironmentFileWith replaces the first APP_KEY=<current key> line.
// If that line does not exist the file is written back unchanged.
func (g *KeyGenerator) WriteNewEnvironmentFileWith(newKey string) error {
	path, err := g.paths.Resolve(g.cfg.EnvFileAlias())
	if err != nil {
		return err
	}
	content, err := envfile.Read(path)
	if err != nil {
		return err
	}
	replaced, matched := envfile.ReplaceFirst(content, KeyName, g.cfg.Key, newKey)
	if !matched {
		g.log.Warn("APP_KEY line not replaced",
			sanitize.PathField("file", path),
			zap.Bool("current_key_set", g.cfg.Key != ""))
	}
	if err := envfile.WriteAtomic(path, replaced); err != nil {
		return err
	}
	g.log.Debug("environment file written", sanitize.PathField("file", path), zap.Bool("replaced", matched))
	if matched {
		g.verify(path, replaced, newKey)
	}
	return nil
}

func (g *KeyGenerator) verify(path string, content string, newKey string) {
	stored, found, err := envfile.Lookup(content, KeyName)
	if err != nil {
		g.log.Warn("unable to parse written environment file", sanitize.PathField("file", path), zap.Error(err))
		return
	}
	if !found || stored != newKey {
		g.log.Warn("APP_KEY in environment file differs from the generated key",
			sanitize.PathField("file", path))
	}
}
