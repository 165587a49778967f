// Package session unlocks protected firmware settings by writing an
// admin password to a password slot for the duration of a change.
package session

import (
	"github.com/rs/zerolog/log"

	"github.com/sigreer/biosctl/internal/firmware"
	"github.com/sigreer/biosctl/internal/sysfs"
)

// DefaultAuthentication is the password slot used to unlock settings.
const DefaultAuthentication = "Admin"

const passwordFile = "current_password"

// Session holds a written password until Close clears it.
type Session struct {
	dir    string
	closed bool
}

// Unlock writes password to the current_password file of the named
// password slot of dev.
func Unlock(dev *firmware.Device, auth, password string) (*Session, error) {
	if !privileged() {
		log.Warn().Msg("not running as root, the firmware will likely refuse the password")
	}

	dir := dev.AuthenticationPath(auth)
	log.Debug().Str("path", dir).Msg("writing admin password")

	if err := sysfs.WriteValue(dir, passwordFile, password); err != nil {
		return nil, err
	}

	return &Session{dir: dir}, nil
}

// Close clears the password. Calling it more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	log.Debug().Str("path", s.dir).Msg("clearing admin password")
	if err := sysfs.WriteValue(s.dir, passwordFile, ""); err != nil {
		return err
	}

	s.closed = true
	return nil
}
