package escrow

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

const confPkg = "escrow"

// Configuration holds the settings of the escrow extension.
type Configuration struct {
	Metadata *weave.Metadata `json:"metadata"`
	// MaxParticipants limits the size of an escrow group.
	MaxParticipants int32 `json:"max_participants"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Marshal implements weave.Persistent.
func (c *Configuration) Marshal() ([]byte, error) {
	return weave.MarshalBinary(c)
}

// Unmarshal implements weave.Persistent.
func (c *Configuration) Unmarshal(raw []byte) error {
	return weave.UnmarshalBinary(raw, c)
}

// Validate implements weave.Validater.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if c.MaxParticipants <= 0 {
		errs = errors.Append(errs, errors.Field("MaxParticipants", errors.ErrInput, "must be positive"))
	}
	return errs
}

// loadConf returns the stored configuration. When none was saved, a nil
// configuration is returned and no limits apply.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// SaveConf stores the escrow configuration.
func SaveConf(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}
