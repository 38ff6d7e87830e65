package gconf

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

type myConfig struct {
	Number int64  `json:"number"`
	Text   string `json:"text"`
}

func (c *myConfig) Marshal() ([]byte, error) {
	return weave.MarshalBinary(c)
}

func (c *myConfig) Unmarshal(raw []byte) error {
	return weave.UnmarshalBinary(raw, c)
}

func (c *myConfig) Validate() error {
	if c.Number < 1 {
		return errors.Wrap(errors.ErrInput, "number must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &myConfig{Number: 8, Text: "escrow"},
		},
		"invalid configuration cannot be saved": {
			Conf:        &myConfig{Number: 0},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &myConfig{}))
				return
			}

			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var conf myConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &conf))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    *myConfig
	}{
		"configuration loaded from genesis": {
			Genesis: `{"conf": {"mypkg": {"number": 3, "text": "x"}}}`,
			Want:    &myConfig{Number: 3, Text: "x"},
		},
		"missing package configuration": {
			Genesis: `{"conf": {"other": {"number": 3}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"number": -1}}}`,
			WantErr: errors.ErrInput,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": {"number": "three"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			opts, err := weave.ParseOptions([]byte(tc.Genesis))
			assert.Nil(t, err)

			db := store.MemStore()
			err = InitConfig(db, opts, "mypkg", &myConfig{})
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, &got)
		})
	}
}
