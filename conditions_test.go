package weave_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond     weave.Condition
		wantErr  *errors.Error
		wantExt  string
		wantType string
		wantData []byte
	}{
		"valid condition": {
			cond:     weave.NewCondition("escrow", "seq", []byte{0, 0, 1}),
			wantExt:  "escrow",
			wantType: "seq",
			wantData: []byte{0, 0, 1},
		},
		"data may contain newlines": {
			cond:     weave.NewCondition("sigs", "ed25519", []byte("a\nb")),
			wantExt:  "sigs",
			wantType: "ed25519",
			wantData: []byte("a\nb"),
		},
		"extension too short": {
			cond:    weave.NewCondition("a", "seq", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"missing data": {
			cond:    weave.Condition("escrow/seq/"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if !tc.wantErr.Is(tc.cond.Validate()) {
				t.Fatalf("validate and parse disagree")
			}
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantType, typ)
			assert.Equal(t, tc.wantData, data)
		})
	}
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition weave.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: weave.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got weave.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   weave.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   weave.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func TestParseConditionRoundTrip(t *testing.T) {
	conds := []weave.Condition{
		weave.NewCondition("escrow", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 7}),
		weave.NewCondition("test", "seq", []byte("with / slash")),
	}
	for _, c := range conds {
		got, err := weave.ParseCondition(c.String())
		require.NoError(t, err)
		assert.True(t, c.Equals(got), "got %q", got)
		assert.Equal(t, c.Address(), got.Address())
	}
}
