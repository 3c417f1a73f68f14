package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

func InputFromJson(file string) (Roster, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Roster{}, errors.Wrapf(err, "cannot read roster file %q", file)
	}
	return InputFromBytes(bytes)
}

func InputFromReader(reader io.Reader) (Roster, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		return Roster{}, errors.Wrap(err, "cannot read roster")
	}
	return InputFromBytes(bytes)
}

func InputFromBytes(bytes []byte) (Roster, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Roster{}, errors.Wrap(err, "cannot parse roster json")
	}
	return DecodeRoster(inputJson)
}

// DecodeRoster maps a generic document (as produced by json.Unmarshal) onto a Roster. The result is
// not validated.
func DecodeRoster(input map[string]any) (Roster, error) {
	var roster Roster
	if err := mapstructure.Decode(input, &roster); err != nil {
		return Roster{}, errors.Wrap(err, "cannot decode roster")
	}
	return roster, nil
}
