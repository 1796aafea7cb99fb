package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CreatePersonRequest accepts either a bare JSON string or {"name": "..."}.
type CreatePersonRequest struct {
	Name string `json:"name"`
}

func (r *CreatePersonRequest) UnmarshalJSON(b []byte) error {
	name, err := decodeNameBody(b, func(raw []byte) (string, error) {
		var body struct {
			Name string `json:"name"`
		}
		err := json.Unmarshal(raw, &body)
		return body.Name, err
	})
	if err != nil {
		return err
	}
	r.Name = name
	return nil
}

func (r *CreatePersonRequest) Validate() error {
	return ValidateName("name", r.Name)
}

// RenamePersonRequest accepts either a bare JSON string or {"new_name": "..."}.
type RenamePersonRequest struct {
	NewName string `json:"new_name"`
}

func (r *RenamePersonRequest) UnmarshalJSON(b []byte) error {
	name, err := decodeNameBody(b, func(raw []byte) (string, error) {
		var body struct {
			NewName string `json:"new_name"`
		}
		err := json.Unmarshal(raw, &body)
		return body.NewName, err
	})
	if err != nil {
		return err
	}
	r.NewName = name
	return nil
}

func (r *RenamePersonRequest) Validate() error {
	return ValidateName("new_name", r.NewName)
}

func decodeNameBody(b []byte, object func([]byte) (string, error)) (string, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return "", errors.New("empty body")
	}
	switch trimmed[0] {
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return "", err
		}
		return name, nil
	case '{':
		return object(trimmed)
	default:
		return "", errors.New("body must be a JSON string or object")
	}
}
