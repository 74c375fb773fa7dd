// internal/domain/models/flag.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Flag is a three-state boolean. Unset is stored as a missing field and is
// always treated as the non-restrictive default by filters.
type Flag int8

const (
	Unset Flag = iota
	True
	False
)

// FlagOf converts a plain bool into True or False.
func FlagOf(b bool) Flag {
	if b {
		return True
	}
	return False
}

// IsFalse reports whether the flag was explicitly set to false.
func (f Flag) IsFalse() bool { return f == False }

// Enabled reports the effective value: Unset counts as enabled.
func (f Flag) Enabled() bool { return f != False }

// IsZero lets bson's omitempty drop Unset flags.
func (f Flag) IsZero() bool { return f == Unset }

func (f Flag) String() string {
	switch f {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

func (f Flag) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch f {
	case True:
		return bsontype.Boolean, bsoncore.AppendBoolean(nil, true), nil
	case False:
		return bsontype.Boolean, bsoncore.AppendBoolean(nil, false), nil
	default:
		return bsontype.Null, nil, nil
	}
}

// UnmarshalBSONValue accepts the shapes legacy agent documents carry:
// booleans, numbers (non-zero is true) and the strings "true" and "false".
// Any other value decodes as Unset so one odd document cannot fail a list.
func (f *Flag) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*f = Unset
	switch t {
	case bsontype.Boolean:
		b, _, ok := bsoncore.ReadBoolean(data)
		if !ok {
			return fmt.Errorf("flag: malformed boolean")
		}
		*f = FlagOf(b)
	case bsontype.Int32:
		n, _, ok := bsoncore.ReadInt32(data)
		if !ok {
			return fmt.Errorf("flag: malformed int32")
		}
		*f = FlagOf(n != 0)
	case bsontype.Int64:
		n, _, ok := bsoncore.ReadInt64(data)
		if !ok {
			return fmt.Errorf("flag: malformed int64")
		}
		*f = FlagOf(n != 0)
	case bsontype.Double:
		n, _, ok := bsoncore.ReadDouble(data)
		if !ok {
			return fmt.Errorf("flag: malformed double")
		}
		*f = FlagOf(n != 0)
	case bsontype.String:
		str, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("flag: malformed string")
		}
		switch strings.ToLower(strings.TrimSpace(str)) {
		case "true":
			*f = True
		case "false":
			*f = False
		}
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Unset
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("flag: %w", err)
	}
	*f = FlagOf(b)
	return nil
}
