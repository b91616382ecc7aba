// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"encoding/hex"
	"math/big"
	"time"

	"code.vegaprotocol.io/loopvault/libs/num"

	"go.uber.org/zap"
)

// Binary constructs a field that carries an opaque binary blob.
func Binary(key string, val []byte) zap.Field {
	return zap.Binary(key, val)
}

// Bool constructs a field that carries a bool.
func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

// Duration constructs a field with the given key and value.
func Duration(key string, val time.Duration) zap.Field {
	return zap.Duration(key, val)
}

// Float64 constructs a field with the given key and value.
func Float64(key string, val float64) zap.Field {
	return zap.Float64(key, val)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Int32 constructs a field with the given key and value.
func Int32(key string, val int32) zap.Field {
	return zap.Int32(key, val)
}

// Int64 constructs a field with the given key and value.
func Int64(key string, val int64) zap.Field {
	return zap.Int64(key, val)
}

// Uint16 constructs a field with the given key and value.
func Uint16(key string, val uint16) zap.Field {
	return zap.Uint16(key, val)
}

// Uint32 constructs a field with the given key and value.
func Uint32(key string, val uint32) zap.Field {
	return zap.Uint32(key, val)
}

// Uint64 constructs a field with the given key and value.
func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

// String constructs a field with the given key and value.
func String(key string, val string) zap.Field {
	return zap.String(key, val)
}

// Strings constructs a field with the given key and value.
func Strings(key string, val []string) zap.Field {
	return zap.Strings(key, val)
}

// Time constructs a field with the given key and value.
func Time(key string, val time.Time) zap.Field {
	return zap.Time(key, val)
}

// Reflect constructs a field with the given key and an arbitrary object.
func Reflect(key string, val interface{}) zap.Field {
	return zap.Reflect(key, val)
}

// Error constructs a field that carries an error.
func Error(val error) zap.Field {
	return zap.NamedError("error", val)
}

// Hash constructs a field carrying a hex encoded hash.
func Hash(val []byte) zap.Field {
	return zap.String("hash", hex.EncodeToString(val))
}

// BigInt constructs a field carrying the decimal representation of a big.Int.
func BigInt(key string, val *big.Int) zap.Field {
	return zap.String(key, val.String())
}

// BigUint constructs a field carrying the decimal representation of a
// num.Uint. A nil value is logged as "nil" rather than panicking.
func BigUint(key string, val *num.Uint) zap.Field {
	if val == nil {
		return zap.String(key, "nil")
	}
	return zap.String(key, val.String())
}

// Decimal constructs a field carrying the string representation of a decimal.
func Decimal(key string, val num.Decimal) zap.Field {
	return zap.String(key, val.String())
}

// PartyID constructs a field with the given party ID.
func PartyID(id string) zap.Field {
	return zap.String("party", id)
}

// AssetID constructs a field with the given asset ID.
func AssetID(id string) zap.Field {
	return zap.String("asset", id)
}

// VaultID constructs a field with the given vault ID.
func VaultID(id string) zap.Field {
	return zap.String("vault", id)
}
