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

package rand

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomStr builds a random string of the given length, out of letters and
// digits only. Not suitable for anything secret.
func RandomStr(size int) string {
	b := make([]byte, size)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}

// RandomBytes returns the given amount of bytes read from the system CSPRNG.
func RandomBytes(size int) []byte {
	b := make([]byte, size)
	if _, err := crand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// NewNonce returns a random uint64 read from the system CSPRNG.
func NewNonce() uint64 {
	return binary.BigEndian.Uint64(RandomBytes(8))
}
