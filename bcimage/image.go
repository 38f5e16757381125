// Copyright (C) 2024 Willcharlton, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package bcimage packs the finished bytecode buffers of every scope in
// a compiled module into a single on-disk (or on-flash) container, and
// unpacks one back into its constituent buffers. This is the step that
// follows publishing: the emitter hands each scope's buffer to a
// vmhost.Host; a whole-module driver collects those same buffers and
// hands them to a bcimage.Writer to produce one image it can write to
// flash.
package bcimage

const (
	magic         = "PYBC"
	formatVersion = 1

	// flagZstd marks the entry list as zstd-compressed.
	flagZstd = 1 << 0
)

// Entry is one scope's published buffer, tagged by the handle id the
// caller used to identify it (typically an index into the module's
// scope table, since RawCode handles are not otherwise comparable
// across a process boundary).
type Entry struct {
	HandleID uint64
	Buf      []byte
}
