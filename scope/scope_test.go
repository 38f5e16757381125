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

package scope

import (
	"reflect"
	"testing"

	"github.com/willcharlton/pybc/qstr"
)

func TestNumCellsAndCellLocals(t *testing.T) {
	s := &Scope{
		IDInfo: []IdentInfo{
			{Kind: KindLocal, Local: 0, Name: 1},
			{Kind: KindCell, Local: 1, Name: 2},
			{Kind: KindFree, Local: 0, Name: 3},
			{Kind: KindCell, Local: 3, Name: 4},
		},
	}
	if n := s.NumCells(); n != 2 {
		t.Fatalf("NumCells() = %d, want 2", n)
	}
	if got := s.CellLocals(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("CellLocals() = %v, want [1 3]", got)
	}
}

func TestArgNames(t *testing.T) {
	s := &Scope{
		NumPosArgs:    2,
		NumKwonlyArgs: 1,
		IDInfo: []IdentInfo{
			{Kind: KindLocal, Local: 0, Name: 10},
			{Kind: KindLocal, Local: 1, Name: 11},
			{Kind: KindLocal, Local: 2, Name: 12},
			{Kind: KindLocal, Local: 3, Name: 13}, // not an argument slot
			{Kind: KindCell, Local: 0, Name: 99},
		},
	}
	got := s.ArgNames()
	want := []qstr.ID{10, 11, 12}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ArgNames() = %v, want %v", got, want)
	}
}
