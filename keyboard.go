// This file is part of c64core.
//
// c64core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// c64core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with c64core.  If not, see <https://www.gnu.org/licenses/>.

package c64core

// Keyboard is the 8x8 matrix wired across CIA1 port A (columns) and port B
// (rows). Real hardware lets either port drive the select lines and sense
// the other, so SetKey only records pressed state; the actual
// column-select/row-sense direction is resolved by whichever port the DOS
// currently has configured as output, tracked via the last value each port
// was written with.
//
// RESTORE is not part of the matrix: it is wired directly to the CPU's NMI
// input (alongside CIA2 and the expansion port's freeze line), so it's
// tracked here as its own line.
type Keyboard struct {
	matrix [8]uint8 // matrix[row], bit set at column => key pressed

	lastPA uint8
	lastPB uint8

	Restore bool
}

// NewKeyboard returns an idle keyboard: no keys pressed, both ports
// floating high (no columns/rows selected).
func NewKeyboard() *Keyboard {
	return &Keyboard{lastPA: 0xff, lastPB: 0xff}
}

// SetKey records a key's pressed state at the given matrix position, each
// in 0..7.
func (k *Keyboard) SetKey(row, col int, pressed bool) {
	if pressed {
		k.matrix[row] |= 1 << uint(col)
	} else {
		k.matrix[row] &^= 1 << uint(col)
	}
}

// senseRows returns, for the given column-select value (bit low = column
// selected), the row lines pulled low by any pressed key in a selected
// column.
func (k *Keyboard) senseRows(colSelect uint8) uint8 {
	var rows uint8
	for col := 0; col < 8; col++ {
		if colSelect&(1<<uint(col)) != 0 {
			continue
		}
		for row := 0; row < 8; row++ {
			if k.matrix[row]&(1<<uint(col)) != 0 {
				rows |= 1 << uint(row)
			}
		}
	}
	return rows
}

// senseCols is the symmetric counterpart of senseRows, for when the DOS
// selects by row on port B and senses columns on port A.
func (k *Keyboard) senseCols(rowSelect uint8) uint8 {
	var cols uint8
	for row := 0; row < 8; row++ {
		if rowSelect&(1<<uint(row)) != 0 {
			continue
		}
		cols |= k.matrix[row]
	}
	return cols
}

func (k *Keyboard) onWriteA(value, ddr uint8) { k.lastPA = value | ^ddr }
func (k *Keyboard) onWriteB(value, ddr uint8) { k.lastPB = value | ^ddr }

func (k *Keyboard) onReadA(ddr uint8) uint8 { return ^k.senseCols(k.lastPB) }
func (k *Keyboard) onReadB(ddr uint8) uint8 { return ^k.senseRows(k.lastPA) }
