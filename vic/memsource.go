package vic

// source identifies which component backs a 4 KiB window of the VIC-II's
// own 14-bit address space.
type source int

const (
	sourceRAM source = iota
	sourceCharROM
	sourceCartHi
)

// memSourceTable is the 16-entry table spec.md's memory-source-table
// invariant names, indexed by the high nibble of the VIC's local address.
// Entries 0x1 and 0x9 are CHARROM in normal mode (mapping C64 addresses
// $1000-$1FFF/$9000-$9FFF as seen through the current VIC bank); ultimax
// mode instead routes 0x3/0x7/0xB/0xF to cartridge high ROM per spec.md's
// ultimax note.
type memSourceTable [16]source

func normalMemSourceTable() memSourceTable {
	var t memSourceTable
	for i := range t {
		t[i] = sourceRAM
	}
	t[0x1] = sourceCharROM
	t[0x9] = sourceCharROM
	return t
}

func ultimaxMemSourceTable() memSourceTable {
	var t memSourceTable
	for i := range t {
		t[i] = sourceRAM
	}
	t[0x3] = sourceCartHi
	t[0x7] = sourceCartHi
	t[0xb] = sourceCartHi
	t[0xf] = sourceCartHi
	return t
}

// sourceFor reports which component backs the given VIC-local address.
func (t memSourceTable) sourceFor(addr uint16) source {
	return t[(addr>>12)&0x0f]
}

// SetUltimax switches the VIC's own memory-source table between the normal
// bank-relative layout and the ultimax (EXROM low, GAME high) layout; the
// owning bus is still responsible for actually routing CHARROM/CART_HI
// reads, this table only decides which source a given fetch belongs to.
func (v *VIC) SetUltimax(on bool) {
	if on {
		v.memSources = ultimaxMemSourceTable()
	} else {
		v.memSources = normalMemSourceTable()
	}
}
